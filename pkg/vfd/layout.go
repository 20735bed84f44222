package vfd

import (
	"fmt"
	"strings"
)

// Buffer mirrors the characters shown in text mode.
type Buffer [Width]byte

// Trimmed returns the buffer without trailing NUL and newline bytes.
func (b *Buffer) Trimmed() []byte {
	n := len(b)
	for n > 0 && (b[n-1] == 0 || b[n-1] == '\n') {
		n--
	}
	out := make([]byte, n)
	copy(out, b[:n])
	return out
}

// Alignment selects where short text lands in the buffer.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

// String returns the keyword reported for the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "left"
	}
}

// ParseAlignment accepts left/l, right/r and center/c. Only the first
// whitespace separated word is considered.
func ParseAlignment(s string) (Alignment, error) {
	switch firstWord(s) {
	case "left", "l":
		return AlignLeft, nil
	case "right", "r":
		return AlignRight, nil
	case "center", "c":
		return AlignCenter, nil
	}
	return AlignLeft, fmt.Errorf("%w: text style %q", ErrInvalidArgument, strings.TrimSpace(s))
}

// Layout writes raw into buf using align. Input longer than Width is cut.
//
// Text shorter than the display first clears the buffer to NUL. Left
// aligned text keeps that NUL padding; right and center alignment pad with
// spaces, and an odd remainder leaves the extra space on the right.
func Layout(buf *Buffer, raw []byte, align Alignment) {
	l := len(raw)
	if l < Width {
		*buf = Buffer{}
	} else {
		l = Width
	}

	switch align {
	case AlignRight:
		fill(buf[:Width-l], ' ')
		copy(buf[Width-l:], raw[:l])
	case AlignCenter:
		fill(buf[:], ' ')
		copy(buf[(Width-l)/2:], raw[:l])
	default:
		copy(buf[:], raw[:l])
	}
}

func fill(b []byte, c byte) {
	for i := range b {
		b[i] = c
	}
}

// Mode selects what the display renders.
type Mode int

const (
	ModeText Mode = iota
	ModeClock
)

// String returns the keyword reported for the mode.
func (m Mode) String() string {
	if m == ModeClock {
		return "clock"
	}
	return "text"
}

// ParseMode accepts text/txt and clock/clk.
func ParseMode(s string) (Mode, error) {
	switch firstWord(s) {
	case "text", "txt":
		return ModeText, nil
	case "clock", "clk":
		return ModeClock, nil
	}
	return ModeText, fmt.Errorf("%w: mode %q", ErrInvalidArgument, strings.TrimSpace(s))
}

func firstWord(s string) string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}
