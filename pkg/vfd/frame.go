package vfd

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Frame is one 8-byte protocol message.
//
// Byte 0 packs the command (high nibble) and the payload length (low
// nibble). Bytes 1-7 hold the payload, zero-padded past the declared length.
type Frame [FrameSize]byte

// NewFrame builds a frame. Payload beyond PayloadSize is dropped.
func NewFrame(cmd Command, payload ...byte) Frame {
	var f Frame
	n := copy(f[1:], payload)
	f[0] = byte(cmd)<<4 | byte(n)
	return f
}

// Command returns the command nibble.
func (f Frame) Command() Command {
	return Command(f[0] >> 4)
}

// Len returns the declared payload length.
func (f Frame) Len() int {
	return int(f[0] & 0x0F)
}

// Payload returns the declared payload bytes.
func (f Frame) Payload() []byte {
	n := f.Len()
	if n > PayloadSize {
		n = PayloadSize
	}
	return f[1 : 1+n]
}

// String formats the frame as space separated hex bytes.
func (f Frame) String() string {
	return fmt.Sprintf("% 02X", f[:])
}

// ParseFrame parses a raw frame written as hex, with or without separators
// ("91 48 49 00 00 00 00 00", "9148490000000000"). Short input is
// zero-padded; the length nibble is taken as written.
func ParseFrame(s string) (Frame, error) {
	var f Frame

	clean := strings.NewReplacer(" ", "", ":", "", "-", "", "0x", "", "0X", "").Replace(strings.TrimSpace(s))
	if clean == "" {
		return f, fmt.Errorf("%w: empty", ErrFrameFormat)
	}

	raw, err := hex.DecodeString(clean)
	if err != nil {
		return f, fmt.Errorf("%w: %v", ErrFrameFormat, err)
	}
	if len(raw) > FrameSize {
		return f, fmt.Errorf("%w: %d bytes, want at most %d", ErrFrameFormat, len(raw), FrameSize)
	}
	if int(raw[0]&0x0F) > PayloadSize {
		return f, fmt.Errorf("%w: length nibble %d", ErrFrameFormat, raw[0]&0x0F)
	}

	copy(f[:], raw)
	return f, nil
}

// EncodeClear builds a clear frame. A full clear erases text and icons; a
// partial one only brings the text cursor home.
func EncodeClear(full bool) Frame {
	if full {
		return NewFrame(CmdClear, clearAll)
	}
	return NewFrame(CmdClear, clearCursor)
}

// EncodeIcons builds an icon frame. The wire carries 20 bits as four 5-bit
// groups, most significant group first.
func EncodeIcons(m Mask) Frame {
	return NewFrame(CmdIcons,
		byte(m>>15)&0x1F,
		byte(m>>10)&0x1F,
		byte(m>>5)&0x1F,
		byte(m)&0x1F,
	)
}

// DecodeIcons reverses EncodeIcons.
func DecodeIcons(f Frame) Mask {
	return Mask(f[1]&0x1F)<<15 |
		Mask(f[2]&0x1F)<<10 |
		Mask(f[3]&0x1F)<<5 |
		Mask(f[4]&0x1F)
}

// EncodeText splits data into text frames of up to PayloadSize characters.
// The display buffer (Width bytes) always yields 7+7+6.
func EncodeText(data []byte) []Frame {
	frames := make([]Frame, 0, (len(data)+PayloadSize-1)/PayloadSize)
	for len(data) > 0 {
		n := len(data)
		if n > PayloadSize {
			n = PayloadSize
		}
		frames = append(frames, NewFrame(CmdText, data[:n]...))
		data = data[n:]
	}
	return frames
}

// EncodeClockData builds the frame that loads the controller's clock.
func EncodeClockData(t ClockTime) Frame {
	return NewFrame(CmdClockData,
		bcd(t.Second),
		bcd(t.Minute),
		bcd(t.Hour),
		byte(t.Weekday),
		bcd(t.Day),
		bcd(t.Month),
		bcd(t.Year),
	)
}

// EncodeClockShow builds the frame that starts the built-in clock display.
func EncodeClockShow() Frame {
	return NewFrame(CmdClockShow, clockShow)
}
