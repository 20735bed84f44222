// Package display provides a stateful session for one attached Shuttle VFD.
//
// A Session owns the icon mask, the text buffer, the display mode and the
// text alignment, and turns every change into protocol frames handed to a
// Sender. It holds no lock: callers sharing a session must serialize access
// (see package attr).
package display

import (
	"fmt"
	"time"

	"github.com/sagostin/shuttle-vfd/pkg/vfd"
)

// DefaultGreeting is shown by Init when a greeting is requested without text.
const DefaultGreeting = "Linux"

// Sender delivers one frame to the display. Implementations must wait for
// the controller to absorb the frame (vfd.DefaultFrameDelay) before
// returning.
type Sender interface {
	SendFrame(f vfd.Frame) error
}

// Clock reads the current wall-clock time.
type Clock interface {
	Now() (time.Time, error)
}

// Option configures a Session.
type Option func(*Session)

// WithAlignment sets the initial text alignment (default center).
func WithAlignment(a vfd.Alignment) Option {
	return func(s *Session) { s.align = a }
}

// WithClockSettle sets the pause between clock data and clock show.
func WithClockSettle(d time.Duration) Option {
	return func(s *Session) { s.settle = d }
}

// WithSleep replaces time.Sleep for the clock settle pause.
func WithSleep(sleep func(time.Duration)) Option {
	return func(s *Session) { s.sleep = sleep }
}

// Session is the in-memory state of one display.
type Session struct {
	sender Sender
	clock  Clock

	icons vfd.Mask
	buf   vfd.Buffer
	mode  vfd.Mode
	align vfd.Alignment

	settle time.Duration
	sleep  func(time.Duration)
}

// New creates a session in text mode with no icons and an empty buffer.
// No frame is sent; call Init to reset the panel.
func New(sender Sender, clock Clock, opts ...Option) *Session {
	s := &Session{
		sender: sender,
		clock:  clock,
		mode:   vfd.ModeText,
		align:  vfd.AlignCenter,
		settle: vfd.DefaultClockSettle,
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init fully clears the panel and, when greeting is not empty, shows it
// centered.
func (s *Session) Init(greeting string) error {
	if err := s.send(vfd.EncodeClear(true)); err != nil {
		return err
	}
	if greeting == "" {
		return nil
	}

	vfd.Layout(&s.buf, []byte(greeting), vfd.AlignCenter)
	return s.sendText()
}

// Clear erases text and icons on the panel. The session state is kept, so
// the next render brings the content back.
func (s *Session) Clear() error {
	return s.send(vfd.EncodeClear(true))
}

// WriteText lays raw out with the current alignment. In text mode the
// buffer is sent right away; in clock mode it is kept for the next switch
// back to text.
func (s *Session) WriteText(raw []byte) error {
	vfd.Layout(&s.buf, raw, s.align)

	if s.mode != vfd.ModeText {
		vfd.LogDebug(vfd.ComponentSession, "text buffered while in clock mode")
		return nil
	}

	if err := s.send(vfd.EncodeClear(false)); err != nil {
		return err
	}
	return s.sendText()
}

// WriteIcons applies an icon request such as "clk rad vol5" and sends the
// resulting mask. Unknown tokens are logged and skipped.
func (s *Session) WriteIcons(input string) error {
	next, err := vfd.Apply(s.icons, vfd.Tokenize(input))
	if err != nil {
		logUnknownIcons(err)
	}
	return s.SetIcons(next)
}

// SetIcons replaces the icon mask and sends it.
func (s *Session) SetIcons(m vfd.Mask) error {
	s.icons = m
	return s.send(vfd.EncodeIcons(s.icons))
}

// WriteMode switches mode from a keyword: text, txt, clock or clk.
func (s *Session) WriteMode(keyword string) error {
	mode, err := vfd.ParseMode(keyword)
	if err != nil {
		return err
	}
	return s.SetMode(mode)
}

// SetMode renders the given mode. Entering clock mode (again or for the
// first time) snapshots the current time into the controller's clock.
// Entering text mode redraws the buffer.
func (s *Session) SetMode(mode vfd.Mode) error {
	prev := s.mode
	s.mode = mode

	if mode == vfd.ModeClock {
		return s.showClock()
	}

	// staying in text mode only needs the cursor home
	if err := s.send(vfd.EncodeClear(prev != vfd.ModeText)); err != nil {
		return err
	}
	return s.sendText()
}

// WriteTextStyle sets the alignment from a keyword: left/l, right/r or
// center/c. It applies to text written afterwards.
func (s *Session) WriteTextStyle(keyword string) error {
	a, err := vfd.ParseAlignment(keyword)
	if err != nil {
		return err
	}
	s.align = a
	return nil
}

// SetAlignment sets the alignment for text written afterwards.
func (s *Session) SetAlignment(a vfd.Alignment) {
	s.align = a
}

// Text returns the buffer without trailing NUL or newline, newline
// terminated.
func (s *Session) Text() []byte {
	return append(s.buf.Trimmed(), '\n')
}

// Icons returns the names of the shown icons, newline terminated.
func (s *Session) Icons() string {
	return vfd.FormatIcons(s.icons) + "\n"
}

// Mode returns "text" or "clock".
func (s *Session) Mode() string {
	return s.mode.String()
}

// TextStyle returns "left", "right" or "center".
func (s *Session) TextStyle() string {
	return s.align.String()
}

// Mask returns the current icon mask.
func (s *Session) Mask() vfd.Mask {
	return s.icons
}

// Buffer returns a copy of the text buffer.
func (s *Session) Buffer() vfd.Buffer {
	return s.buf
}

func (s *Session) showClock() error {
	if err := s.send(vfd.EncodeClear(true)); err != nil {
		return err
	}

	if err := s.send(vfd.EncodeClockData(s.now())); err != nil {
		return err
	}

	if s.settle > 0 {
		s.sleep(s.settle)
	}

	return s.send(vfd.EncodeClockShow())
}

// now reads the clock, falling back to a zeroed time on failure.
func (s *Session) now() vfd.ClockTime {
	if s.clock == nil {
		vfd.LogWarn(vfd.ComponentClock, "no time source, showing zeroed clock")
		return vfd.ClockTime{}
	}

	t, err := s.clock.Now()
	if err != nil {
		vfd.LogWarn(vfd.ComponentClock, "can't read time, showing zeroed clock",
			"error", fmt.Errorf("%w: %v", vfd.ErrTimeSource, err))
		return vfd.ClockTime{}
	}
	return vfd.ClockTimeOf(t)
}

func (s *Session) sendText() error {
	for _, f := range vfd.EncodeText(s.buf[:]) {
		if err := s.send(f); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) send(f vfd.Frame) error {
	vfd.LogDebug(vfd.ComponentSession, "send frame", "cmd", f.Command().String(), "frame", f.String())

	if err := s.sender.SendFrame(f); err != nil {
		vfd.LogError(vfd.ComponentTransport, "send failed", "frame", f.String(), "error", err)
		return fmt.Errorf("%w: %s frame: %w", vfd.ErrTransport, f.Command(), err)
	}
	return nil
}

func logUnknownIcons(err error) {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		vfd.LogWarn(vfd.ComponentSession, "ignoring icon", "error", err)
		return
	}
	for _, e := range joined.Unwrap() {
		vfd.LogWarn(vfd.ComponentSession, "unknown icon, ignoring", "error", e)
	}
}
