package display

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sagostin/shuttle-vfd/pkg/vfd"
)

type fakeClock struct {
	t   time.Time
	err error
}

func (c fakeClock) Now() (time.Time, error) {
	return c.t, c.err
}

func newTestSession(clock Clock) (*Session, *Recorder, *[]time.Duration) {
	rec := NewRecorder(nil)
	var sleeps []time.Duration
	s := New(rec, clock, WithSleep(func(d time.Duration) { sleeps = append(sleeps, d) }))
	return s, rec, &sleeps
}

func textPayload(frames []vfd.Frame) string {
	var sb strings.Builder
	for _, f := range frames {
		if f.Command() == vfd.CmdText {
			sb.Write(f.Payload())
		}
	}
	return sb.String()
}

func TestSession_Defaults(t *testing.T) {
	s, rec, _ := newTestSession(nil)

	if s.Mode() != "text" {
		t.Errorf("Mode() = %q, want text", s.Mode())
	}
	if s.TextStyle() != "center" {
		t.Errorf("TextStyle() = %q, want center", s.TextStyle())
	}
	if s.Icons() != "none\n" {
		t.Errorf("Icons() = %q, want none", s.Icons())
	}
	if string(s.Text()) != "\n" {
		t.Errorf("Text() = %q, want empty line", s.Text())
	}
	if len(rec.Frames()) != 0 {
		t.Errorf("New sent %d frames", len(rec.Frames()))
	}
}

func TestSession_WriteIcons(t *testing.T) {
	s, rec, _ := newTestSession(nil)

	if err := s.WriteIcons("clk rad xyz"); err != nil {
		t.Fatalf("WriteIcons err=%v", err)
	}

	frames := rec.Frames()
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if frames[0] != vfd.EncodeIcons(vfd.IconClock|vfd.IconRadio) {
		t.Errorf("frame = %v", frames[0])
	}
	if s.Mask() != vfd.IconClock|vfd.IconRadio {
		t.Errorf("Mask() = %#x", s.Mask())
	}
	if s.Icons() != "clock radio\n" {
		t.Errorf("Icons() = %q", s.Icons())
	}
}

func TestSession_WriteIconsAlwaysSends(t *testing.T) {
	s, rec, _ := newTestSession(nil)

	s.WriteIcons("vol5")
	s.WriteIcons("bogus")
	s.WriteIcons("vol5")

	frames := rec.Frames()
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	if frames[1] != frames[0] {
		t.Errorf("unchanged mask sent %v, want %v", frames[1], frames[0])
	}
	if vfd.DecodeIcons(frames[2]).Volume() != 0 {
		t.Errorf("repeated vol5 should switch volume off, got %v", frames[2])
	}
	if s.Icons() != "none\n" {
		t.Errorf("Icons() = %q", s.Icons())
	}
}

func TestSession_WriteTextCentered(t *testing.T) {
	s, rec, _ := newTestSession(nil)

	if err := s.WriteText([]byte("HI")); err != nil {
		t.Fatalf("WriteText err=%v", err)
	}

	frames := rec.Frames()
	if len(frames) != 4 {
		t.Fatalf("got %d frames, want 4", len(frames))
	}
	if frames[0] != vfd.EncodeClear(false) {
		t.Errorf("first frame = %v, want cursor reset", frames[0])
	}
	want := strings.Repeat(" ", 9) + "HI" + strings.Repeat(" ", 9)
	if got := textPayload(frames); got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
	if got := string(s.Text()); got != want+"\n" {
		t.Errorf("Text() = %q", got)
	}
}

func TestSession_WriteTextStyle(t *testing.T) {
	s, rec, _ := newTestSession(nil)

	if err := s.WriteTextStyle("r"); err != nil {
		t.Fatalf("WriteTextStyle err=%v", err)
	}
	if len(rec.Frames()) != 0 {
		t.Errorf("style change sent frames")
	}
	if s.TextStyle() != "right" {
		t.Errorf("TextStyle() = %q", s.TextStyle())
	}

	s.WriteText([]byte("HI"))
	if got := textPayload(rec.Frames()); got != strings.Repeat(" ", 18)+"HI" {
		t.Errorf("text = %q", got)
	}

	err := s.WriteTextStyle("middle")
	if !errors.Is(err, vfd.ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
	if s.TextStyle() != "right" {
		t.Errorf("rejected style changed state: %q", s.TextStyle())
	}
}

func TestSession_ClockMode(t *testing.T) {
	now := time.Date(2024, time.December, 30, 23, 30, 45, 0, time.UTC)
	s, rec, sleeps := newTestSession(fakeClock{t: now})

	if err := s.WriteMode("clock"); err != nil {
		t.Fatalf("WriteMode err=%v", err)
	}

	want := []vfd.Frame{
		{0x11, 0x01},
		{0xD7, 0x45, 0x30, 0x23, 0x01, 0x30, 0x12, 0x24},
		{0x31, 0x03},
	}
	frames := rec.Frames()
	if len(frames) != len(want) {
		t.Fatalf("got %d frames, want %d: %v", len(frames), len(want), frames)
	}
	for i := range want {
		if frames[i] != want[i] {
			t.Errorf("frame %d = %v, want %v", i, frames[i], want[i])
		}
	}
	if len(*sleeps) != 1 || (*sleeps)[0] != vfd.DefaultClockSettle {
		t.Errorf("settle sleeps = %v", *sleeps)
	}
	if s.Mode() != "clock" {
		t.Errorf("Mode() = %q", s.Mode())
	}

	// re-entry snapshots the time again
	rec.Reset()
	s.WriteMode("clk")
	if len(rec.Frames()) != 3 {
		t.Errorf("re-entry sent %d frames, want 3", len(rec.Frames()))
	}
}

func TestSession_ClockWithoutTime(t *testing.T) {
	s, rec, _ := newTestSession(fakeClock{err: errors.New("no rtc")})

	if err := s.SetMode(vfd.ModeClock); err != nil {
		t.Fatalf("SetMode err=%v", err)
	}

	frames := rec.Frames()
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	if frames[1] != vfd.EncodeClockData(vfd.ClockTime{}) {
		t.Errorf("clock data = %v, want zeroed", frames[1])
	}
}

func TestSession_TextBufferedInClockMode(t *testing.T) {
	s, rec, _ := newTestSession(fakeClock{t: time.Now()})
	s.SetAlignment(vfd.AlignLeft)
	s.SetMode(vfd.ModeClock)
	rec.Reset()

	if err := s.WriteText([]byte("later")); err != nil {
		t.Fatalf("WriteText err=%v", err)
	}
	if len(rec.Frames()) != 0 {
		t.Fatalf("clock mode text sent %d frames", len(rec.Frames()))
	}
	if string(s.Text()) != "later\n" {
		t.Errorf("Text() = %q", s.Text())
	}

	if err := s.WriteMode("text"); err != nil {
		t.Fatalf("WriteMode err=%v", err)
	}
	frames := rec.Frames()
	if len(frames) != 4 {
		t.Fatalf("got %d frames, want 4", len(frames))
	}
	if frames[0] != vfd.EncodeClear(true) {
		t.Errorf("leaving clock mode should fully clear, got %v", frames[0])
	}
	if got := textPayload(frames); !strings.HasPrefix(got, "later") {
		t.Errorf("text = %q", got)
	}
}

func TestSession_TextToText(t *testing.T) {
	s, rec, _ := newTestSession(nil)

	if err := s.WriteMode("txt"); err != nil {
		t.Fatalf("WriteMode err=%v", err)
	}
	frames := rec.Frames()
	if len(frames) != 4 || frames[0] != vfd.EncodeClear(false) {
		t.Errorf("text re-render frames = %v", frames)
	}
}

func TestSession_InvalidMode(t *testing.T) {
	s, rec, _ := newTestSession(nil)

	err := s.WriteMode("radio")
	if !errors.Is(err, vfd.ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
	if len(rec.Frames()) != 0 || s.Mode() != "text" {
		t.Errorf("rejected mode changed state")
	}
}

func TestSession_TransportFailureAborts(t *testing.T) {
	s, rec, _ := newTestSession(nil)
	sendErr := errors.New("pipe stalled")
	rec.FailFrom = 3
	rec.Err = sendErr

	err := s.WriteText([]byte("ABCDEFGHIJKLMNOPQRST"))
	if !errors.Is(err, vfd.ErrTransport) || !errors.Is(err, sendErr) {
		t.Errorf("err = %v, want transport failure wrapping %v", err, sendErr)
	}
	if len(rec.Frames()) != 2 {
		t.Errorf("sent %d frames, want 2 before the failure", len(rec.Frames()))
	}
	// state is recorded even though the panel lags behind
	if string(s.Text()) != "ABCDEFGHIJKLMNOPQRST\n" {
		t.Errorf("Text() = %q", s.Text())
	}
}

func TestSession_Init(t *testing.T) {
	s, rec, _ := newTestSession(nil)

	if err := s.Init(DefaultGreeting); err != nil {
		t.Fatalf("Init err=%v", err)
	}
	frames := rec.Frames()
	if len(frames) != 4 || frames[0] != vfd.EncodeClear(true) {
		t.Fatalf("Init frames = %v", frames)
	}
	want := strings.Repeat(" ", 7) + "Linux" + strings.Repeat(" ", 8)
	if got := textPayload(frames); got != want {
		t.Errorf("greeting = %q, want %q", got, want)
	}

	rec.Reset()
	s.Init("")
	if len(rec.Frames()) != 1 {
		t.Errorf("Init without greeting sent %d frames", len(rec.Frames()))
	}
}

func TestSession_ClearKeepsState(t *testing.T) {
	s, rec, _ := newTestSession(nil)
	s.WriteIcons("play")
	s.WriteText([]byte("keep"))
	rec.Reset()

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear err=%v", err)
	}
	if frames := rec.Frames(); len(frames) != 1 || frames[0] != vfd.EncodeClear(true) {
		t.Errorf("Clear frames = %v", frames)
	}
	if s.Icons() != "play\n" || !strings.Contains(string(s.Text()), "keep") {
		t.Errorf("Clear changed state: %q %q", s.Icons(), s.Text())
	}
}

func TestSession_FirstFrameFails(t *testing.T) {
	s, rec, sleeps := newTestSession(fakeClock{t: time.Now()})
	sendErr := errors.New("device gone")
	rec.FailFrom = 1
	rec.Err = sendErr

	err := s.SetMode(vfd.ModeClock)
	if !errors.Is(err, vfd.ErrTransport) || !errors.Is(err, sendErr) {
		t.Errorf("err = %v, want transport failure wrapping %v", err, sendErr)
	}
	if len(rec.Frames()) != 0 {
		t.Errorf("recorded %d frames after the clear failed", len(rec.Frames()))
	}
	if len(*sleeps) != 0 {
		t.Errorf("settle ran after the clear failed: %v", *sleeps)
	}
	if s.Mode() != "clock" {
		t.Errorf("Mode() = %q, want clock", s.Mode())
	}

	if err := s.Init(DefaultGreeting); !errors.Is(err, vfd.ErrTransport) {
		t.Errorf("Init err = %v, want ErrTransport", err)
	}
}
