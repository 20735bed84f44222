package attr

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sagostin/shuttle-vfd/pkg/display"
	"github.com/sagostin/shuttle-vfd/pkg/vfd"
)

func newTestDispatcher() (*Dispatcher, *display.Recorder) {
	rec := display.NewRecorder(nil)
	return New(display.New(rec, nil, display.WithSleep(func(time.Duration) {}))), rec
}

func TestNames(t *testing.T) {
	want := []string{"icons", "mode", "text", "text_style"}
	if got := Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestDispatcher_StoreShow(t *testing.T) {
	d, rec := newTestDispatcher()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{TextStyle, "l\n", "left\n"},
		{Text, "hello\n", "hello\n"},
		{Icons, "clk,rad\n", "clock radio\n"},
		{Icons, "clk", "radio\n"},
		{Mode, "clock\n", "clock\n"},
	}

	for _, tt := range tests {
		if err := d.Store(tt.name, []byte(tt.value)); err != nil {
			t.Fatalf("Store(%s, %q) err=%v", tt.name, tt.value, err)
		}
		got, err := d.Show(tt.name)
		if err != nil {
			t.Fatalf("Show(%s) err=%v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("Show(%s) after %q = %q, want %q", tt.name, tt.value, got, tt.want)
		}
	}

	if len(rec.Frames()) == 0 {
		t.Error("no frames sent")
	}
}

func TestDispatcher_UnknownAttribute(t *testing.T) {
	d, _ := newTestDispatcher()

	if err := d.Store("brightness", []byte("1")); !errors.Is(err, ErrUnknownAttribute) {
		t.Errorf("Store err=%v, want ErrUnknownAttribute", err)
	}
	if _, err := d.Show("brightness"); !errors.Is(err, ErrUnknownAttribute) {
		t.Errorf("Show err=%v, want ErrUnknownAttribute", err)
	}
}

func TestDispatcher_InvalidValue(t *testing.T) {
	d, rec := newTestDispatcher()

	err := d.Store(Mode, []byte("radio"))
	if !errors.Is(err, vfd.ErrInvalidArgument) {
		t.Errorf("err=%v, want ErrInvalidArgument", err)
	}
	if got, _ := d.Show(Mode); got != "text\n" {
		t.Errorf("mode = %q after rejected write", got)
	}
	if len(rec.Frames()) != 0 {
		t.Errorf("rejected write sent %d frames", len(rec.Frames()))
	}
}

func TestDispatcher_ConcurrentWriters(t *testing.T) {
	d, rec := newTestDispatcher()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Store(Text, []byte(strings.Repeat("x", 20)))
		}()
	}
	wg.Wait()

	// each write is a cursor reset followed by three text frames, never
	// interleaved with another write
	frames := rec.Frames()
	if len(frames) != 8*4 {
		t.Fatalf("got %d frames, want %d", len(frames), 8*4)
	}
	for i := 0; i < len(frames); i += 4 {
		if frames[i] != vfd.EncodeClear(false) {
			t.Errorf("frame %d = %v, want cursor reset", i, frames[i])
		}
	}
}

func TestDispatcher_Do(t *testing.T) {
	d, rec := newTestDispatcher()

	err := d.Do(func(s *display.Session) error { return s.Init(display.DefaultGreeting) })
	if err != nil {
		t.Fatalf("Do err=%v", err)
	}
	if len(rec.Frames()) != 4 {
		t.Errorf("Init sent %d frames", len(rec.Frames()))
	}
}
