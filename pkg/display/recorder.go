package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/sagostin/shuttle-vfd/pkg/vfd"
)

// Recorder is a Sender that keeps every frame in memory and optionally
// prints it, one hex line per frame. It backs the "dump" transport.
type Recorder struct {
	mu     sync.Mutex
	out    io.Writer
	frames []vfd.Frame

	// FailFrom makes SendFrame return Err from the given frame on,
	// counting from 1. Zero disables the failure.
	FailFrom int
	Err      error
}

// NewRecorder creates a recorder. out may be nil.
func NewRecorder(out io.Writer) *Recorder {
	return &Recorder{out: out}
}

// SendFrame records f.
func (r *Recorder) SendFrame(f vfd.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailFrom > 0 && len(r.frames)+1 >= r.FailFrom {
		if r.Err != nil {
			return r.Err
		}
		return fmt.Errorf("recorder: refusing frame %d", len(r.frames)+1)
	}

	r.frames = append(r.frames, f)
	if r.out != nil {
		if _, err := fmt.Fprintf(r.out, "%s  %s\n", f, f.Command()); err != nil {
			return err
		}
	}
	return nil
}

// Frames returns a copy of the recorded frames.
func (r *Recorder) Frames() []vfd.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]vfd.Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

// Reset forgets the recorded frames.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = nil
}
