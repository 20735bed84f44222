// Package bridge sends VFD frames over a serial line to a microcontroller
// that replays them on the panel's USB side.
//
// Each frame is written as its 8 raw bytes, followed by the frame delay so
// the bridge and the controller keep up.
package bridge

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goburrow/serial"

	"github.com/sagostin/shuttle-vfd/pkg/vfd"
)

const (
	// DefaultBaudRate is the bridge firmware's line speed.
	DefaultBaudRate = 115200

	// DefaultTimeout bounds a single write.
	DefaultTimeout = time.Second
)

// Config describes the serial port.
type Config struct {
	Port       string
	BaudRate   int
	Timeout    time.Duration
	FrameDelay time.Duration // negative disables the delay
}

// Bridge is a display.Sender writing to a serial port.
type Bridge struct {
	mu     sync.Mutex
	port   io.WriteCloser
	delay  time.Duration
	sleep  func(time.Duration)
	closed bool
}

// Open opens the port 8N1.
func Open(cfg Config) (*Bridge, error) {
	if cfg.Port == "" {
		return nil, fmt.Errorf("bridge: port required")
	}
	if cfg.BaudRate <= 0 {
		cfg.BaudRate = DefaultBaudRate
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	vfd.LogDebug(vfd.ComponentTransport, "opening serial bridge", "port", cfg.Port, "baud", cfg.BaudRate)

	port, err := serial.Open(&serial.Config{
		Address:  cfg.Port,
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("bridge: open %s: %w", cfg.Port, err)
	}

	return New(port, cfg.FrameDelay), nil
}

// New wraps an already open port. A zero delay selects
// vfd.DefaultFrameDelay.
func New(port io.WriteCloser, delay time.Duration) *Bridge {
	if delay == 0 {
		delay = vfd.DefaultFrameDelay
	}
	return &Bridge{port: port, delay: delay, sleep: time.Sleep}
}

// SendFrame writes f and waits the frame delay.
func (b *Bridge) SendFrame(f vfd.Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return fmt.Errorf("bridge: port closed")
	}

	if err := writeAll(b.port, f[:]); err != nil {
		return fmt.Errorf("bridge: write: %w", err)
	}

	if b.delay > 0 {
		b.sleep(b.delay)
	}
	return nil
}

// Close closes the port.
func (b *Bridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	return b.port.Close()
}

func writeAll(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		p = p[n:]
	}
	return nil
}
