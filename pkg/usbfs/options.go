package usbfs

import (
	"time"

	"github.com/sagostin/shuttle-vfd/pkg/vfd"
)

// HID SET_REPORT request carrying one frame.
const (
	reportRequestType = 0x21   // host to device, class, interface
	reportRequest     = 0x09   // SET_REPORT
	reportValue       = 0x0200 // output report, id 0
)

// Defaults for Options.
const (
	DefaultInterface = 1
	DefaultTimeout   = 1250 * time.Millisecond
)

// Options configures Open.
type Options struct {
	// Interface receives the reports and is claimed while open.
	Interface int

	// DetachKernelDriver unbinds usbhid from Interface on open and binds
	// it again on close.
	DetachKernelDriver bool

	// Timeout bounds each control transfer.
	Timeout time.Duration

	// FrameDelay is slept after every frame. Negative disables it.
	FrameDelay time.Duration
}

// DefaultOptions returns the options used for the Shuttle panel.
func DefaultOptions() Options {
	return Options{
		Interface:          DefaultInterface,
		DetachKernelDriver: true,
		Timeout:            DefaultTimeout,
		FrameDelay:         vfd.DefaultFrameDelay,
	}
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.FrameDelay == 0 {
		o.FrameDelay = vfd.DefaultFrameDelay
	}
	return o
}
