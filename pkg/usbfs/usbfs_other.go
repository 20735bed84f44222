//go:build !(linux && (386 || amd64 || arm || arm64 || riscv64 || loong64))

package usbfs

import "github.com/sagostin/shuttle-vfd/pkg/vfd"

// Device is an open VFD. It implements display.Sender.
type Device struct {
	info DeviceInfo
}

// Open always fails with ErrNotSupported on this platform.
func Open(info DeviceInfo, opts Options) (*Device, error) {
	return nil, ErrNotSupported
}

// Info returns the sysfs description of the device.
func (d *Device) Info() DeviceInfo { return d.info }

// SendFrame always fails with ErrNotSupported.
func (d *Device) SendFrame(vfd.Frame) error { return ErrNotSupported }

// Close does nothing.
func (d *Device) Close() error { return nil }
