//go:build linux && (386 || amd64 || arm || arm64 || riscv64 || loong64)

package usbfs

import (
	"fmt"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/sagostin/shuttle-vfd/pkg/vfd"
)

// Device is an open VFD. It implements display.Sender.
type Device struct {
	mu       sync.Mutex
	fd       int
	info     DeviceInfo
	opts     Options
	detached bool
	closed   bool
}

// Open opens the devfs node of info, detaches the kernel driver from the
// report interface when asked to, and claims it.
func Open(info DeviceInfo, opts Options) (*Device, error) {
	opts = opts.withDefaults()

	fd, err := unix.Open(info.DevfsPath, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("usbfs: open %s: %w", info.DevfsPath, err)
	}

	d := &Device{fd: fd, info: info, opts: opts}

	if opts.DetachKernelDriver {
		err := d.driverIoctl(ioctlDisconnect)
		switch err {
		case nil:
			d.detached = true
			vfd.LogDebug(vfd.ComponentTransport, "kernel driver detached", "interface", opts.Interface)
		case unix.ENODATA:
			// no driver bound
		default:
			unix.Close(fd)
			return nil, fmt.Errorf("usbfs: detach kernel driver: %w", err)
		}
	}

	if err := d.ifaceIoctl(ioctlClaimInterface); err != nil {
		d.reattach()
		unix.Close(fd)
		return nil, fmt.Errorf("usbfs: claim interface %d: %w", opts.Interface, err)
	}

	vfd.LogInfo(vfd.ComponentTransport, "device opened", "device", info.String())
	return d, nil
}

// Info returns the sysfs description of the device.
func (d *Device) Info() DeviceInfo {
	return d.info
}

// SendFrame delivers f as a HID output report and waits for the controller
// to take it.
func (d *Device) SendFrame(f vfd.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return fmt.Errorf("usbfs: device closed")
	}

	buf := f
	ctrl := ctrlTransfer{
		requestType: reportRequestType,
		request:     reportRequest,
		value:       reportValue,
		index:       uint16(d.opts.Interface),
		length:      uint16(len(buf)),
		timeout:     uint32(d.opts.Timeout / time.Millisecond),
		data:        uintptr(unsafe.Pointer(&buf[0])),
	}

	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(d.fd), ioctlControl, uintptr(unsafe.Pointer(&ctrl)))
	runtime.KeepAlive(&buf)
	if errno != 0 {
		return fmt.Errorf("usbfs: control transfer: %w", errno)
	}

	if d.opts.FrameDelay > 0 {
		time.Sleep(d.opts.FrameDelay)
	}
	return nil
}

// Close releases the interface, hands it back to the kernel driver if it
// was detached and closes the node.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	if err := d.ifaceIoctl(ioctlReleaseInterface); err != nil {
		vfd.LogWarn(vfd.ComponentTransport, "release interface failed", "error", err)
	}
	d.reattach()

	if err := unix.Close(d.fd); err != nil {
		return fmt.Errorf("usbfs: close: %w", err)
	}
	return nil
}

func (d *Device) reattach() {
	if !d.detached {
		return
	}
	if err := d.driverIoctl(ioctlConnect); err != nil {
		vfd.LogWarn(vfd.ComponentTransport, "reattach kernel driver failed", "error", err)
		return
	}
	d.detached = false
}

// ifaceIoctl issues an ioctl taking the interface number.
func (d *Device) ifaceIoctl(req uintptr) error {
	ifno := uint32(d.opts.Interface)
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(d.fd), req, uintptr(unsafe.Pointer(&ifno)))
	runtime.KeepAlive(&ifno)
	if errno != 0 {
		return errno
	}
	return nil
}

// driverIoctl forwards code to the driver bound to the interface.
func (d *Device) driverIoctl(code uintptr) error {
	cmd := ifaceIoctl{ifno: int32(d.opts.Interface), code: int32(code)}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(d.fd), ioctlIoctl, uintptr(unsafe.Pointer(&cmd)))
	runtime.KeepAlive(&cmd)
	if errno != 0 {
		return errno
	}
	return nil
}
