package config

import (
	"github.com/sagostin/shuttle-vfd/pkg/bridge"
	"github.com/sagostin/shuttle-vfd/pkg/display"
	"github.com/sagostin/shuttle-vfd/pkg/rtc"
	"github.com/sagostin/shuttle-vfd/pkg/server"
	"github.com/sagostin/shuttle-vfd/pkg/usbfs"
	"github.com/sagostin/shuttle-vfd/pkg/vfd"
)

// Transports.
const (
	TransportUSB    = "usb"
	TransportSerial = "serial"
	TransportDump   = "dump"
)

// Time sources.
const (
	ClockSystem = "system"
	ClockRTC    = "rtc"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			Transport:          TransportUSB,
			VendorID:           vfd.VendorID,
			ProductIDs:         append([]uint16(nil), vfd.ProductIDs...),
			SysfsRoot:          usbfs.SysfsRoot,
			Interface:          usbfs.DefaultInterface,
			DetachKernelDriver: true,
			TimeoutMs:          int(usbfs.DefaultTimeout.Milliseconds()),
			FrameDelayMs:       int(vfd.DefaultFrameDelay.Milliseconds()),
			Serial: SerialConfig{
				Port:     "/dev/ttyUSB0",
				BaudRate: bridge.DefaultBaudRate,
			},
		},
		Clock: ClockConfig{
			Source:    ClockSystem,
			RTCDevice: rtc.DefaultDevice,
			SettleMs:  int(vfd.DefaultClockSettle.Milliseconds()),
		},
		Display: DisplayConfig{
			TextStyle: vfd.AlignCenter.String(),
			Greeting: GreetingConfig{
				Enabled: false,
				Message: display.DefaultGreeting,
			},
		},
		Server: ServerConfig{
			Socket: server.DefaultSocket,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}
