package config

import (
	"strings"

	"github.com/sagostin/shuttle-vfd/pkg/bridge"
	"github.com/sagostin/shuttle-vfd/pkg/display"
	"github.com/sagostin/shuttle-vfd/pkg/rtc"
	"github.com/sagostin/shuttle-vfd/pkg/server"
	"github.com/sagostin/shuttle-vfd/pkg/usbfs"
	"github.com/sagostin/shuttle-vfd/pkg/vfd"
)

// Normalize fills in defaults for zero values.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	d := &cfg.Device
	if len(d.ProductIDs) == 0 {
		d.ProductIDs = append([]uint16(nil), vfd.ProductIDs...)
	}
	if d.SysfsRoot == "" {
		d.SysfsRoot = usbfs.SysfsRoot
	}
	if d.TimeoutMs == 0 {
		d.TimeoutMs = int(usbfs.DefaultTimeout.Milliseconds())
	}
	if d.Serial.BaudRate == 0 {
		d.Serial.BaudRate = bridge.DefaultBaudRate
	}

	if cfg.Clock.RTCDevice == "" {
		cfg.Clock.RTCDevice = rtc.DefaultDevice
	}

	// keyword aliases are stored in their long form
	if a, err := vfd.ParseAlignment(cfg.Display.TextStyle); err == nil {
		cfg.Display.TextStyle = a.String()
	}
	if cfg.Display.Greeting.Enabled && cfg.Display.Greeting.Message == "" {
		cfg.Display.Greeting.Message = display.DefaultGreeting
	}

	if cfg.Server.Socket == "" {
		cfg.Server.Socket = server.DefaultSocket
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
}
