package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sagostin/shuttle-vfd/pkg/bridge"
	"github.com/sagostin/shuttle-vfd/pkg/config"
	"github.com/sagostin/shuttle-vfd/pkg/display"
	"github.com/sagostin/shuttle-vfd/pkg/rtc"
	"github.com/sagostin/shuttle-vfd/pkg/usbfs"
	"github.com/sagostin/shuttle-vfd/pkg/vfd"
)

// setup loads the config, applies flag overrides and configures logging.
func setup() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return nil, err
		}
	}
	if *transport != "" {
		cfg.Device.Transport = *transport
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	config.Normalize(cfg)

	level, _ := config.ParseLevel(cfg.Log.Level)
	format, _ := config.ParseFormat(cfg.Log.Format)
	vfd.SetLogFormat(format)
	vfd.SetLogLevel(level)
	if *verbose {
		vfd.SetVerbose(true)
	}

	vfd.LogDebug(vfd.ComponentConfig, "config loaded",
		"path", *configPath, "transport", cfg.Device.Transport, "clock", cfg.Clock.Source)
	return cfg, nil
}

// sender is a display.Sender that must be closed.
type sender interface {
	display.Sender
	io.Closer
}

type nopCloser struct{ display.Sender }

func (nopCloser) Close() error { return nil }

// openSender opens the configured transport.
func openSender(cfg *config.Config) (sender, error) {
	d := cfg.Device

	switch d.Transport {
	case config.TransportUSB:
		info, err := usbfs.FindFirst(d.SysfsRoot, d.VendorID, d.ProductIDs...)
		if err != nil {
			return nil, err
		}
		dev, err := usbfs.Open(info, usbfs.Options{
			Interface:          d.Interface,
			DetachKernelDriver: d.DetachKernelDriver,
			Timeout:            d.Timeout(),
			FrameDelay:         frameDelay(d),
		})
		if err != nil {
			return nil, err
		}
		return dev, nil

	case config.TransportSerial:
		b, err := bridge.Open(bridge.Config{
			Port:       d.Serial.Port,
			BaudRate:   d.Serial.BaudRate,
			Timeout:    d.Timeout(),
			FrameDelay: frameDelay(d),
		})
		if err != nil {
			return nil, err
		}
		return b, nil

	case config.TransportDump:
		return nopCloser{display.NewRecorder(os.Stdout)}, nil
	}

	return nil, fmt.Errorf("unknown transport %q", d.Transport)
}

// frameDelay maps a configured 0 ms to "no delay" for the transports,
// which treat zero as "use the default".
func frameDelay(d config.DeviceConfig) time.Duration {
	if d.FrameDelayMs == 0 {
		return -1
	}
	return d.FrameDelay()
}

func clockFor(cfg *config.Config) display.Clock {
	if cfg.Clock.Source == config.ClockRTC {
		return rtc.Device{Path: cfg.Clock.RTCDevice, UTC: cfg.Clock.RTCUTC}
	}
	return rtc.System{}
}

// openSession opens the transport and wraps it in a session configured
// from cfg. The returned sender must be closed by the caller.
func openSession(cfg *config.Config) (*display.Session, sender, error) {
	snd, err := openSender(cfg)
	if err != nil {
		return nil, nil, err
	}

	align, _ := vfd.ParseAlignment(cfg.Display.TextStyle)
	s := display.New(snd, clockFor(cfg),
		display.WithAlignment(align),
		display.WithClockSettle(cfg.Clock.Settle()),
	)
	return s, snd, nil
}

func greeting(cfg *config.Config) string {
	if !cfg.Display.Greeting.Enabled {
		return ""
	}
	return cfg.Display.Greeting.Message
}
