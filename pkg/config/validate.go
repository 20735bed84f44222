package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sagostin/shuttle-vfd/pkg/vfd"
)

// Validate checks configuration correctness.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: empty", ErrInvalid)
	}

	// ---- device ----

	d := cfg.Device
	switch d.Transport {
	case TransportUSB:
		if d.VendorID == 0 {
			return invalid("device.vendor_id is required for usb transport")
		}
		if d.Interface < 0 {
			return invalid("device.interface %d is negative", d.Interface)
		}
	case TransportSerial:
		if d.Serial.Port == "" {
			return invalid("device.serial.port is required for serial transport")
		}
		if d.Serial.BaudRate < 0 {
			return invalid("device.serial.baud_rate %d is negative", d.Serial.BaudRate)
		}
	case TransportDump:
	default:
		return invalid("device.transport %q: want usb, serial or dump", d.Transport)
	}

	if d.TimeoutMs < 0 {
		return invalid("device.timeout_ms %d is negative", d.TimeoutMs)
	}
	if d.FrameDelayMs < 0 {
		return invalid("device.frame_delay_ms %d is negative", d.FrameDelayMs)
	}

	// ---- clock ----

	switch cfg.Clock.Source {
	case ClockSystem, ClockRTC:
	default:
		return invalid("clock.source %q: want system or rtc", cfg.Clock.Source)
	}
	if cfg.Clock.SettleMs < 0 {
		return invalid("clock.settle_ms %d is negative", cfg.Clock.SettleMs)
	}

	// ---- display ----

	if _, err := vfd.ParseAlignment(cfg.Display.TextStyle); err != nil {
		return invalid("display.text_style: %v", err)
	}
	for i := 0; i < len(cfg.Display.Greeting.Message); i++ {
		if cfg.Display.Greeting.Message[i] == 0 {
			return invalid("display.greeting.message contains NUL")
		}
	}

	// ---- log ----

	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		return invalid("log.level: %v", err)
	}
	if _, err := ParseFormat(cfg.Log.Format); err != nil {
		return invalid("log.format: %v", err)
	}

	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

// ParseLevel maps debug, info, warn and error to slog levels. An empty
// string selects warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown level %q", s)
}

// ParseFormat maps text and json to log formats.
func ParseFormat(s string) (vfd.LogFormat, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return vfd.LogFormatText, nil
	case "json":
		return vfd.LogFormatJSON, nil
	}
	return 0, fmt.Errorf("unknown format %q", s)
}
