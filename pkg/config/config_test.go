package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := Validate(cfg); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	if cfg.Device.VendorID != 0x051C || !reflect.DeepEqual(cfg.Device.ProductIDs, []uint16{0x0003, 0x0005}) {
		t.Errorf("device ids = %04x %v", cfg.Device.VendorID, cfg.Device.ProductIDs)
	}
	if cfg.Device.Timeout() != 1250*time.Millisecond || cfg.Device.FrameDelay() != 24*time.Millisecond {
		t.Errorf("device timings = %v %v", cfg.Device.Timeout(), cfg.Device.FrameDelay())
	}
	if cfg.Clock.Settle() != 20*time.Millisecond {
		t.Errorf("clock settle = %v", cfg.Clock.Settle())
	}
	if cfg.Display.TextStyle != "center" || cfg.Display.Greeting.Message != "Linux" {
		t.Errorf("display = %+v", cfg.Display)
	}
	if cfg.Display.Greeting.Enabled {
		t.Error("greeting should be off unless configured")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vfd.yaml")
	data := `
device:
  transport: serial
  serial:
    port: /dev/ttyACM0
clock:
  source: rtc
  rtc_utc: true
display:
  text_style: l
  greeting:
    enabled: true
    message: ""
log:
  level: DEBUG
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate err=%v", err)
	}
	Normalize(cfg)

	if cfg.Device.Transport != TransportSerial || cfg.Device.Serial.Port != "/dev/ttyACM0" {
		t.Errorf("device = %+v", cfg.Device)
	}
	// omitted keys keep their defaults
	if cfg.Device.Serial.BaudRate != 115200 || cfg.Device.FrameDelayMs != 24 {
		t.Errorf("defaults lost: baud=%d delay=%d", cfg.Device.Serial.BaudRate, cfg.Device.FrameDelayMs)
	}
	if cfg.Clock.Source != ClockRTC || !cfg.Clock.RTCUTC || cfg.Clock.RTCDevice != "/dev/rtc0" {
		t.Errorf("clock = %+v", cfg.Clock)
	}
	if cfg.Display.TextStyle != "left" {
		t.Errorf("text_style = %q, want left", cfg.Display.TextStyle)
	}
	if cfg.Display.Greeting.Message != "Linux" {
		t.Errorf("greeting = %q", cfg.Display.Greeting.Message)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of a missing file should fail")
	}

	if _, err := Parse([]byte("device:\n  transprt: usb\n")); err == nil {
		t.Error("unknown key should be rejected")
	}

	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("empty document err=%v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Error("empty document should yield the defaults")
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"transport", func(c *Config) { c.Device.Transport = "bluetooth" }},
		{"vendor", func(c *Config) { c.Device.VendorID = 0 }},
		{"interface", func(c *Config) { c.Device.Interface = -1 }},
		{"serial port", func(c *Config) { c.Device.Transport = TransportSerial; c.Device.Serial.Port = "" }},
		{"timeout", func(c *Config) { c.Device.TimeoutMs = -5 }},
		{"frame delay", func(c *Config) { c.Device.FrameDelayMs = -1 }},
		{"clock source", func(c *Config) { c.Clock.Source = "ntp" }},
		{"settle", func(c *Config) { c.Clock.SettleMs = -1 }},
		{"text style", func(c *Config) { c.Display.TextStyle = "justify" }},
		{"greeting NUL", func(c *Config) { c.Display.Greeting.Message = "a\x00b" }},
		{"log level", func(c *Config) { c.Log.Level = "trace" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			before := *cfg

			if err := Validate(cfg); !errors.Is(err, ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
			if !reflect.DeepEqual(*cfg, before) {
				t.Error("Validate mutated the config")
			}
		})
	}

	if err := Validate(nil); !errors.Is(err, ErrInvalid) {
		t.Errorf("Validate(nil) err = %v", err)
	}
}

func TestValidate_DumpNeedsNoDevice(t *testing.T) {
	cfg := Default()
	cfg.Device.Transport = TransportDump
	cfg.Device.VendorID = 0
	if err := Validate(cfg); err != nil {
		t.Errorf("dump transport err=%v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"Info":  slog.LevelInfo,
		"":      slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}
