// Package config loads the driver configuration from YAML.
//
// Load reads and decodes, Validate checks without mutating and Normalize
// fills in defaults. Callers run them in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Device  DeviceConfig  `yaml:"device"`
	Clock   ClockConfig   `yaml:"clock"`
	Display DisplayConfig `yaml:"display"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Transport string `yaml:"transport"` // usb | serial | dump

	VendorID   uint16   `yaml:"vendor_id"`
	ProductIDs []uint16 `yaml:"product_ids"`
	SysfsRoot  string   `yaml:"sysfs_root"`

	Interface          int  `yaml:"interface"`
	DetachKernelDriver bool `yaml:"detach_kernel_driver"`

	TimeoutMs    int `yaml:"timeout_ms"`
	FrameDelayMs int `yaml:"frame_delay_ms"`

	Serial SerialConfig `yaml:"serial"`
}

type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// ---- CLOCK ----

type ClockConfig struct {
	Source    string `yaml:"source"` // system | rtc
	RTCDevice string `yaml:"rtc_device"`
	RTCUTC    bool   `yaml:"rtc_utc"`
	SettleMs  int    `yaml:"settle_ms"`
}

// ---- DISPLAY ----

type DisplayConfig struct {
	TextStyle string         `yaml:"text_style"`
	Greeting  GreetingConfig `yaml:"greeting"`
}

type GreetingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Message string `yaml:"message"`
}

// ---- SERVER ----

type ServerConfig struct {
	Socket string `yaml:"socket"`
}

// ---- LOG ----

type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load reads path, starting from Default so omitted keys keep their
// default values. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Durations in the config are integer milliseconds.

func (c DeviceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

func (c DeviceConfig) FrameDelay() time.Duration {
	return time.Duration(c.FrameDelayMs) * time.Millisecond
}

func (c ClockConfig) Settle() time.Duration {
	return time.Duration(c.SettleMs) * time.Millisecond
}
