// Package rtc provides time sources for the display's clock mode.
package rtc

import (
	"errors"
	"fmt"
	"time"
)

// DefaultDevice is the first hardware clock.
const DefaultDevice = "/dev/rtc0"

var (
	// ErrInvalidTime is returned when the hardware clock holds a broken
	// time.
	ErrInvalidTime = errors.New("rtc: invalid time")

	// ErrNotSupported is returned on platforms without RTC ioctls.
	ErrNotSupported = errors.New("rtc: not supported on this platform")
)

// System reads the system clock.
type System struct{}

// Now returns time.Now.
func (System) Now() (time.Time, error) {
	return time.Now(), nil
}

// Device reads a hardware clock node such as /dev/rtc0. The RTC is assumed
// to hold local time unless UTC is set.
type Device struct {
	Path string
	UTC  bool
}

// Now reads the clock.
func (d Device) Now() (time.Time, error) {
	path := d.Path
	if path == "" {
		path = DefaultDevice
	}

	tm, err := readDevice(path)
	if err != nil {
		return time.Time{}, err
	}
	if err := validate(tm); err != nil {
		return time.Time{}, err
	}

	loc := time.Local
	if d.UTC {
		loc = time.UTC
	}
	return tm.time(loc), nil
}

// rtcTime mirrors struct rtc_time: month 0-11, year since 1900.
type rtcTime struct {
	sec, min, hour int
	mday, mon, yr  int
}

func (t rtcTime) time(loc *time.Location) time.Time {
	return time.Date(t.yr+1900, time.Month(t.mon+1), t.mday, t.hour, t.min, t.sec, 0, loc)
}

// validate applies the kernel's rtc_valid_tm rules.
func validate(t rtcTime) error {
	switch {
	case t.yr < 70:
		return fmt.Errorf("%w: year %d", ErrInvalidTime, t.yr+1900)
	case t.mon < 0 || t.mon > 11:
		return fmt.Errorf("%w: month %d", ErrInvalidTime, t.mon+1)
	case t.mday < 1 || t.mday > daysIn(t.mon, t.yr+1900):
		return fmt.Errorf("%w: day %d", ErrInvalidTime, t.mday)
	case t.hour < 0 || t.hour > 23:
		return fmt.Errorf("%w: hour %d", ErrInvalidTime, t.hour)
	case t.min < 0 || t.min > 59:
		return fmt.Errorf("%w: minute %d", ErrInvalidTime, t.min)
	case t.sec < 0 || t.sec > 59:
		return fmt.Errorf("%w: second %d", ErrInvalidTime, t.sec)
	}
	return nil
}

// daysIn returns the length of month (0-11) in year.
func daysIn(month, year int) int {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}
