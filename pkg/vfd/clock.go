package vfd

import "time"

// ClockTime holds the fields loaded into the controller's clock.
// The zero value is what the display shows when no time could be read.
type ClockTime struct {
	Second  int
	Minute  int
	Hour    int
	Weekday int // 0=Sunday, 1=Monday, ...
	Day     int // 1-31
	Month   int // 1-12
	Year    int // two digits
}

// ClockTimeOf extracts the clock fields from t.
func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime{
		Second:  t.Second(),
		Minute:  t.Minute(),
		Hour:    t.Hour(),
		Weekday: int(t.Weekday()),
		Day:     t.Day(),
		Month:   int(t.Month()),
		Year:    t.Year() % 100,
	}
}

// bcd packs the two decimal digits of v into one byte: 45 becomes 0x45.
func bcd(v int) byte {
	return byte((v/10)*16 + v%10)
}
