//go:build !linux

package rtc

func readDevice(string) (rtcTime, error) {
	return rtcTime{}, ErrNotSupported
}
