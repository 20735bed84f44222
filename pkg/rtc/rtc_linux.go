//go:build linux

package rtc

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func readDevice(path string) (rtcTime, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return rtcTime{}, fmt.Errorf("rtc: open %s: %w", path, err)
	}
	defer unix.Close(fd)

	tm, err := unix.IoctlGetRTCTime(fd)
	if err != nil {
		return rtcTime{}, fmt.Errorf("rtc: read %s: %w", path, err)
	}

	return rtcTime{
		sec:  int(tm.Sec),
		min:  int(tm.Min),
		hour: int(tm.Hour),
		mday: int(tm.Mday),
		mon:  int(tm.Mon),
		yr:   int(tm.Year),
	}, nil
}
