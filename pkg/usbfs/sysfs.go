// Package usbfs drives the VFD through the Linux usbfs interface.
//
// The display enumerates as a HID device; frames are delivered as
// SET_REPORT control transfers on interface 1, so the kernel HID driver is
// usually detached from that interface while the device is open.
package usbfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// System paths.
const (
	SysfsRoot = "/sys/bus/usb/devices"
	DevfsRoot = "/dev/bus/usb"
)

var (
	// ErrNotFound is returned when no matching device is attached.
	ErrNotFound = errors.New("usbfs: no matching device")

	// ErrNotSupported is returned by Open on platforms without usbfs.
	ErrNotSupported = errors.New("usbfs: not supported on this platform")
)

// DeviceInfo describes a USB device discovered through sysfs.
type DeviceInfo struct {
	SysfsPath string
	DevfsPath string
	Bus       uint8
	Address   uint8
	VendorID  uint16
	ProductID uint16
	Product   string // product string, empty when the device has none
}

func (d DeviceInfo) String() string {
	s := fmt.Sprintf("%03d/%03d %04x:%04x", d.Bus, d.Address, d.VendorID, d.ProductID)
	if d.Product != "" {
		s += " " + d.Product
	}
	return s
}

// Find scans root (SysfsRoot when empty) for devices with the given vendor
// id and any of the product ids. With no product ids every product of the
// vendor matches. Results are sorted by sysfs path.
func Find(root string, vendor uint16, products ...uint16) ([]DeviceInfo, error) {
	if root == "" {
		root = SysfsRoot
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("usbfs: scan %s: %w", root, err)
	}

	var found []DeviceInfo
	for _, entry := range entries {
		name := entry.Name()

		// skip root hubs (usb1) and interfaces (1-1:1.0)
		if strings.HasPrefix(name, "usb") || strings.Contains(name, ":") {
			continue
		}

		info, err := parseDevice(filepath.Join(root, name))
		if err != nil {
			continue
		}
		if info.VendorID != vendor || !matchProduct(info.ProductID, products) {
			continue
		}
		found = append(found, info)
	}

	sort.Slice(found, func(i, j int) bool { return found[i].SysfsPath < found[j].SysfsPath })
	return found, nil
}

// FindFirst returns the first matching device or ErrNotFound.
func FindFirst(root string, vendor uint16, products ...uint16) (DeviceInfo, error) {
	found, err := Find(root, vendor, products...)
	if err != nil {
		return DeviceInfo{}, err
	}
	if len(found) == 0 {
		return DeviceInfo{}, fmt.Errorf("%w (vendor %04x)", ErrNotFound, vendor)
	}
	return found[0], nil
}

func matchProduct(id uint16, products []uint16) bool {
	if len(products) == 0 {
		return true
	}
	for _, p := range products {
		if p == id {
			return true
		}
	}
	return false
}

func parseDevice(sysfsPath string) (DeviceInfo, error) {
	info := DeviceInfo{SysfsPath: sysfsPath}

	bus, err := readUint(filepath.Join(sysfsPath, "busnum"), 10, 8)
	if err != nil {
		return info, err
	}
	addr, err := readUint(filepath.Join(sysfsPath, "devnum"), 10, 8)
	if err != nil {
		return info, err
	}
	vendor, err := readUint(filepath.Join(sysfsPath, "idVendor"), 16, 16)
	if err != nil {
		return info, err
	}
	product, err := readUint(filepath.Join(sysfsPath, "idProduct"), 16, 16)
	if err != nil {
		return info, err
	}

	info.Bus = uint8(bus)
	info.Address = uint8(addr)
	info.VendorID = uint16(vendor)
	info.ProductID = uint16(product)
	info.DevfsPath = fmt.Sprintf("%s/%03d/%03d", DevfsRoot, info.Bus, info.Address)
	info.Product, _ = readString(filepath.Join(sysfsPath, "product"))
	return info, nil
}

func readString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func readUint(path string, base, bitSize int) (uint64, error) {
	s, err := readString(path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(strings.TrimPrefix(s, "0x"), base, bitSize)
}
