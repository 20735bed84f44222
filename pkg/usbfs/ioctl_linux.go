//go:build linux && (386 || amd64 || arm || arm64 || riscv64 || loong64)

package usbfs

import "unsafe"

// ioctl number layout shared by the architectures above:
//
//	bits 0-7:   command number
//	bits 8-15:  type
//	bits 16-29: argument size
//	bits 30-31: direction
const (
	iocNone  = 0
	iocWrite = 1
	iocRead  = 2

	iocNRShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNRShift | size<<iocSizeShift
}

func iocNoArg(typ, nr uintptr) uintptr { return ioc(iocNone, typ, nr, 0) }
func ior(typ, nr, size uintptr) uintptr { return ioc(iocRead, typ, nr, size) }
func iowr(typ, nr, size uintptr) uintptr { return ioc(iocRead|iocWrite, typ, nr, size) }

// ctrlTransfer matches struct usbdevfs_ctrltransfer.
type ctrlTransfer struct {
	requestType uint8
	request     uint8
	value       uint16
	index       uint16
	length      uint16
	timeout     uint32 // milliseconds
	data        uintptr
}

// ifaceIoctl matches struct usbdevfs_ioctl.
type ifaceIoctl struct {
	ifno int32
	code int32
	data uintptr
}

const usbdevfsType = 'U'

var (
	ioctlControl          = iowr(usbdevfsType, 0, unsafe.Sizeof(ctrlTransfer{}))
	ioctlClaimInterface   = ior(usbdevfsType, 15, unsafe.Sizeof(uint32(0)))
	ioctlReleaseInterface = ior(usbdevfsType, 16, unsafe.Sizeof(uint32(0)))
	ioctlIoctl            = iowr(usbdevfsType, 18, unsafe.Sizeof(ifaceIoctl{}))
	ioctlDisconnect       = iocNoArg(usbdevfsType, 22)
	ioctlConnect          = iocNoArg(usbdevfsType, 23)
)
