//go:build windows

package termcap

import (
	"golang.org/x/sys/windows"
)

type systemKernel struct{}

// SystemKernel returns the Kernel backed by the Windows API.
func SystemKernel() Kernel {
	return systemKernel{}
}

func (systemKernel) Version() (uint32, uint32) {
	v := windows.RtlGetVersion()
	return v.MajorVersion, v.BuildNumber
}

func (systemKernel) StdHandle(fd uintptr) (Handle, bool) {
	var which uint32
	switch fd {
	case 1:
		which = windows.STD_OUTPUT_HANDLE
	case 2:
		which = windows.STD_ERROR_HANDLE
	default:
		return 0, false
	}
	h, err := windows.GetStdHandle(which)
	if err != nil {
		return Handle(windows.InvalidHandle), true
	}
	return Handle(h), true
}

func (systemKernel) FileType(h Handle) (uint32, error) {
	return windows.GetFileType(windows.Handle(h))
}

func (systemKernel) ConsoleMode(h Handle) (uint32, error) {
	var mode uint32
	err := windows.GetConsoleMode(windows.Handle(h), &mode)
	return mode, err
}

func (systemKernel) SetConsoleMode(h Handle, mode uint32) error {
	return windows.SetConsoleMode(windows.Handle(h), mode)
}
