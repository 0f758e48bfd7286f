//go:build !windows

package termcap

import "errors"

var errNoConsole = errors.New("windows console API not available")

type systemKernel struct{}

// SystemKernel returns a Kernel whose every query fails.
func SystemKernel() Kernel {
	return systemKernel{}
}

func (systemKernel) Version() (uint32, uint32)           { return 0, 0 }
func (systemKernel) StdHandle(uintptr) (Handle, bool)    { return 0, false }
func (systemKernel) FileType(Handle) (uint32, error)     { return 0, errNoConsole }
func (systemKernel) ConsoleMode(Handle) (uint32, error)  { return 0, errNoConsole }
func (systemKernel) SetConsoleMode(Handle, uint32) error { return errNoConsole }
