//go:build windows

package termcap

import (
	"strconv"

	"golang.org/x/sys/windows"
)

func windowsCodePage() string {
	return "cp" + strconv.FormatUint(uint64(windows.GetACP()), 10)
}
