//go:build !windows

package termcap

// windowsCodePage has no ANSI code page to report off Windows.
func windowsCodePage() string {
	return ""
}
