package termcap

// Handle is a Windows console handle.
type Handle uintptr

// Console constants, as defined by the Windows API.
const (
	FileTypeChar                    uint32 = 0x0002
	FileTypeRemote                  uint32 = 0x8000
	EnableVirtualTerminalProcessing uint32 = 0x0004

	InvalidHandle = ^Handle(0)

	// Windows 10 build 14393 is the first to honor
	// ENABLE_VIRTUAL_TERMINAL_PROCESSING.
	minVTMajor uint32 = 10
	minVTBuild uint32 = 14393
)

// Kernel is the set of console queries ConsoleProbe needs.
type Kernel interface {
	// Version returns the major version and build number of the OS.
	Version() (major, build uint32)
	// StdHandle resolves descriptor 1 or 2 to the stdout or stderr handle.
	StdHandle(fd uintptr) (Handle, bool)
	FileType(h Handle) (uint32, error)
	ConsoleMode(h Handle) (uint32, error)
	SetConsoleMode(h Handle, mode uint32) error
}

// ConsoleProbe enables virtual terminal processing on a Windows console.
type ConsoleProbe struct {
	Kernel Kernel
}

// Check implements Probe. It reports true only when it switched virtual
// terminal processing on itself; a console that already had it on reports
// false and its mode is left untouched.
func (p ConsoleProbe) Check(fd uintptr) Decision {
	k := p.Kernel
	if k == nil {
		k = SystemKernel()
	}

	major, build := k.Version()
	if major < minVTMajor || (major == minVTMajor && build < minVTBuild) {
		return unsupported(ReasonWindowsTooOld)
	}

	h, ok := k.StdHandle(fd)
	if !ok {
		return unsupported(ReasonNoStdHandle)
	}
	if h == 0 || h == InvalidHandle {
		return unsupported(ReasonInvalidHandle)
	}

	ft, err := k.FileType(h)
	if err != nil || ft&^FileTypeRemote != FileTypeChar {
		return unsupported(ReasonNotCharDevice)
	}

	mode, err := k.ConsoleMode(h)
	if err != nil {
		return unsupported(ReasonConsoleMode)
	}
	if mode&EnableVirtualTerminalProcessing != 0 {
		return unsupported(ReasonVTAlreadyEnabled)
	}

	if err := k.SetConsoleMode(h, mode|EnableVirtualTerminalProcessing); err != nil {
		return unsupported(ReasonVTFailed)
	}
	return supported(ReasonVTEnabled)
}
