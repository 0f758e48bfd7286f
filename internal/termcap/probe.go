package termcap

import (
	"github.com/mattn/go-isatty"
)

// Reason explains a color decision.
type Reason string

const (
	ReasonNoColor          Reason = "NO_COLOR is set"
	ReasonHyper            Reason = "TERM_PROGRAM is Hyper"
	ReasonANSICON          Reason = "ANSICON is set"
	ReasonConEmu           Reason = "ConEmuANSI is ON"
	ReasonXterm            Reason = "TERM is xterm"
	ReasonNoDescriptor     Reason = "stream has no file descriptor"
	ReasonTerminal         Reason = "descriptor is a terminal"
	ReasonNotTerminal      Reason = "descriptor is not a terminal"
	ReasonWindowsTooOld    Reason = "Windows build predates virtual terminal processing"
	ReasonNoStdHandle      Reason = "descriptor is not stdout or stderr"
	ReasonInvalidHandle    Reason = "console handle is invalid"
	ReasonNotCharDevice    Reason = "handle is not a character device"
	ReasonConsoleMode      Reason = "console mode query failed"
	ReasonVTAlreadyEnabled Reason = "virtual terminal processing already enabled"
	ReasonVTEnabled        Reason = "enabled virtual terminal processing"
	ReasonVTFailed         Reason = "could not enable virtual terminal processing"
	ReasonExplicit         Reason = "decoration set explicitly"
)

// Decision is the outcome of a color check.
type Decision struct {
	Supported bool
	Reason    Reason
}

func supported(r Reason) Decision   { return Decision{Supported: true, Reason: r} }
func unsupported(r Reason) Decision { return Decision{Supported: false, Reason: r} }

// Probe answers whether the terminal behind a descriptor renders ANSI escapes.
type Probe interface {
	Check(fd uintptr) Decision
}

// TTYProbe treats any terminal descriptor as color capable.
type TTYProbe struct {
	// IsTerminal overrides isatty.IsTerminal.
	IsTerminal func(fd uintptr) bool
}

// Check implements Probe.
func (p TTYProbe) Check(fd uintptr) Decision {
	isTerminal := p.IsTerminal
	if isTerminal == nil {
		isTerminal = isatty.IsTerminal
	}
	if isTerminal(fd) {
		return supported(ReasonTerminal)
	}
	return unsupported(ReasonNotTerminal)
}

// DefaultProbe returns the probe for the platform env reports.
func DefaultProbe(env Environment) Probe {
	if isWindows(env) {
		return ConsoleProbe{Kernel: SystemKernel()}
	}
	return TTYProbe{}
}
