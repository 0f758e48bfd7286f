package termcap

import (
	"github.com/griffithind/termout/internal/logging"
)

// Detector decides whether a stream should receive ANSI decoration.
type Detector struct {
	Env   Environment
	Probe Probe
}

// NewDetector returns a Detector for the running process.
func NewDetector() *Detector {
	return NewDetectorFor(OSEnvironment{})
}

// NewDetectorFor returns a Detector evaluating env with the probe for env's platform.
func NewDetectorFor(env Environment) *Detector {
	return &Detector{Env: env, Probe: DefaultProbe(env)}
}

// HasColorSupport reports whether stream can render ANSI escapes.
func (d *Detector) HasColorSupport(stream any) bool {
	return d.Decide(stream).Supported
}

// Decide runs the detection and reports the outcome with its reason.
//
// Precedence: NO_COLOR, then Hyper, then the Windows environment hints,
// then the descriptor probe.
func (d *Detector) Decide(stream any) Decision {
	env := d.Env
	if env == nil {
		env = OSEnvironment{}
	}
	decision := d.decide(env, stream)

	logger := logging.GetLogger("termcap")
	logger.Debug().
		Bool("supported", decision.Supported).
		Str("reason", string(decision.Reason)).
		Str("os", env.GOOS()).
		Msg("Color support detected")
	return decision
}

func (d *Detector) decide(env Environment, stream any) Decision {
	if _, ok := env.LookupEnv(EnvNoColor); ok {
		return unsupported(ReasonNoColor)
	}
	if getenv(env, EnvTermProgram) == "Hyper" {
		return supported(ReasonHyper)
	}

	if isWindows(env) {
		if _, ok := env.LookupEnv(EnvANSICON); ok {
			return supported(ReasonANSICON)
		}
		if getenv(env, EnvConEmuANSI) == "ON" {
			return supported(ReasonConEmu)
		}
		if getenv(env, EnvTerm) == "xterm" {
			return supported(ReasonXterm)
		}
	}

	fd, ok := DescriptorOf(stream)
	if !ok {
		return unsupported(ReasonNoDescriptor)
	}

	probe := d.Probe
	if probe == nil {
		probe = DefaultProbe(env)
	}
	return probe.Check(fd)
}
