package output

import (
	"strings"

	"github.com/griffithind/termout/internal/errors"
)

// Verbosity represents the output verbosity level. Levels are ordered:
// a message is shown when its level is at most the output's level.
type Verbosity int

const (
	VerbosityQuiet Verbosity = iota
	VerbosityNormal
	VerbosityVerbose
	VerbosityVeryVerbose
	VerbosityDebug
)

var verbosityNames = map[Verbosity]string{
	VerbosityQuiet:       "quiet",
	VerbosityNormal:      "normal",
	VerbosityVerbose:     "verbose",
	VerbosityVeryVerbose: "very-verbose",
	VerbosityDebug:       "debug",
}

func (v Verbosity) String() string {
	if name, ok := verbosityNames[v]; ok {
		return name
	}
	return "unknown"
}

// ParseVerbosity parses a verbosity name, case-insensitively.
// "very_verbose" and "veryverbose" are accepted for "very-verbose".
func ParseVerbosity(s string) (Verbosity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "very_verbose", "veryverbose":
		name = "very-verbose"
	}
	for v, n := range verbosityNames {
		if n == name {
			return v, nil
		}
	}
	return VerbosityNormal, errors.VerbosityInvalid(s)
}

// VerbosityFromFlags maps the -q flag and -v count to a level.
func VerbosityFromFlags(quiet bool, verbose int) Verbosity {
	if quiet {
		return VerbosityQuiet
	}
	v := VerbosityNormal + Verbosity(verbose)
	if v > VerbosityDebug {
		return VerbosityDebug
	}
	return v
}

// Type selects how a message is transformed before it is written.
type Type int

const (
	// TypeNormal runs the message through the formatter.
	TypeNormal Type = iota
	// TypeRaw writes the message verbatim.
	TypeRaw
	// TypePlain strips markup from the message.
	TypePlain
)

func (t Type) String() string {
	switch t {
	case TypeNormal:
		return "normal"
	case TypeRaw:
		return "raw"
	case TypePlain:
		return "plain"
	default:
		return "unknown"
	}
}

// ParseType parses a write type name.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "":
		return TypeNormal, nil
	case "raw":
		return TypeRaw, nil
	case "plain":
		return TypePlain, nil
	}
	return TypeNormal, errors.TypeInvalid(s)
}

// WriteOption adjusts a single write.
type WriteOption func(*writeOptions)

type writeOptions struct {
	verbosity Verbosity
	typ       Type
}

// AtVerbosity shows the message only when the output is at least this verbose.
func AtVerbosity(v Verbosity) WriteOption {
	return func(o *writeOptions) { o.verbosity = v }
}

// AsType selects how the message is transformed.
func AsType(t Type) WriteOption {
	return func(o *writeOptions) { o.typ = t }
}
