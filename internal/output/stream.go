package output

import (
	"io"
	"sync"

	"github.com/griffithind/termout/internal/errors"
	"github.com/griffithind/termout/internal/formatter"
	"github.com/griffithind/termout/internal/logging"
	"github.com/griffithind/termout/internal/termcap"
)

// Capability is a cached yes/no answer that may not have been computed yet.
type Capability int

const (
	CapabilityUnknown Capability = iota
	CapabilitySupported
	CapabilityUnsupported
)

func capabilityOf(ok bool) Capability {
	if ok {
		return CapabilitySupported
	}
	return CapabilityUnsupported
}

func (c Capability) String() string {
	switch c {
	case CapabilitySupported:
		return "supported"
	case CapabilityUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// EncodingLookup normalizes an encoding name to its canonical form.
type EncodingLookup func(name string) (string, error)

type flusher interface {
	Flush() error
}

// streamCore is the state StreamOutput and SectionOutput share: the stream
// with its write lock, and the UTF-8 answer for it.
type streamCore struct {
	stream   io.Writer
	env      termcap.Environment
	lookup   EncodingLookup
	registry *sectionRegistry

	cacheMu sync.Mutex
	utf8    Capability
}

// Stream returns the underlying writer.
func (c *streamCore) Stream() io.Writer {
	return c.stream
}

// SupportsUTF8 reports whether the stream's encoding is UTF-8. The stream's
// declared encoding is used when it has one, else the locale's preferred
// encoding; a name that cannot be resolved counts as UTF-8. The answer is
// computed once.
func (c *streamCore) SupportsUTF8() bool {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	if c.utf8 != CapabilityUnknown {
		return c.utf8 == CapabilitySupported
	}

	name := termcap.DeclaredEncoding(c.stream)
	if name == "" {
		name = termcap.PreferredEncoding(c.env)
	}
	canonical, err := c.lookup(name)
	if err != nil {
		canonical = termcap.UTF8
	}
	c.utf8 = capabilityOf(canonical == termcap.UTF8)

	logger := logging.GetLogger("output")
	logger.Debug().
		Str("encoding", name).
		Str("canonical", canonical).
		AnErr("lookupError", err).
		Msg("UTF-8 support detected")
	return c.utf8 == CapabilitySupported
}

// UTF8Capability returns the cached UTF-8 answer without computing it.
func (c *streamCore) UTF8Capability() Capability {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	return c.utf8
}

// Flush flushes the stream if it buffers output.
func (c *streamCore) Flush() error {
	c.registry.mu.Lock()
	defer c.registry.mu.Unlock()

	f, ok := c.stream.(flusher)
	if !ok {
		return nil
	}
	if err := f.Flush(); err != nil {
		return errors.StreamFlush(err)
	}
	return nil
}

// writeLocked writes message, plus one newline when asked. The caller holds
// registry.mu.
func (c *streamCore) writeLocked(message string, newLine bool) error {
	if newLine {
		message += "\n"
	}
	if message == "" {
		return nil
	}
	if _, err := io.WriteString(c.stream, message); err != nil {
		return errors.StreamWrite(err)
	}
	return nil
}

// Sections returns the sections created on this stream, oldest first.
func (c *streamCore) Sections() []*SectionOutput {
	c.registry.mu.Lock()
	defer c.registry.mu.Unlock()
	return append([]*SectionOutput(nil), c.registry.sections...)
}

// StreamOutput writes to a single stream such as stdout or stderr.
type StreamOutput struct {
	*Output
	*streamCore

	decoration       Capability
	decorationReason termcap.Reason
}

// Option configures a StreamOutput.
type Option func(*streamConfig)

type streamConfig struct {
	verbosity Verbosity
	decorated *bool
	formatter *formatter.Formatter
	detector  *termcap.Detector
	lookup    EncodingLookup
	env       termcap.Environment
}

// WithVerbosity sets the verbosity level. Default VerbosityNormal.
func WithVerbosity(v Verbosity) Option {
	return func(c *streamConfig) { c.verbosity = v }
}

// WithDecorated forces decoration on or off and skips detection.
func WithDecorated(decorated bool) Option {
	return func(c *streamConfig) { c.decorated = &decorated }
}

// WithFormatter sets the formatter.
func WithFormatter(f *formatter.Formatter) Option {
	return func(c *streamConfig) { c.formatter = f }
}

// WithDetector replaces the color detector.
func WithDetector(d *termcap.Detector) Option {
	return func(c *streamConfig) { c.detector = d }
}

// WithEncodingLookup replaces termcap.CanonicalEncoding.
func WithEncodingLookup(fn EncodingLookup) Option {
	return func(c *streamConfig) { c.lookup = fn }
}

// WithEnvironment sets the environment used for detection, locale and width.
func WithEnvironment(env termcap.Environment) Option {
	return func(c *streamConfig) { c.env = env }
}

// NewStreamOutput wraps stream. Unless WithDecorated is given, color support
// is detected here, once.
func NewStreamOutput(stream io.Writer, opts ...Option) *StreamOutput {
	cfg := streamConfig{verbosity: VerbosityNormal}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.env == nil {
		cfg.env = termcap.OSEnvironment{}
	}
	if cfg.lookup == nil {
		cfg.lookup = termcap.CanonicalEncoding
	}
	if cfg.detector == nil {
		cfg.detector = termcap.NewDetectorFor(cfg.env)
	}

	var decision termcap.Decision
	if cfg.decorated != nil {
		decision = termcap.Decision{Supported: *cfg.decorated, Reason: termcap.ReasonExplicit}
	} else {
		decision = cfg.detector.Decide(stream)
	}

	s := &StreamOutput{
		streamCore: &streamCore{
			stream:   stream,
			env:      cfg.env,
			lookup:   cfg.lookup,
			registry: &sectionRegistry{},
		},
		decoration:       capabilityOf(decision.Supported),
		decorationReason: decision.Reason,
	}
	s.Output = NewOutput(s.write,
		WithBaseVerbosity(cfg.verbosity),
		WithBaseFormatter(cfg.formatter),
		WithBaseDecorated(decision.Supported),
	)
	return s
}

// DecorationCapability returns what was decided for decoration at construction.
func (s *StreamOutput) DecorationCapability() Capability {
	return s.decoration
}

// DecorationReason explains the construction-time decoration decision.
func (s *StreamOutput) DecorationReason() termcap.Reason {
	return s.decorationReason
}

// Section creates a section on this stream.
func (s *StreamOutput) Section() *SectionOutput {
	return newSection(s.streamCore, s.Verbosity(), s.IsDecorated(), s.Formatter())
}

func (s *StreamOutput) write(message string, newLine bool) error {
	s.registry.mu.Lock()
	defer s.registry.mu.Unlock()
	return s.writeLocked(message, newLine)
}
