// Package output writes formatted, verbosity-gated messages to terminal
// streams and tracks what those streams can display.
package output

import (
	"sync"

	"github.com/griffithind/termout/internal/formatter"
)

// SinkFunc receives every message that passes the verbosity gate, already
// transformed according to its type.
type SinkFunc func(message string, newLine bool) error

// Output implements verbosity gating and message formatting on top of a sink.
// StreamOutput, SectionOutput and BufferedOutput embed it.
type Output struct {
	mu        sync.RWMutex
	verbosity Verbosity
	formatter *formatter.Formatter
	sink      SinkFunc

	decorated *bool
}

// BaseOption configures an Output.
type BaseOption func(*Output)

// WithBaseVerbosity sets the verbosity level.
func WithBaseVerbosity(v Verbosity) BaseOption {
	return func(o *Output) { o.verbosity = v }
}

// WithBaseFormatter sets the formatter; decoration lives on it.
func WithBaseFormatter(f *formatter.Formatter) BaseOption {
	return func(o *Output) {
		if f != nil {
			o.formatter = f
		}
	}
}

// WithBaseDecorated sets decoration on the formatter.
func WithBaseDecorated(decorated bool) BaseOption {
	return func(o *Output) { o.decorated = &decorated }
}

// NewOutput returns an Output that delivers messages to sink.
func NewOutput(sink SinkFunc, opts ...BaseOption) *Output {
	o := &Output{verbosity: VerbosityNormal, sink: sink}
	for _, opt := range opts {
		opt(o)
	}
	if o.formatter == nil {
		o.formatter = formatter.New()
	}
	if o.decorated != nil {
		o.formatter.SetDecorated(*o.decorated)
		o.decorated = nil
	}
	return o
}

// Write emits message without a trailing newline.
func (o *Output) Write(message string, opts ...WriteOption) error {
	return o.WriteLines([]string{message}, false, opts...)
}

// WriteLine emits message followed by a newline.
func (o *Output) WriteLine(message string, opts ...WriteOption) error {
	return o.WriteLines([]string{message}, true, opts...)
}

// WriteLines emits each message in order, stopping at the first error.
func (o *Output) WriteLines(messages []string, newLine bool, opts ...WriteOption) error {
	wo := writeOptions{verbosity: VerbosityNormal, typ: TypeNormal}
	for _, opt := range opts {
		opt(&wo)
	}
	if wo.verbosity > o.Verbosity() {
		return nil
	}

	f := o.Formatter()
	for _, message := range messages {
		switch wo.typ {
		case TypeNormal:
			message = f.Format(message)
		case TypePlain:
			message = f.RemoveFormat(message)
		}
		if err := o.sink(message, newLine); err != nil {
			return err
		}
	}
	return nil
}

// Verbosity returns the current verbosity level.
func (o *Output) Verbosity() Verbosity {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.verbosity
}

// SetVerbosity changes the verbosity level.
func (o *Output) SetVerbosity(v Verbosity) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.verbosity = v
}

func (o *Output) IsQuiet() bool       { return o.Verbosity() == VerbosityQuiet }
func (o *Output) IsVerbose() bool     { return o.Verbosity() >= VerbosityVerbose }
func (o *Output) IsVeryVerbose() bool { return o.Verbosity() >= VerbosityVeryVerbose }
func (o *Output) IsDebug() bool       { return o.Verbosity() >= VerbosityDebug }

// IsDecorated reports whether messages are written with ANSI decoration.
func (o *Output) IsDecorated() bool {
	return o.Formatter().IsDecorated()
}

// SetDecorated turns ANSI decoration on or off.
func (o *Output) SetDecorated(decorated bool) {
	o.Formatter().SetDecorated(decorated)
}

// Formatter returns the formatter.
func (o *Output) Formatter() *formatter.Formatter {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.formatter
}

// SetFormatter replaces the formatter. A nil formatter is ignored.
func (o *Output) SetFormatter(f *formatter.Formatter) {
	if f == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.formatter = f
}

// RemoveFormat strips markup and ANSI sequences from message.
func (o *Output) RemoveFormat(message string) string {
	return o.Formatter().RemoveFormat(message)
}
