package ui

import "github.com/griffithind/termout/internal/output"

// CobraOutWriter wraps stdout for Cobra, respecting quiet mode.
// It delegates to ui.Out() at write-time, so it automatically uses
// the configured output after ui.Configure() is called.
type CobraOutWriter struct{}

// NewCobraOutWriter creates a new Cobra stdout writer.
func NewCobraOutWriter() *CobraOutWriter {
	return &CobraOutWriter{}
}

func (w *CobraOutWriter) Write(p []byte) (n int, err error) {
	return (&Writer{out: Out(), verbosity: output.VerbosityNormal}).Write(p)
}

// CobraErrWriter wraps stderr for Cobra. Errors always pass through.
type CobraErrWriter struct{}

// NewCobraErrWriter creates a new Cobra stderr writer.
func NewCobraErrWriter() *CobraErrWriter {
	return &CobraErrWriter{}
}

func (w *CobraErrWriter) Write(p []byte) (n int, err error) {
	return (&Writer{out: Err(), verbosity: output.VerbosityQuiet}).Write(p)
}
