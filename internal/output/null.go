package output

// NullOutput discards everything written to it.
type NullOutput struct {
	*Output
}

// NewNullOutput returns a quiet, undecorated output with no destination.
func NewNullOutput() *NullOutput {
	return &NullOutput{Output: NewOutput(
		func(string, bool) error { return nil },
		WithBaseVerbosity(VerbosityQuiet),
		WithBaseDecorated(false),
	)}
}

func (NullOutput) SupportsUTF8() bool { return true }
func (NullOutput) Flush() error       { return nil }
