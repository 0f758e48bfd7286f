// Package ui provides terminal output utilities using pterm, written
// through the process's stdout and stderr StreamOutputs.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pterm/pterm"

	"github.com/griffithind/termout/internal/output"
)

// Config holds UI configuration.
type Config struct {
	Out *output.StreamOutput
	Err *output.StreamOutput
}

var (
	config   Config
	configMu sync.Mutex
)

func init() {
	config = Config{
		Out: placeholder(os.Stdout),
		Err: placeholder(os.Stderr),
	}
}

// placeholder is an undecorated output used until Configure is called.
// It never runs detection; each process stream is detected once, by the
// output handed to Configure.
func placeholder(w io.Writer) *output.StreamOutput {
	return output.NewStreamOutput(w, output.WithDecorated(false))
}

// Configure sets the outputs used by the package. A nil output falls back
// to an undecorated one over the process stream.
func Configure(cfg Config) {
	configMu.Lock()
	defer configMu.Unlock()

	if cfg.Out == nil {
		cfg.Out = placeholder(os.Stdout)
	}
	if cfg.Err == nil {
		cfg.Err = placeholder(os.Stderr)
	}
	config = cfg

	pterm.SetDefaultOutput(NewWriter(cfg.Out))
}

// Out returns the stdout output.
func Out() *output.StreamOutput {
	configMu.Lock()
	defer configMu.Unlock()
	return config.Out
}

// Err returns the stderr output.
func Err() *output.StreamOutput {
	configMu.Lock()
	defer configMu.Unlock()
	return config.Err
}

// IsQuiet returns true if quiet mode is enabled.
func IsQuiet() bool {
	return Out().IsQuiet()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	return Out().IsVerbose()
}

// styled drops pterm's colors when o is not decorated.
func styled(o *output.StreamOutput, text string) string {
	if o.IsDecorated() {
		return text
	}
	return pterm.RemoveColorFromString(text)
}

func emit(o *output.StreamOutput, v output.Verbosity, text string) {
	_ = o.Write(styled(o, text), output.AtVerbosity(v), output.AsType(output.TypeRaw))
}

// Success prints a success message if not in quiet mode.
func Success(format string, args ...interface{}) {
	emit(Out(), output.VerbosityNormal, pterm.Success.Sprintf(format+"\n", args...))
}

// Error prints an error message (always shown, even in quiet mode).
func Error(format string, args ...interface{}) {
	emit(Err(), output.VerbosityQuiet, pterm.Error.Sprintf(format+"\n", args...))
}

// Warning prints a warning message if not in quiet mode.
func Warning(format string, args ...interface{}) {
	emit(Err(), output.VerbosityNormal, pterm.Warning.Sprintf(format+"\n", args...))
}

// Info prints an info message if not in quiet mode.
func Info(format string, args ...interface{}) {
	emit(Out(), output.VerbosityNormal, pterm.Info.Sprintf(format+"\n", args...))
}

// Verbose prints a message only in verbose mode.
func Verbose(format string, args ...interface{}) {
	emit(Out(), output.VerbosityVerbose, pterm.FgGray.Sprintf(format+"\n", args...))
}

// Printf prints a formatted line if not in quiet mode.
func Printf(format string, args ...interface{}) {
	emit(Out(), output.VerbosityNormal, fmt.Sprintf(format+"\n", args...))
}

// RenderTable renders a table with headers and rows.
// Does nothing in quiet mode.
func RenderTable(headers []string, rows [][]string) error {
	o := Out()
	if o.IsQuiet() {
		return nil
	}
	data := pterm.TableData{headers}
	for _, row := range rows {
		data = append(data, row)
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	return o.WriteLine(styled(o, table), output.AsType(output.TypeRaw))
}

// Writer adapts an output to io.Writer. Bytes are written raw at the given
// verbosity.
type Writer struct {
	out       *output.StreamOutput
	verbosity output.Verbosity
}

// NewWriter returns a Writer at normal verbosity.
func NewWriter(o *output.StreamOutput) *Writer {
	return &Writer{out: o, verbosity: output.VerbosityNormal}
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	if err := w.out.Write(string(p), output.AtVerbosity(w.verbosity), output.AsType(output.TypeRaw)); err != nil {
		return 0, err
	}
	return len(p), nil
}

var _ io.Writer = (*Writer)(nil)
