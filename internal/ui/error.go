package ui

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/griffithind/termout/internal/errors"
	"github.com/griffithind/termout/internal/output"
)

// ErrorFormatter provides consistent error formatting.
type ErrorFormatter struct {
	out *output.StreamOutput
}

// NewErrorFormatter creates a new error formatter.
func NewErrorFormatter(o *output.StreamOutput) *ErrorFormatter {
	return &ErrorFormatter{out: o}
}

// Format formats an error for display.
func (f *ErrorFormatter) Format(err error) string {
	if err == nil {
		return ""
	}

	if e, ok := errors.As(err); ok {
		return styled(f.out, f.formatError(e))
	}
	return styled(f.out, f.formatGenericError(err))
}

// followUps names the termout command that helps with each error category.
var followUps = map[errors.Category]string{
	errors.CategoryConfig:   "termout config --validate",
	errors.CategoryTerminal: "termout probe",
	errors.CategoryIO:       "termout probe --json",
	errors.CategoryInternal: "report it with the output of termout probe --json",
}

// formatError renders a headline followed by one labeled field per line:
// cause, context entries, hint and the follow-up command.
func (f *ErrorFormatter) formatError(err *errors.Error) string {
	badge := pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold).
		Sprintf(" %s ", strings.ToUpper(string(err.Category)))
	lines := []string{fmt.Sprintf("%s %s %s", badge, pterm.FgRed.Sprint(err.Message), pterm.FgGray.Sprintf("[%s]", err.Code))}

	field := func(label, value string) {
		lines = append(lines, fmt.Sprintf("  %s %s", pterm.FgBlue.Sprintf("%-7s", label), value))
	}
	if err.Cause != nil {
		field("cause", err.Cause.Error())
	}
	for _, k := range err.ContextKeys() {
		field(k, err.Context[k])
	}
	if err.Hint != "" {
		field("hint", pterm.FgGray.Sprint(err.Hint))
	}
	if next, ok := followUps[err.Category]; ok {
		field("next", pterm.FgCyan.Sprint(next))
	}
	return strings.Join(lines, "\n") + "\n"
}

// formatGenericError formats a regular error.
func (f *ErrorFormatter) formatGenericError(err error) string {
	return fmt.Sprintf("%s %s\n", pterm.FgRed.Sprint("✗"), err.Error())
}

// Write writes a formatted error, even in quiet mode.
func (f *ErrorFormatter) Write(err error) {
	if err == nil {
		return
	}
	_ = f.out.Write(f.Format(err), output.AtVerbosity(output.VerbosityQuiet), output.AsType(output.TypeRaw))
}

// PrintError prints a formatted error to the configured stderr output.
func PrintError(err error) {
	if err == nil {
		return
	}
	NewErrorFormatter(Err()).Write(err)
}

// FormatErrorBrief returns a brief one-line error message.
func FormatErrorBrief(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := errors.As(err); ok {
		return fmt.Sprintf("[%s/%s] %s", e.Category, e.Code, e.Message)
	}
	return err.Error()
}

// IsUserError returns true if the error is likely a user error (vs internal error).
func IsUserError(err error) bool {
	if err == nil {
		return false
	}
	if e, ok := errors.As(err); ok {
		return e.Category != errors.CategoryInternal
	}
	return true
}
