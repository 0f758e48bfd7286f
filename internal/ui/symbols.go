package ui

import (
	"github.com/pterm/pterm"

	"github.com/griffithind/termout/internal/output"
)

// Symbols provides consistent symbols for CLI output.
var Symbols = struct {
	// Check results
	CheckPass string
	CheckFail string
	CheckWarn string
	CheckSkip string

	// List formatting
	Bullet string
}{
	CheckPass: "✓",
	CheckFail: "✗",
	CheckWarn: "!",
	CheckSkip: "-",
	Bullet:    "•",
}

// ASCIISymbols replaces Symbols on streams that cannot encode UTF-8.
var ASCIISymbols = struct {
	CheckPass string
	CheckFail string
	CheckWarn string
	CheckSkip string
	Bullet    string
}{
	CheckPass: "+",
	CheckFail: "x",
	CheckWarn: "!",
	CheckSkip: "-",
	Bullet:    "*",
}

// CheckResult represents a check result for formatting.
type CheckResult int

const (
	CheckResultPass CheckResult = iota
	CheckResultFail
	CheckResultWarn
	CheckResultSkip
)

// CheckFor maps a yes/no answer to a pass or fail result.
func CheckFor(ok bool) CheckResult {
	if ok {
		return CheckResultPass
	}
	return CheckResultFail
}

// FormatCheck formats a check result with symbol and color.
func FormatCheck(result CheckResult, message string) string {
	return formatCheck(result, message, true)
}

func formatCheck(result CheckResult, message string, utf8 bool) string {
	pass, fail, warn, skip := Symbols.CheckPass, Symbols.CheckFail, Symbols.CheckWarn, Symbols.CheckSkip
	if !utf8 {
		pass, fail, warn, skip = ASCIISymbols.CheckPass, ASCIISymbols.CheckFail, ASCIISymbols.CheckWarn, ASCIISymbols.CheckSkip
	}
	switch result {
	case CheckResultPass:
		return pterm.FgGreen.Sprint(pass) + " " + message
	case CheckResultFail:
		return pterm.FgRed.Sprint(fail) + " " + message
	case CheckResultWarn:
		return pterm.FgYellow.Sprint(warn) + " " + message
	case CheckResultSkip:
		return pterm.FgGray.Sprint(skip) + " " + pterm.FgGray.Sprint(message)
	default:
		return message
	}
}

// PrintCheck prints a check line on stdout, using ASCII symbols when stdout
// cannot encode UTF-8.
func PrintCheck(result CheckResult, message string) {
	o := Out()
	emit(o, output.VerbosityNormal, formatCheck(result, message, o.SupportsUTF8())+"\n")
}

// FormatLabel formats a label with consistent styling.
func FormatLabel(label, value string) string {
	return pterm.FgBlue.Sprint(label+":") + " " + value
}

// Bold returns bold text.
func Bold(text string) string {
	return pterm.Bold.Sprint(text)
}

// Dim returns dimmed text.
func Dim(text string) string {
	return pterm.FgGray.Sprint(text)
}

// Code returns code-styled text.
func Code(text string) string {
	return pterm.FgCyan.Sprint(text)
}
