package ui

import (
	"encoding/json"

	"github.com/griffithind/termout/internal/output"
)

// JSON writes v as indented JSON on stdout. JSON is the requested result,
// so it is written even in quiet mode.
func JSON(v interface{}) error {
	return writeJSON(Out(), v)
}

func writeJSON(o *output.StreamOutput, v interface{}) error {
	w := &Writer{out: o, verbosity: output.VerbosityQuiet}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
