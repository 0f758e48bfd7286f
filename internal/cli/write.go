package cli

import (
	"github.com/spf13/cobra"

	"github.com/griffithind/termout/internal/logging"
	"github.com/griffithind/termout/internal/output"
	"github.com/griffithind/termout/internal/ui"
)

var (
	writeVerbosity string
	writeType      string
	writeStderr    bool
	writeNoNewline bool
	writeEncoding  string
)

var writeCmd = &cobra.Command{
	Use:   "write MESSAGE...",
	Short: "Write messages through the output layer",
	Long: `Write each MESSAGE as a line through the stdout (or stderr) output.

Messages are written at --verbosity and dropped when it is above the
output verbosity set by -q/-v. With --type normal, <tag> markup is styled
when the stream is decorated and removed otherwise; raw writes the message
as is; plain removes the markup.

With --encoding the messages are transcoded into that encoding, e.g. for a
legacy console; characters it cannot represent are replaced.

Examples:
  termout write "<info>done</info>"
  termout write --type plain "<error>no styling</error>"
  termout -v write --verbosity verbose "only shown with -v"
  termout write --stderr "<warning>careful</warning>"
  termout write --encoding cp437 "box ─ drawing"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWrite,
}

func runWrite(cmd *cobra.Command, args []string) error {
	verbosity, err := output.ParseVerbosity(writeVerbosity)
	if err != nil {
		return err
	}
	typ, err := output.ParseType(writeType)
	if err != nil {
		return err
	}

	o := ui.Out()
	if writeStderr {
		o = ui.Err()
	}

	if writeEncoding != "" {
		if o, err = transcoded(o, writeEncoding); err != nil {
			return err
		}
	}

	if err := o.WriteLines(args, !writeNoNewline, output.AtVerbosity(verbosity), output.AsType(typ)); err != nil {
		return err
	}
	return o.Flush()
}

// transcoded returns an output writing to o's stream in the named encoding.
// It keeps o's verbosity, formatter and decoration decision.
func transcoded(o *output.StreamOutput, name string) (*output.StreamOutput, error) {
	w, err := output.NewEncodingWriter(o.Stream(), name)
	if err != nil {
		return nil, err
	}
	out := output.NewStreamOutput(w,
		output.WithVerbosity(o.Verbosity()),
		output.WithFormatter(o.Formatter()),
		output.WithDecorated(o.IsDecorated()),
	)
	logger := logging.GetLogger("cli")
	logger.Debug().
		Str("encoding", w.Encoding()).
		Bool("utf8", out.SupportsUTF8()).
		Msg("transcoding messages")
	return out, nil
}

func init() {
	writeCmd.Flags().StringVar(&writeVerbosity, "verbosity", output.VerbosityNormal.String(), "verbosity of the messages (quiet, normal, verbose, very-verbose, debug)")
	writeCmd.Flags().StringVar(&writeType, "type", output.TypeNormal.String(), "output type (normal, raw, plain)")
	writeCmd.Flags().BoolVar(&writeStderr, "stderr", false, "write to stderr instead of stdout")
	writeCmd.Flags().BoolVarP(&writeNoNewline, "no-newline", "n", false, "do not append a newline to each message")
	writeCmd.Flags().StringVar(&writeEncoding, "encoding", "", "transcode messages into this encoding (e.g. latin-1, cp437)")
}
