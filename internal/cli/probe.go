package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/griffithind/termout/internal/logging"
	"github.com/griffithind/termout/internal/output"
	"github.com/griffithind/termout/internal/termcap"
	"github.com/griffithind/termout/internal/ui"
)

var (
	probeJSON bool
	probeEnv  []string
	probeOS   string
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Report terminal capabilities of stdout and stderr",
	Long: `Report, for stdout and stderr, whether ANSI decoration is used and why,
whether the stream can encode UTF-8, the declared and preferred encodings,
and the terminal width.

With --env or --os the decision is made against a simulated environment
instead of the real process. --env replaces the process environment
entirely; --os alone keeps it and only changes the operating system.

Examples:
  termout probe
  termout probe --json
  termout probe --env NO_COLOR=1
  termout probe --os windows --env ConEmuANSI=ON`,
	Args: cobra.NoArgs,
	RunE: runProbe,
}

// StreamReport is what was detected for one stream.
type StreamReport struct {
	Stream            string `json:"stream"`
	Decorated         bool   `json:"decorated"`
	Reason            string `json:"reason"`
	UTF8              bool   `json:"utf8"`
	DeclaredEncoding  string `json:"declaredEncoding,omitempty"`
	PreferredEncoding string `json:"preferredEncoding,omitempty"`
	Width             int    `json:"width"`
}

// ProbeReport represents the output of the probe command.
type ProbeReport struct {
	OS        string         `json:"os"`
	Simulated bool           `json:"simulated"`
	Streams   []StreamReport `json:"streams"`
}

type namedStream struct {
	name   string
	stream io.Writer
}

type namedOutput struct {
	name string
	out  *output.StreamOutput
}

func runProbe(cmd *cobra.Command, args []string) error {
	defer logging.LogDuration(time.Now(), "probe")

	env, simulated, err := probeEnvironment()
	if err != nil {
		return err
	}

	outputs := processOutputs()
	if simulated {
		outputs = simulatedOutputs(env, []namedStream{
			{name: "stdout", stream: stdout},
			{name: "stderr", stream: stderr},
		})
	}
	report := buildProbeReport(env, simulated, outputs)

	if probeJSON {
		return ui.JSON(report)
	}
	return printProbeReport(report)
}

// probeEnvironment returns the environment selected by --env and --os.
func probeEnvironment() (termcap.Environment, bool, error) {
	if len(probeEnv) == 0 && probeOS == "" {
		return termcap.OSEnvironment{}, false, nil
	}

	pairs := probeEnv
	if len(pairs) == 0 {
		pairs = processEnviron()
	}
	env, err := termcap.ParseEnvironment(pairs, probeOS)
	if err != nil {
		return nil, false, fmt.Errorf("--env: %w", err)
	}
	return env, true, nil
}

// processEnviron drops the "=C:=C:\..." drive entries Windows keeps in its
// environment block.
func processEnviron() []string {
	var pairs []string
	for _, pair := range os.Environ() {
		if !strings.HasPrefix(pair, "=") {
			pairs = append(pairs, pair)
		}
	}
	return pairs
}

// processOutputs returns the outputs the process already writes through,
// so the report shows the decision made for them rather than a second one.
func processOutputs() []namedOutput {
	return []namedOutput{
		{name: "stdout", out: ui.Out()},
		{name: "stderr", out: ui.Err()},
	}
}

// simulatedOutputs decides decoration for each stream against env.
func simulatedOutputs(env termcap.Environment, streams []namedStream) []namedOutput {
	outputs := make([]namedOutput, 0, len(streams))
	for _, s := range streams {
		outputs = append(outputs, namedOutput{
			name: s.name,
			out: output.NewStreamOutput(s.stream,
				output.WithEnvironment(env),
				output.WithDetector(termcap.NewDetectorFor(env)),
			),
		})
	}
	return outputs
}

func buildProbeReport(env termcap.Environment, simulated bool, outputs []namedOutput) ProbeReport {
	report := ProbeReport{OS: env.GOOS(), Simulated: simulated}
	for _, n := range outputs {
		stream := n.out.Stream()
		report.Streams = append(report.Streams, StreamReport{
			Stream:            n.name,
			Decorated:         n.out.IsDecorated(),
			Reason:            string(n.out.DecorationReason()),
			UTF8:              n.out.SupportsUTF8(),
			DeclaredEncoding:  termcap.DeclaredEncoding(stream),
			PreferredEncoding: termcap.PreferredEncoding(env),
			Width:             termcap.Width(stream, env),
		})
	}
	return report
}

func printProbeReport(report ProbeReport) error {
	if report.Simulated {
		ui.Info("Simulated environment (os=%s)", report.OS)
	}

	rows := make([][]string, 0, len(report.Streams))
	for _, s := range report.Streams {
		rows = append(rows, []string{
			s.Stream,
			yesNo(s.Decorated),
			s.Reason,
			yesNo(s.UTF8),
			encodingLabel(s),
			strconv.Itoa(s.Width),
		})
	}
	if err := ui.RenderTable([]string{"Stream", "Decorated", "Reason", "UTF-8", "Encoding", "Width"}, rows); err != nil {
		return err
	}

	ui.Printf("")
	for _, s := range report.Streams {
		ui.PrintCheck(ui.CheckFor(s.Decorated), fmt.Sprintf("%s: ANSI decoration (%s)", s.Stream, s.Reason))
		ui.PrintCheck(ui.CheckFor(s.UTF8), fmt.Sprintf("%s: UTF-8", s.Stream))
	}
	return nil
}

func encodingLabel(s StreamReport) string {
	switch {
	case s.DeclaredEncoding != "":
		return s.DeclaredEncoding
	case s.PreferredEncoding != "":
		return s.PreferredEncoding + " (locale)"
	default:
		return "-"
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func init() {
	probeCmd.Flags().BoolVar(&probeJSON, "json", false, "output as JSON")
	probeCmd.Flags().StringArrayVar(&probeEnv, "env", nil, "simulated environment variable KEY=VALUE (repeatable)")
	probeCmd.Flags().StringVar(&probeOS, "os", "", "simulated operating system (e.g. windows, linux)")
}
