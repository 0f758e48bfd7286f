package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/griffithind/termout/internal/output"
	"github.com/griffithind/termout/internal/ui"
)

var (
	sectionSteps int
	sectionDelay time.Duration
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Demonstrate rewritable output sections",
	Long: `Create two sections on stdout and overwrite the first one --steps times.

Each overwrite erases the second section, rewrites the first and replays the
second below it. When stdout is not decorated, sections cannot be rewritten
and every step is printed on its own line.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if sectionSteps < 1 {
			return fmt.Errorf("--steps must be at least 1, got %d", sectionSteps)
		}
		return playSections(cmd.Context(), ui.Out(), sectionSteps, sectionDelay)
	},
}

func playSections(ctx context.Context, out *output.StreamOutput, steps int, delay time.Duration) error {
	status := out.Section()
	footer := out.Section()

	if err := status.WriteLine("<comment>starting</comment>"); err != nil {
		return err
	}
	if err := footer.WriteLine(fmt.Sprintf("<info>%d steps</info>, one every %s", steps, delay)); err != nil {
		return err
	}

	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		if err := status.Overwrite(fmt.Sprintf("step <c1>%d</c1>/%d", i, steps)); err != nil {
			return err
		}
	}

	if err := footer.Overwrite("<info>done</info>"); err != nil {
		return err
	}
	return out.Flush()
}

func init() {
	sectionsCmd.Flags().IntVar(&sectionSteps, "steps", 5, "number of times the first section is overwritten")
	sectionsCmd.Flags().DurationVar(&sectionDelay, "delay", 300*time.Millisecond, "pause between overwrites")
}
