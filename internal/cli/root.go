// Package cli implements the command-line interface for termout.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/griffithind/termout/internal/config"
	"github.com/griffithind/termout/internal/formatter"
	"github.com/griffithind/termout/internal/logging"
	"github.com/griffithind/termout/internal/output"
	"github.com/griffithind/termout/internal/termcap"
	"github.com/griffithind/termout/internal/ui"
	"github.com/griffithind/termout/internal/version"
)

// Global flags
var (
	configPath string
	forceANSI  bool
	noANSI     bool
	quiet      bool
	verbose    int
	logFile    string
)

// Process streams and the detector used to decorate them; tests substitute them.
var (
	stdout      io.Writer = os.Stdout
	stderr      io.Writer = os.Stderr
	newDetector           = termcap.NewDetector
)

// loadedConfig is the configuration resolved by the last initUI call.
var loadedConfig = config.Default()

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "termout",
	Short: "Terminal output inspector",
	Long: `termout reports how a process would write to its terminal: whether
stdout and stderr get ANSI decoration, why, whether they can encode UTF-8,
and how wide they are.

It also writes messages through the same output layer, with verbosity
filtering and <tag> styling, and demonstrates rewritable output sections.`,
	Version: version.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Flags after a subcommand's own flags are only known here. This is
		// the only place the process streams are detected.
		return initUI()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return execute(context.Background(), os.Args[1:])
}

func execute(ctx context.Context, args []string) error {
	// Parse flags early so --no-ansi and --quiet affect errors reported
	// before a command runs, e.g. for invalid commands.
	_ = rootCmd.ParseFlags(args)
	configureFallbackUI()
	defer logging.Close()

	// -v is a counter; the full parse below counts it again.
	verbose = 0

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		ui.PrintError(err)
	}
	return err
}

// configureFallbackUI sets up the outputs used until initUI runs. It never
// detects: decoration is on only when --ansi forces it.
func configureFallbackUI() {
	verbosity := output.VerbosityFromFlags(quiet, verbose)
	decorated := forceANSI && !noANSI
	ui.Configure(ui.Config{
		Out: output.NewStreamOutput(stdout, output.WithVerbosity(verbosity), output.WithDecorated(decorated)),
		Err: output.NewStreamOutput(stderr, output.WithVerbosity(verbosity), output.WithDecorated(decorated)),
	})
}

// initUI loads the configuration and configures the UI and logger from it
// and the parsed flags.
func initUI() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	verbosity, err := resolveVerbosity(cfg)
	if err != nil {
		return err
	}

	out, err := newStreamOutput(stdout, cfg, verbosity)
	if err != nil {
		return err
	}
	errOut, err := newStreamOutput(stderr, cfg, verbosity)
	if err != nil {
		return err
	}
	ui.Configure(ui.Config{Out: out, Err: errOut})

	logging.SetupLogger(loggerOptions(cfg, verbosity, errOut))
	loadedConfig = cfg
	return nil
}

// loadConfig loads --config, or the configuration file discovered in the
// working directory, or the defaults.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return config.Default(), nil
		}
		if path = config.Discover(wd); path == "" {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

// resolveVerbosity prefers -q/-v over the configured verbosity.
func resolveVerbosity(cfg *config.Config) (output.Verbosity, error) {
	if quiet || verbose > 0 {
		return output.VerbosityFromFlags(quiet, verbose), nil
	}
	return cfg.VerbosityLevel()
}

// decorationOverride returns the forced decoration, or nil to detect.
// --no-ansi wins over --ansi, and both win over the configuration.
func decorationOverride(cfg *config.Config) *bool {
	switch {
	case noANSI:
		off := false
		return &off
	case forceANSI:
		on := true
		return &on
	default:
		return cfg.Decorated
	}
}

func newStreamOutput(w io.Writer, cfg *config.Config, verbosity output.Verbosity) (*output.StreamOutput, error) {
	f := formatter.New()
	if err := cfg.ApplyStyles(f); err != nil {
		return nil, err
	}

	opts := []output.Option{
		output.WithVerbosity(verbosity),
		output.WithFormatter(f),
	}
	if decorated := decorationOverride(cfg); decorated != nil {
		opts = append(opts, output.WithDecorated(*decorated))
	} else {
		opts = append(opts, output.WithDetector(newDetector()))
	}
	return output.NewStreamOutput(w, opts...), nil
}

// loggerOptions maps the output verbosity onto log levels: normal logs
// warnings, each step above it enables one more level.
func loggerOptions(cfg *config.Config, verbosity output.Verbosity, stderr *output.StreamOutput) logging.Options {
	level := int(verbosity) - int(output.VerbosityNormal)
	if level < 0 {
		level = 0
	}

	file := logFile
	if file == "" {
		file = cfg.Log.File
	}

	return logging.Options{
		Verbosity:  level,
		Out:        ui.NewWriter(stderr),
		NoColor:    !stderr.IsDecorated(),
		File:       file,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a .termout.yaml or .termout.json file (default: auto-detect)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file")

	// Output flags
	rootCmd.PersistentFlags().BoolVar(&forceANSI, "ansi", false, "force ANSI decoration")
	rootCmd.PersistentFlags().BoolVar(&noANSI, "no-ansi", false, "disable ANSI decoration")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "minimal output (errors only)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity (-v, -vv, -vvv)")

	// Configure Cobra to use UI-aware writers
	rootCmd.SetOut(ui.NewCobraOutWriter())
	rootCmd.SetErr(ui.NewCobraErrWriter())
	rootCmd.SilenceErrors = true // We handle errors ourselves in Execute()

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{ID: "diagnostics", Title: "Diagnostic Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "output", Title: "Output Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "utilities", Title: "Utilities:"})

	probeCmd.GroupID = "diagnostics"
	configCmd.GroupID = "diagnostics"
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(configCmd)

	writeCmd.GroupID = "output"
	sectionsCmd.GroupID = "output"
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(sectionsCmd)
}
