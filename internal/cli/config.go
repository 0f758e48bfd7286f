package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/griffithind/termout/internal/config"
	"github.com/griffithind/termout/internal/output"
	"github.com/griffithind/termout/internal/ui"
)

var (
	configJSON         bool
	configValidateOnly bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the termout configuration",
	Long: `Show the configuration in effect after discovery and variable substitution.

The file is --config, or the first of .termout.yaml, .termout.yml and
.termout.json found in the current directory. Without a file the defaults
are shown.

Examples:
  termout config                # Show resolved config as YAML
  termout config --json         # Show resolved config as JSON
  termout config --validate     # Only validate config (no output)`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

// ConfigOutput represents the output of the config command.
type ConfigOutput struct {
	ConfigPath string         `json:"configPath,omitempty" yaml:"configPath,omitempty"`
	Config     *config.Config `json:"config" yaml:"config"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := loadedConfig
	if err := cfg.Validate(); err != nil {
		return err
	}

	if configValidateOnly {
		if cfg.Path() == "" {
			ui.Success("No configuration file, using defaults")
		} else {
			ui.Success("Configuration is valid: %s", cfg.Path())
		}
		return nil
	}

	result := ConfigOutput{ConfigPath: cfg.Path(), Config: cfg}
	if configJSON {
		return ui.JSON(result)
	}

	data, err := yaml.Marshal(result)
	if err != nil {
		return err
	}
	return ui.Out().Write(string(data), output.AtVerbosity(output.VerbosityQuiet), output.AsType(output.TypeRaw))
}

func init() {
	configCmd.Flags().BoolVar(&configJSON, "json", false, "output as JSON")
	configCmd.Flags().BoolVar(&configValidateOnly, "validate", false, "only validate, print nothing but the result")
}
