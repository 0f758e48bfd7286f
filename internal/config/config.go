// Package config loads the optional termout configuration file.
package config

import (
	"sort"

	"github.com/griffithind/termout/internal/errors"
	"github.com/griffithind/termout/internal/formatter"
	"github.com/griffithind/termout/internal/output"
)

// File names looked up by Discover, in order.
var FileNames = []string{".termout.yaml", ".termout.yml", ".termout.json"}

// Config is the configuration file schema.
type Config struct {
	// Verbosity is one of quiet, normal, verbose, very-verbose, debug.
	Verbosity string `yaml:"verbosity,omitempty" json:"verbosity,omitempty"`
	// Decorated forces decoration on or off; nil means detect.
	Decorated *bool                          `yaml:"decorated,omitempty" json:"decorated,omitempty"`
	Log       LogConfig                      `yaml:"log,omitempty" json:"log,omitempty"`
	Styles    map[string]formatter.StyleSpec `yaml:"styles,omitempty" json:"styles,omitempty"`

	path string
}

// LogConfig controls the log file.
type LogConfig struct {
	File       string `yaml:"file,omitempty" json:"file,omitempty"`
	MaxSizeMB  int    `yaml:"maxSizeMB,omitempty" json:"maxSizeMB,omitempty"`
	MaxBackups int    `yaml:"maxBackups,omitempty" json:"maxBackups,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Verbosity: output.VerbosityNormal.String(),
		Log: LogConfig{
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
	}
}

// Path returns the file the configuration was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// VerbosityLevel returns the parsed verbosity; empty means normal.
func (c *Config) VerbosityLevel() (output.Verbosity, error) {
	if c.Verbosity == "" {
		return output.VerbosityNormal, nil
	}
	return output.ParseVerbosity(c.Verbosity)
}

// ApplyStyles registers the configured styles on f.
func (c *Config) ApplyStyles(f *formatter.Formatter) error {
	for _, name := range c.styleNames() {
		style, err := c.Styles[name].Style()
		if err != nil {
			return errors.ConfigInvalid("styles."+name, err)
		}
		f.SetStyle(name, style)
	}
	return nil
}

func (c *Config) styleNames() []string {
	names := make([]string, 0, len(c.Styles))
	for name := range c.Styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
