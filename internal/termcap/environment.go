// Package termcap detects what a terminal stream can display: ANSI
// decoration, UTF-8 text and its width in cells.
//
// Process environment and platform are read through the Environment
// interface and the platform-specific console queries through Probe, so the
// decision tree in Detector runs the same way on every OS and under test.
package termcap

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Environment variables consulted during detection.
const (
	EnvNoColor     = "NO_COLOR"
	EnvTermProgram = "TERM_PROGRAM"
	EnvANSICON     = "ANSICON"
	EnvConEmuANSI  = "ConEmuANSI"
	EnvTerm        = "TERM"
	EnvColumns     = "COLUMNS"
)

// Environment gives read access to environment variables and the platform name.
type Environment interface {
	LookupEnv(key string) (string, bool)
	GOOS() string
}

// OSEnvironment reads the real process environment.
type OSEnvironment struct{}

// LookupEnv implements Environment.
func (OSEnvironment) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// GOOS implements Environment.
func (OSEnvironment) GOOS() string {
	return runtime.GOOS
}

// MapEnvironment is a fixed environment. An empty OS reports runtime.GOOS.
type MapEnvironment struct {
	Vars map[string]string
	OS   string
}

// LookupEnv implements Environment.
func (m MapEnvironment) LookupEnv(key string) (string, bool) {
	v, ok := m.Vars[key]
	return v, ok
}

// GOOS implements Environment.
func (m MapEnvironment) GOOS() string {
	if m.OS == "" {
		return runtime.GOOS
	}
	return m.OS
}

// ParseEnvironment builds a MapEnvironment from KEY=VALUE pairs.
// A bare KEY defines the variable with an empty value.
func ParseEnvironment(pairs []string, goos string) (MapEnvironment, error) {
	vars := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, _ := strings.Cut(pair, "=")
		if key == "" {
			return MapEnvironment{}, fmt.Errorf("invalid environment entry %q", pair)
		}
		vars[key] = value
	}
	return MapEnvironment{Vars: vars, OS: goos}, nil
}

func getenv(env Environment, key string) string {
	v, _ := env.LookupEnv(key)
	return v
}

func isWindows(env Environment) bool {
	return strings.EqualFold(env.GOOS(), "windows")
}
