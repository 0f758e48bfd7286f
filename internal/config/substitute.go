package config

import (
	"os"
	"path/filepath"
	"regexp"
)

// SubstitutionContext provides values for variable substitution.
type SubstitutionContext struct {
	ConfigDir string
	UserHome  string
	// LocalEnv looks up environment variables; falls back to os.Getenv.
	LocalEnv func(string) string
}

// substitution represents a single variable substitution pattern.
type substitution struct {
	pattern *regexp.Regexp
	handler func(match []string, ctx *SubstitutionContext) string
}

// substitutions is the registry of all variable substitution patterns.
var substitutions = []substitution{
	{
		pattern: regexp.MustCompile(`\$\{env:([^}:]+)(?::([^}]*))?\}`),
		handler: handleEnv,
	},
	{
		pattern: regexp.MustCompile(`\$\{configDir\}`),
		handler: handleConfigDir,
	},
	{
		pattern: regexp.MustCompile(`\$\{userHome\}`),
		handler: handleUserHome,
	},
	{
		pattern: regexp.MustCompile(`\$\{pathSeparator\}`),
		handler: handlePathSeparator,
	},
}

func handleEnv(match []string, ctx *SubstitutionContext) string {
	var value string
	if ctx != nil && ctx.LocalEnv != nil {
		value = ctx.LocalEnv(match[1])
	} else {
		value = os.Getenv(match[1])
	}
	if value == "" && len(match) >= 3 {
		value = match[2] // default value
	}
	return value
}

func handleConfigDir(match []string, ctx *SubstitutionContext) string {
	if ctx == nil || ctx.ConfigDir == "" {
		return match[0]
	}
	return ctx.ConfigDir
}

func handleUserHome(match []string, ctx *SubstitutionContext) string {
	if ctx != nil && ctx.UserHome != "" {
		return ctx.UserHome
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return match[0]
}

func handlePathSeparator(match []string, ctx *SubstitutionContext) string {
	return string(filepath.Separator)
}

// Substitute expands ${env:NAME}, ${env:NAME:default}, ${configDir},
// ${userHome} and ${pathSeparator} in s. Unresolvable variables are kept.
func Substitute(s string, ctx *SubstitutionContext) string {
	for _, sub := range substitutions {
		s = sub.pattern.ReplaceAllStringFunc(s, func(match string) string {
			return sub.handler(sub.pattern.FindStringSubmatch(match), ctx)
		})
	}
	return s
}

// ExpandConfig substitutes variables in path-valued fields. A relative log
// file is resolved against the configuration directory.
func ExpandConfig(cfg *Config, ctx *SubstitutionContext) {
	if cfg == nil {
		return
	}
	cfg.Log.File = Substitute(cfg.Log.File, ctx)
	if ctx != nil && ctx.ConfigDir != "" {
		cfg.Log.File = ResolveRelativePath(ctx.ConfigDir, cfg.Log.File)
	}
}
