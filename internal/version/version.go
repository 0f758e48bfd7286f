// Package version holds the build version, set at link time with
// -ldflags "-X github.com/griffithind/termout/internal/version.Version=...".
package version

// Version is the termout release version.
var Version = "dev"
