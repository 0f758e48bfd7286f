// Package main provides the entry point for the termout CLI.
package main

import (
	"os"

	"github.com/griffithind/termout/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
