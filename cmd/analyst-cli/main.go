// Mini AI Analyst CLI - dataset profiling and AutoML from the terminal.
package main

import (
	"os"

	"github.com/mini-analyst/analyst-cli/internal/cli"
	"github.com/mini-analyst/analyst-cli/internal/version"
)

// Version information, overridden by ldflags in release builds.
var (
	Version   = "v1.0.0"
	BuildTime = "unknown"
)

func main() {
	// The version package is the canonical source read by all packages.
	version.Version = Version
	version.BuildTime = BuildTime

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
