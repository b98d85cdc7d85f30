// Package main is the entry point for the lineguard CLI.
package main

import (
	"os"

	"github.com/iw2rmb/lineguard"
	"github.com/iw2rmb/lineguard/internal/cli"
	"github.com/iw2rmb/lineguard/internal/logging"
)

// Build-time variables set via ldflags. A version that is not SemVer falls
// back to the embedded VERSION file.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: lineguard.ResolveVersion(version),
		Commit:  commit,
		Date:    date,
	}

	if err := cli.NewRootCommand(info).Execute(); err != nil {
		logging.Default().Error("command failed", logging.FieldError, err)
		return 1
	}
	return 0
}
