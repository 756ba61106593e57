// Package main is the entry point for the lispfmt CLI.
package main

import (
	"errors"
	"os"

	"github.com/basilforge/lispfmt/internal/cli"
	"github.com/basilforge/lispfmt/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
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
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.Execute()
	if err == nil {
		return cli.ExitSuccess
	}

	// ErrViolationsFound is a signal for exit code, not a failure to log.
	if errors.Is(err, cli.ErrViolationsFound) {
		return cli.ExitViolationsFound
	}

	logger := logging.Default()
	logger.Error("command failed", logging.FieldError, err)

	return cli.ExitError
}
