// Package main provides the entry point for the conductor CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/conductor/internal/cli"
)

// Build information set via ldflags at release time.
var (
	version = "" //nolint:gochecknoglobals // Set by ldflags
	commit  = "" //nolint:gochecknoglobals // Set by ldflags
	date    = "" //nolint:gochecknoglobals // Set by ldflags
)

func main() {
	ctx := context.Background()
	err := cli.Execute(ctx, cli.BuildInfo{Version: version, Commit: commit, Date: date})
	os.Exit(cli.ExitCodeForError(err))
}
