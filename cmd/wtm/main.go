// Package main is the entry point for the wtm CLI.
//
// The binary manages git worktrees laid out under shared bare clones.
// All functionality lives in the internal/cli package; main only injects
// build-time version information and maps the CLI result to an exit code.
package main

import (
	"os"

	"github.com/shinji-kodama/wtm/internal/cli"
)

// version, commit, and date are set by GoReleaser at build time via
// ldflags. During development they default to "dev", "none", "unknown".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	os.Exit(cli.Run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}
