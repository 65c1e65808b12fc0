// Package main is the entry point for the tgwsync CLI.
//
// tgwsync reconciles AWS Transit Gateway route tables against a declarative
// YAML spec: it creates or finds the table, then converges its tags,
// attachment associations, and static routes. Every run is idempotent and
// can be previewed with --dry-run.
//
// Commands: init, apply, destroy, version, completion.
//
// For detailed usage information, run:
//
//	tgwsync --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/tgwsync/cmd/tgwsync/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
