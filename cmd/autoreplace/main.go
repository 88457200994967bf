// Package main is the entry point for autoreplace.
package main

import (
	"fmt"
	"os"

	"github.com/dshills/autoreplace/internal/cli"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cmd := cli.NewRootCommand(fmt.Sprintf("%s (commit %s, built %s)", version, commit, date))
	if err := cmd.Execute(); err != nil {
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}
