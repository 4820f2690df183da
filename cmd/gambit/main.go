package main

import (
	"os"

	"github.com/roach88/gambit/internal/cli"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd := cli.NewRootCommand()
	cmd.Version = version
	cmd.SetVersionTemplate("gambit {{.Version}} (" + commit + ", " + date + ")\n")

	// Commands print their own errors; main only translates the error
	// into the process exit code.
	if err := cmd.Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
