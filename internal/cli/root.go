package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/gambit/internal/config"
	"github.com/roach88/gambit/internal/printer"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Database string
	NoStore  bool

	// Config carries file/env settings loaded in the root
	// PersistentPreRunE. Commands consult it for defaults their own
	// flags leave unset.
	Config config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the gambit CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gambit",
		Short: "gambit - heuristic N-queens solver",
		Long: `Solves N-queens instances with a heuristic best-first search.

Weighted scoring functions steer the expansion order; a blacklist of
refuted position prefixes guarantees the search terminates. Finished
runs are recorded in a local history database.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			p := printer.New(cmd.OutOrStdout(), cmd.ErrOrStderr())

			cfg, err := config.Load()
			if err != nil {
				_ = p.Error("configuration: %v", err)
				return WrapExitError(ExitFailure, "configuration", err)
			}
			opts.Config = cfg

			// Flags win over config; config wins over built-in defaults.
			if !cmd.Flags().Changed("output") {
				opts.Format = cfg.Output.Format
			}
			if !cmd.Flags().Changed("verbose") {
				opts.Verbose = cfg.Output.Verbose
			}
			if !cmd.Flags().Changed("db") {
				opts.Database = cfg.Database.Path
			}
			if !cmd.Flags().Changed("no-store") {
				opts.NoStore = cfg.Database.Disabled
			}

			if !isValidFormat(opts.Format) {
				err := fmt.Errorf("invalid output format %q: must be one of %v", opts.Format, ValidFormats)
				_ = p.Error("%v", err)
				return WrapExitError(ExitFailure, "configuration", err)
			}

			configureLogging(opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output (debug logging)")
	cmd.PersistentFlags().StringVar(&opts.Format, "output", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "run-history database path (default $XDG_STATE_HOME/gambit/gambit.db)")
	cmd.PersistentFlags().BoolVar(&opts.NoStore, "no-store", false, "skip recording the run in history")

	// Add subcommands
	cmd.AddCommand(NewSolveCommand(opts))
	cmd.AddCommand(NewScorersCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))

	return cmd
}

// configureLogging installs the process-wide slog handler. Library
// packages receive slog.Default() from the commands that build them.
func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
