package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/roach88/gambit/internal/score"
	"github.com/roach88/gambit/internal/scorers"
	"github.com/roach88/gambit/internal/tui"
)

// EditOptions holds flags for the edit command.
type EditOptions struct {
	*RootOptions
	Scorers []string
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit [board]",
		Short: "Edit a board interactively",
		Long: `Open the interactive board editor.

The editor starts from the given board description, or an empty
width-8 board. Queens are placed and removed under attack legality,
and x hands the position to the solver without leaving the editor:

  hjkl - move; space - toggle queen; c - clear; +/- - resize; x - solve; q - quit`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(opts, cmd, args)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Scorers, "scorer", "l", nil, "scorer directive for in-editor solves, repeatable")

	return cmd
}

func runEdit(opts *EditOptions, cmd *cobra.Command, args []string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if !cmd.Flags().Changed("scorer") && len(opts.Config.Solver.Scorers) > 0 {
		opts.Scorers = opts.Config.Solver.Scorers
	}

	width := tui.DefaultWidth
	var presets []int
	if len(args) > 0 {
		// The editor owns the terminal, so the board comes from the
		// argument only, never stdin.
		input, err := ParseBoardInput(args[0])
		if err != nil {
			_ = formatter.Error(errorCode(err), err.Error(), nil)
			return WrapExitError(ExitFailure, "invalid board description", err)
		}
		width, presets = input.Width, input.Presets
	}

	specs, _, err := scorers.FromDirectives(opts.Scorers)
	if err != nil {
		_ = formatter.Error(errorCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid scorer directive", err)
	}
	registry, err := score.NewRegistry(specs...)
	if err != nil {
		_ = formatter.Error(errorCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid scorer set", err)
	}

	model, err := tui.New(width, presets, registry)
	if err != nil {
		_ = formatter.Error(errorCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid starting board", err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "editor failed", err)
	}
	return nil
}
