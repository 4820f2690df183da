package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/gambit/internal/printer"
	"github.com/roach88/gambit/internal/scorers"
)

// NewScorersCommand creates the scorers command.
func NewScorersCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scorers",
		Short: "List the built-in scoring functions",
		Long: `List the built-in scoring functions available to solve.

Scorers are addressed in directives as path:function[:weight]. Built-ins
live under the "builtin" path, and a bare name selects it: "ladder" and
"builtin:ladder:1" are the same directive.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}

			report := scorersReport{}
			for _, b := range scorers.Builtins() {
				report.Scorers = append(report.Scorers, scorerInfo{
					Name:        b.Name,
					Description: b.Description,
				})
			}

			if err := formatter.Success(report); err != nil {
				return WrapExitError(ExitFailure, "failed to render output", err)
			}
			return nil
		},
	}
}

// scorerInfo is one listing entry.
type scorerInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// scorersReport is the scorers command's output payload.
type scorersReport struct {
	Scorers []scorerInfo `json:"scorers"`
}

func (r scorersReport) String() string {
	var sb strings.Builder
	for i, s := range r.Scorers {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintln(&sb, printer.Bold("builtin:"+s.Name))
		fmt.Fprintf(&sb, "  %s\n", s.Description)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
