package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/gambit/internal/engine"
	"github.com/roach88/gambit/internal/printer"
	"github.com/roach88/gambit/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit     int
	Width     int
	Solutions bool
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs",
		Long: `Show runs recorded in the history database, newest first.

With --solutions the distinct canonical solutions are listed instead:
one entry per symmetry class, with the time each was first found.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list (0 = all)")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "only entries of this board width (0 = all)")
	cmd.Flags().BoolVar(&opts.Solutions, "solutions", false, "list distinct canonical solutions instead of runs")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// An absent database is an empty history, not an error. Opening it
	// would create the file as a side effect, so check first.
	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		return renderEmptyHistory(formatter, opts.Solutions)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "failed to open history database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Solutions {
		sols, err := st.ListSolutions(ctx, opts.Width)
		if err != nil {
			_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return WrapExitError(ExitFailure, "failed to list solutions", err)
		}
		report := solutionsReport{Solutions: make([]solutionRow, 0, len(sols))}
		for _, s := range sols {
			report.Solutions = append(report.Solutions, solutionRow{
				Hash:        s.Hash,
				Width:       s.Width,
				Key:         s.CanonicalKey,
				FirstSeenAt: s.FirstSeenAt,
			})
		}
		if err := formatter.Success(report); err != nil {
			return WrapExitError(ExitFailure, "failed to render output", err)
		}
		return nil
	}

	var runs []store.Run
	if opts.Width > 0 {
		runs, err = st.ListRunsByWidth(ctx, opts.Width, opts.Limit)
	} else {
		runs, err = st.ListRuns(ctx, opts.Limit)
	}
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "failed to list runs", err)
	}

	report := historyReport{Runs: make([]runRow, 0, len(runs))}
	for _, r := range runs {
		report.Runs = append(report.Runs, runRow{
			ID:        r.ID,
			CreatedAt: r.CreatedAt,
			Width:     r.Width,
			Outcome:   r.Outcome,
			Presets:   r.Presets,
			Scorers:   r.Scorers,
			Key:       r.CanonicalKey,
			Metrics:   r.Metrics,
		})
	}
	if err := formatter.Success(report); err != nil {
		return WrapExitError(ExitFailure, "failed to render output", err)
	}
	return nil
}

func renderEmptyHistory(formatter *OutputFormatter, solutions bool) error {
	var err error
	if solutions {
		err = formatter.Success(solutionsReport{Solutions: []solutionRow{}})
	} else {
		err = formatter.Success(historyReport{Runs: []runRow{}})
	}
	if err != nil {
		return WrapExitError(ExitFailure, "failed to render output", err)
	}
	return nil
}

// runRow is one listed run.
type runRow struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Width     int            `json:"width"`
	Outcome   engine.State   `json:"outcome"`
	Presets   []int          `json:"presets,omitempty"`
	Scorers   []string       `json:"scorers,omitempty"`
	Key       string         `json:"key,omitempty"`
	Metrics   engine.Metrics `json:"metrics"`
}

// historyReport is the history command's run-listing payload.
type historyReport struct {
	Runs []runRow `json:"runs"`
}

func (r historyReport) String() string {
	if len(r.Runs) == 0 {
		return "no runs recorded"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d runs (newest first)\n\n", len(r.Runs))
	for _, row := range r.Runs {
		fmt.Fprintf(&sb, "%s  %s  w%-3d %s  nodes %-8d %-12s %s\n",
			shortID(row.ID),
			row.CreatedAt.Format("2006-01-02 15:04:05"),
			row.Width,
			colorOutcome(row.Outcome),
			row.Metrics.NodesVisited,
			row.Metrics.Elapsed,
			row.Key)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// solutionRow is one listed canonical solution.
type solutionRow struct {
	Hash        string    `json:"hash"`
	Width       int       `json:"width"`
	Key         string    `json:"key"`
	FirstSeenAt time.Time `json:"first_seen_at"`
}

// solutionsReport is the history command's solution-listing payload.
type solutionsReport struct {
	Solutions []solutionRow `json:"solutions"`
}

func (r solutionsReport) String() string {
	if len(r.Solutions) == 0 {
		return "no solutions recorded"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d solutions\n\n", len(r.Solutions))
	for _, row := range r.Solutions {
		fmt.Fprintf(&sb, "w%-3d %s  first seen %s  %s\n",
			row.Width,
			row.Key,
			row.FirstSeenAt.Format("2006-01-02 15:04:05"),
			shortID(row.Hash))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// shortID abbreviates a UUID or hash for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// colorOutcome pads the outcome to column width before coloring, so
// ANSI escapes never skew the table alignment.
func colorOutcome(outcome engine.State) string {
	padded := fmt.Sprintf("%-9s", string(outcome))
	switch outcome {
	case engine.StateSolved:
		return printer.Green(padded)
	case engine.StateExhausted, engine.StateCancelled:
		return printer.Yellow(padded)
	default:
		return padded
	}
}
