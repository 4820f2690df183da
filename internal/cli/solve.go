package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/gambit/internal/board"
	"github.com/roach88/gambit/internal/engine"
	"github.com/roach88/gambit/internal/printer"
	"github.com/roach88/gambit/internal/score"
	"github.com/roach88/gambit/internal/scorers"
	"github.com/roach88/gambit/internal/store"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	*RootOptions
	Scorers  []string
	MaxNodes int
	Timeout  time.Duration
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve [board]",
		Short: "Solve an N-queens instance",
		Long: `Solve an N-queens instance with the heuristic best-first search.

The board is described as "width,cell,cell,..." where the first number
is the board width and the rest are optional preset queen cell indices
in row-major order. The description is taken from the argument, or from
stdin when no argument is given. Characters other than digits and
commas are ignored.

Example:
  gambit solve 8
  gambit solve "5,12" -l ladder -l builtin:overlapping:0.5
  echo 20 | gambit solve --timeout 30s`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, cmd, args)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Scorers, "scorer", "l", nil, "scorer directive path:function[:weight], repeatable; none scores every candidate 0")
	cmd.Flags().IntVar(&opts.MaxNodes, "max-nodes", 0, "abort when the blacklist exceeds this many nodes (0 = unlimited)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "cancel the search after this duration (0 = none)")

	return cmd
}

func runSolve(opts *SolveOptions, cmd *cobra.Command, args []string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// Flags win over config; config wins over built-in defaults.
	if !cmd.Flags().Changed("scorer") && len(opts.Config.Solver.Scorers) > 0 {
		opts.Scorers = opts.Config.Solver.Scorers
	}
	if !cmd.Flags().Changed("max-nodes") {
		opts.MaxNodes = opts.Config.Solver.MaxNodes
	}
	if !cmd.Flags().Changed("timeout") {
		opts.Timeout = opts.Config.Solver.Timeout
	}

	input, err := readBoardInput(cmd, args)
	if err != nil {
		_ = formatter.Error(errorCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid board description", err)
	}

	specs, directives, err := scorers.FromDirectives(opts.Scorers)
	if err != nil {
		_ = formatter.Error(errorCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid scorer directive", err)
	}

	registry, err := score.NewRegistry(specs...)
	if err != nil {
		_ = formatter.Error(errorCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid scorer set", err)
	}

	b, err := board.New(input.Width, input.Presets)
	if err != nil {
		_ = formatter.Error(errorCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid board", err)
	}

	eng := engine.New(b, registry,
		engine.WithLogger(slog.Default()),
		engine.WithNodeBudget(opts.MaxNodes),
	)

	ctx, cancel := solveContext(cmd, opts.Timeout)
	defer cancel()

	slog.Debug("search starting",
		"width", input.Width,
		"presets", len(input.Presets),
		"scorers", directives,
		"max_nodes", opts.MaxNodes,
		"timeout", opts.Timeout)

	res, err := eng.Run(ctx)
	if err != nil {
		var runErr *engine.RunError
		if errors.As(err, &runErr) {
			_ = formatter.Error(string(runErr.Code), runErr.Message, runErr.Details)
		} else {
			_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		}
		return WrapExitError(ExitFailure, "search aborted", err)
	}

	report := newSolveReport(input, directives, b, res)

	// Cancelled runs are not recorded: a later completed run of the same
	// instance must be able to claim the fingerprint.
	if !opts.NoStore && opts.Database != "" && res.Outcome != engine.StateCancelled {
		id, inserted, err := recordRun(opts.Database, input, directives, res)
		if err != nil {
			slog.Warn("failed to record run", "error", err)
		} else {
			report.RunID = id
			slog.Debug("run recorded", "run_id", id, "inserted", inserted)
		}
	}

	if err := formatter.Success(report); err != nil {
		return WrapExitError(ExitFailure, "failed to render output", err)
	}

	return OutcomeExitError(res.Outcome)
}

// solveContext derives the search context: the command's context (so
// tests can cancel), an optional timeout, and SIGINT/SIGTERM handling
// for graceful cancellation.
func solveContext(cmd *cobra.Command, timeout time.Duration) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}

	var ctx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, timeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, cancelling search", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

// recordRun writes the finished run to the history database. The write
// uses a fresh context: the search context may already be done when an
// exhausted run is recorded after a near-deadline finish.
func recordRun(dbPath string, input BoardInput, directives []string, res *engine.Result) (id string, inserted bool, err error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return "", false, fmt.Errorf("creating database directory: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return "", false, err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	run, err := store.NewRun(input.Width, input.Presets, directives, res)
	if err != nil {
		return "", false, err
	}
	return st.WriteRun(context.Background(), run)
}

// solveReport is the solve command's output payload.
type solveReport struct {
	Outcome  engine.State   `json:"outcome"`
	Width    int            `json:"width"`
	Presets  []int          `json:"presets,omitempty"`
	Scorers  []string       `json:"scorers,omitempty"`
	Solution []int          `json:"solution,omitempty"`
	Key      string         `json:"key,omitempty"`
	Metrics  engine.Metrics `json:"metrics"`
	RunID    string         `json:"run_id,omitempty"`

	board *board.Board
}

func newSolveReport(input BoardInput, directives []string, b *board.Board, res *engine.Result) *solveReport {
	r := &solveReport{
		Outcome:  res.Outcome,
		Width:    input.Width,
		Presets:  input.Presets,
		Scorers:  directives,
		Solution: res.Solution,
		Metrics:  res.Metrics,
		board:    b,
	}
	if len(res.Key) > 0 {
		r.Key = res.Key.String()
	}
	return r
}

// String renders the human-readable report: a headline, the board
// diagram for solved runs, and the search counters.
func (r *solveReport) String() string {
	var sb strings.Builder

	switch r.Outcome {
	case engine.StateSolved:
		sb.WriteString(printer.Green(fmt.Sprintf("✓ solved width %d in %s", r.Width, r.Metrics.Elapsed)))
		sb.WriteString("\n\n")
		sb.WriteString(boardDiagram(r.board))
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "columns  %v\n", r.Solution)
		fmt.Fprintf(&sb, "key      %s\n", r.Key)
	case engine.StateExhausted:
		sb.WriteString(printer.Yellow(fmt.Sprintf("⚠ exhausted width %d in %s: no solution reachable from the presets", r.Width, r.Metrics.Elapsed)))
		sb.WriteString("\n")
	case engine.StateCancelled:
		sb.WriteString(printer.Yellow(fmt.Sprintf("⚠ cancelled width %d after %s", r.Width, r.Metrics.Elapsed)))
		sb.WriteString("\n")
	default:
		fmt.Fprintf(&sb, "%s width %d\n", r.Outcome, r.Width)
	}

	fmt.Fprintf(&sb, "\nnodes visited     %d\n", r.Metrics.NodesVisited)
	fmt.Fprintf(&sb, "candidates scored %d\n", r.Metrics.CandidatesScored)
	fmt.Fprintf(&sb, "backtracks        %d\n", r.Metrics.Backtracks)
	fmt.Fprintf(&sb, "blacklist         %d entries, %d nodes, %d bytes\n",
		r.Metrics.BlacklistEntries, r.Metrics.BlacklistNodes, r.Metrics.BlacklistBytes)
	if r.RunID != "" {
		fmt.Fprintf(&sb, "run id            %s\n", r.RunID)
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// boardDiagram renders the board one row per line: █ for a queen, ▓ for
// an attacked cell, ░ for a free cell.
func boardDiagram(b *board.Board) string {
	var sb strings.Builder
	width := b.Width()
	for row := 0; row < width; row++ {
		for col := 0; col < width; col++ {
			c := b.Cell(b.Index(row, col))
			switch {
			case c.IsQueen():
				sb.WriteString("█")
			case c.IsAttacked():
				sb.WriteString("▓")
			default:
				sb.WriteString("░")
			}
			if col < width-1 {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
