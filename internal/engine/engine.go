package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/gambit/internal/blacklist"
	"github.com/roach88/gambit/internal/board"
	"github.com/roach88/gambit/internal/score"
)

// State is the explicit search automaton state.
type State string

const (
	// StateRoot is the constructed-but-not-started state.
	StateRoot State = "root"

	// StateExpanding means the engine is choosing a move for the next row.
	StateExpanding State = "expanding"

	// StateBacktrack means the current branch is dead and the engine is
	// unwinding the most recent placement.
	StateBacktrack State = "backtrack"

	// StateSolved is the success terminal: the board is complete.
	StateSolved State = "solved"

	// StateExhausted is the no-solution terminal: the root itself is dead.
	StateExhausted State = "exhausted"

	// StateCancelled is the cooperative-cancellation terminal.
	StateCancelled State = "cancelled"
)

// Terminal reports whether the state ends a run.
func (s State) Terminal() bool {
	return s == StateSolved || s == StateExhausted || s == StateCancelled
}

// Metrics are the run's observability counters. Blacklist figures are
// snapshots of the store's size accessors; hosts watch them to decide
// when unbounded growth becomes unacceptable.
type Metrics struct {
	NodesVisited     int64         `json:"nodes_visited"`
	CandidatesScored int64         `json:"candidates_scored"`
	Backtracks       int64         `json:"backtracks"`
	BlacklistEntries int           `json:"blacklist_entries"`
	BlacklistNodes   int           `json:"blacklist_nodes"`
	BlacklistBytes   int64         `json:"blacklist_bytes"`
	Elapsed          time.Duration `json:"elapsed"`
}

// Result is the outcome of a completed run.
type Result struct {
	// Outcome is one of the three terminal states.
	Outcome State

	// Solution holds the per-row column assignments when Solved, nil
	// otherwise.
	Solution []int

	// Key is the symmetry-canonical solution encoding when Solved.
	Key board.Key

	// Metrics are the final counters.
	Metrics Metrics
}

// Engine runs one best-first backtracking search over one board.
//
// The engine exclusively owns its board and blacklist for the run's
// duration; nothing else may mutate them concurrently. An Engine is
// single-use: construct, Run once, read the result.
type Engine struct {
	board     *board.Board
	registry  *score.Registry
	blacklist *blacklist.Trie
	clock     Sequencer
	log       *slog.Logger

	state      State
	metrics    Metrics
	nodeBudget int
}

// EngineOption allows configuration of engine parameters.
type EngineOption func(*Engine)

// WithLogger sets the structured logger. Defaults to a discard logger.
func WithLogger(log *slog.Logger) EngineOption {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithBlacklist injects a pre-built dead-branch store. Default: a fresh
// empty store per engine. Useful for tests asserting on store state and
// for future sharding experiments.
func WithBlacklist(t *blacklist.Trie) EngineOption {
	return func(e *Engine) {
		if t != nil {
			e.blacklist = t
		}
	}
}

// WithClock sets the expansion numbering source.
func WithClock(c Sequencer) EngineOption {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithNodeBudget caps blacklist arena growth. When the store's node
// count exceeds the budget the run aborts with a MEMORY_EXHAUSTED
// RunError. Zero means unbounded, the documented default.
func WithNodeBudget(nodes int) EngineOption {
	return func(e *Engine) {
		e.nodeBudget = nodes
	}
}

// New creates an Engine over a board and a scorer registry.
//
// The board must be freshly constructed (presets only); the engine
// assumes every non-preset queen on it was placed by the engine itself.
func New(b *board.Board, registry *score.Registry, opts ...EngineOption) *Engine {
	e := &Engine{
		board:     b,
		registry:  registry,
		blacklist: blacklist.NewTrie(),
		clock:     NewClock(),
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		state:     StateRoot,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// State returns the current automaton state.
func (e *Engine) State() State {
	return e.state
}

// Board returns the engine's board. Read-only for callers while a run
// is in flight; after the run it holds the terminal position.
func (e *Engine) Board() *board.Board {
	return e.board
}

// Blacklist returns the dead-branch store for host-level monitoring.
func (e *Engine) Blacklist() *blacklist.Trie {
	return e.blacklist
}

// Metrics returns a snapshot of the run counters, including current
// blacklist sizes. Valid at any point, including after an aborted run.
func (e *Engine) Metrics() Metrics {
	m := e.metrics
	m.BlacklistEntries = e.blacklist.Len()
	m.BlacklistNodes = e.blacklist.Nodes()
	m.BlacklistBytes = e.blacklist.SizeBytes()
	return m
}

// Run drives the search to a terminal state.
//
// Returns a Result for the three legitimate terminals; Exhausted and
// Cancelled are NOT errors. The error return covers abnormal aborts
// only (currently the blacklist node budget).
//
// The context is polled once per state step. Cancellation is
// cooperative: it never interrupts a placement, so the board and the
// blacklist are always consistent when StateCancelled is reported.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if e.state != StateRoot {
		return nil, fmt.Errorf("engine already ran (state=%s)", e.state)
	}

	start := time.Now()
	e.log.Debug("run starting",
		"width", e.board.Width(),
		"presets", e.board.Placed(),
		"scorers", e.registry.Len(),
		"node_budget", e.nodeBudget)

	for {
		select {
		case <-ctx.Done():
			e.state = StateCancelled
			e.log.Debug("run cancelled", "visited", e.metrics.NodesVisited)
			return e.finish(start), nil
		default:
		}

		switch e.state {
		case StateRoot:
			if e.board.IsComplete() {
				// Every row was preset; the presets are the solution.
				e.state = StateSolved
				return e.finish(start), nil
			}
			e.state = StateExpanding

		case StateExpanding:
			if err := e.expand(); err != nil {
				e.metrics.Elapsed = time.Since(start)
				return nil, err
			}
			if e.state == StateSolved {
				return e.finish(start), nil
			}

		case StateBacktrack:
			if err := e.board.Undo(); err != nil {
				if board.IsNothingToUndo(err) {
					// The root itself is exhausted: no solution exists
					// under the given presets.
					e.state = StateExhausted
					return e.finish(start), nil
				}
				return nil, fmt.Errorf("backtrack: %w", err)
			}
			e.metrics.Backtracks++
			e.state = StateExpanding

		default:
			return nil, fmt.Errorf("unexpected engine state %q", e.state)
		}
	}
}

// expand performs one Expanding step: enumerate, filter against the
// blacklist, score, and apply the best candidate - or record the current
// position as dead and switch to Backtrack.
func (e *Engine) expand() error {
	row, ok := e.board.NextRow()
	if !ok {
		e.state = StateSolved
		return nil
	}

	// Each candidate is applied, keyed and scored, then unwound. Scorers
	// see the board WITH the candidate on it and the candidate as the
	// last move.
	bestCol := -1
	bestScore := 0.0
	for _, col := range e.board.LegalMoves(row) {
		if err := e.board.Place(row, col); err != nil {
			return fmt.Errorf("apply candidate (row=%d, col=%d): %w", row, col, err)
		}
		key := e.board.CanonicalKey()
		dead := e.blacklist.ContainsPrefix(key)
		var s float64
		if !dead {
			s = e.registry.Composite(e.board, board.Move{Row: row, Col: col})
			e.metrics.CandidatesScored++
		}
		if err := e.board.Undo(); err != nil {
			return fmt.Errorf("unwind candidate (row=%d, col=%d): %w", row, col, err)
		}
		// Strict comparison keeps the smallest column on ties; columns
		// arrive in ascending order.
		if !dead && (bestCol < 0 || s > bestScore) {
			bestCol, bestScore = col, s
		}
	}

	if bestCol < 0 {
		// Nothing viable below this position: prove it dead and unwind.
		key := e.board.CanonicalKey()
		e.blacklist.Insert(key)
		if err := e.checkBudget(); err != nil {
			return err
		}
		e.log.Debug("branch dead",
			"row", row,
			"key", key.String(),
			"blacklist_nodes", e.blacklist.Nodes())
		e.state = StateBacktrack
		return nil
	}

	if err := e.board.Place(row, bestCol); err != nil {
		return fmt.Errorf("apply selected move (row=%d, col=%d): %w", row, bestCol, err)
	}
	seq := e.clock.Next()
	e.metrics.NodesVisited++
	e.log.Debug("expanded",
		"seq", seq,
		"row", row,
		"col", bestCol,
		"score", bestScore)

	if e.board.IsComplete() {
		e.state = StateSolved
	}
	return nil
}

// checkBudget enforces the optional blacklist node budget.
func (e *Engine) checkBudget() error {
	if e.nodeBudget > 0 && e.blacklist.Nodes() > e.nodeBudget {
		return NewMemoryExhaustedError(e.blacklist.Nodes(), e.nodeBudget)
	}
	return nil
}

// finish stamps the final metrics and assembles the Result.
func (e *Engine) finish(start time.Time) *Result {
	e.metrics.Elapsed = time.Since(start)
	m := e.Metrics()
	e.metrics = m

	r := &Result{
		Outcome: e.state,
		Metrics: m,
	}
	if e.state == StateSolved {
		r.Solution = e.board.Columns()
		r.Key = e.board.CanonicalKey()
	}

	e.log.Debug("run finished",
		"outcome", string(e.state),
		"visited", m.NodesVisited,
		"backtracks", m.Backtracks,
		"blacklist_entries", m.BlacklistEntries,
		"elapsed", m.Elapsed)
	return r
}
