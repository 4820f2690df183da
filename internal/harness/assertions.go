package harness

import (
	"context"
	"fmt"

	"github.com/roach88/gambit/internal/board"
	"github.com/roach88/gambit/internal/engine"
	"github.com/roach88/gambit/internal/store"
)

// AssertionError is a failed scenario assertion.
type AssertionError struct {
	// Type is the assertion type that failed.
	Type string

	// Expected and Actual describe the mismatch in human terms.
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion %s failed: expected %s, got %s",
		e.Type, e.Expected, e.Actual)
}

// evaluateAssertions runs every scenario assertion against the engine
// result, collecting failures into the harness result.
func evaluateAssertions(scenario *Scenario, res *engine.Result, result *Result) {
	for _, assertion := range scenario.Assertions {
		var err error
		switch assertion.Type {
		case AssertSolutionLegal:
			err = assertSolutionLegal(scenario.Board.Width, res)
		case AssertKeyCanonical:
			err = assertKeyCanonical(scenario.Board.Width, res)
		case AssertMetricBound:
			err = assertMetricBound(assertion, res.Metrics)
		case AssertStoreRoundTrip:
			err = assertStoreRoundTrip(scenario, result.Scorers, res)
		default:
			err = fmt.Errorf("unknown assertion type %q", assertion.Type)
		}
		if err != nil {
			result.AddError("%v", err)
		}
	}
}

// rebuildSolved reconstructs a board carrying the result's solution as
// preset queens, which re-runs full placement validation.
func rebuildSolved(width int, res *engine.Result) (*board.Board, error) {
	if len(res.Solution) != width {
		return nil, &AssertionError{
			Type:     AssertSolutionLegal,
			Expected: fmt.Sprintf("%d placements", width),
			Actual:   fmt.Sprintf("%d", len(res.Solution)),
		}
	}
	cells := make([]int, width)
	for row, col := range res.Solution {
		if col < 0 || col >= width {
			return nil, &AssertionError{
				Type:     AssertSolutionLegal,
				Expected: fmt.Sprintf("columns within width %d", width),
				Actual:   fmt.Sprintf("row %d holds column %d", row, col),
			}
		}
		cells[row] = row*width + col
	}
	b, err := board.New(width, cells)
	if err != nil {
		return nil, &AssertionError{
			Type:     AssertSolutionLegal,
			Expected: "mutually non-attacking queens",
			Actual:   err.Error(),
		}
	}
	return b, nil
}

// assertSolutionLegal verifies the solution through board
// construction: every placement in range, one queen per row, no two
// queens attacking.
func assertSolutionLegal(width int, res *engine.Result) error {
	_, err := rebuildSolved(width, res)
	return err
}

// assertKeyCanonical recomputes the canonical key from the solution
// alone and compares it with the key the engine reported.
func assertKeyCanonical(width int, res *engine.Result) error {
	b, err := rebuildSolved(width, res)
	if err != nil {
		return err
	}
	if key := b.CanonicalKey(); !key.Equal(res.Key) {
		return &AssertionError{
			Type:     AssertKeyCanonical,
			Expected: key.String(),
			Actual:   res.Key.String(),
		}
	}
	return nil
}

// assertMetricBound checks one counter against inclusive bounds.
func assertMetricBound(a Assertion, m engine.Metrics) error {
	value, ok := metricValue(m, a.Metric)
	if !ok {
		return fmt.Errorf("unknown metric %q", a.Metric)
	}
	if a.Min != nil && value < *a.Min {
		return &AssertionError{
			Type:     AssertMetricBound,
			Expected: fmt.Sprintf("%s >= %d", a.Metric, *a.Min),
			Actual:   fmt.Sprintf("%d", value),
		}
	}
	if a.Max != nil && value > *a.Max {
		return &AssertionError{
			Type:     AssertMetricBound,
			Expected: fmt.Sprintf("%s <= %d", a.Metric, *a.Max),
			Actual:   fmt.Sprintf("%d", value),
		}
	}
	return nil
}

// assertStoreRoundTrip persists the run into a fresh in-memory store
// and reads it back by fingerprint, comparing the identity fields.
func assertStoreRoundTrip(scenario *Scenario, normalized []string, res *engine.Result) error {
	st, err := store.Open(":memory:")
	if err != nil {
		return fmt.Errorf("store_round_trip: %w", err)
	}
	defer st.Close()

	run, err := store.NewRun(scenario.Board.Width, scenario.Board.Presets, normalized, res)
	if err != nil {
		return fmt.Errorf("store_round_trip: %w", err)
	}

	ctx := context.Background()
	_, inserted, err := st.WriteRun(ctx, run)
	if err != nil {
		return fmt.Errorf("store_round_trip: %w", err)
	}
	if !inserted {
		return &AssertionError{
			Type:     AssertStoreRoundTrip,
			Expected: "insert into a fresh store",
			Actual:   "write claimed an existing run",
		}
	}

	got, err := st.GetRunByFingerprint(ctx, run.Fingerprint)
	if err != nil {
		return fmt.Errorf("store_round_trip: %w", err)
	}
	if got.Outcome != res.Outcome || got.CanonicalKey != res.Key.String() {
		return &AssertionError{
			Type:     AssertStoreRoundTrip,
			Expected: fmt.Sprintf("outcome %s, key %q", res.Outcome, res.Key),
			Actual:   fmt.Sprintf("outcome %s, key %q", got.Outcome, got.CanonicalKey),
		}
	}
	return nil
}

// metricValue resolves a counter by its JSON name.
func metricValue(m engine.Metrics, name string) (int64, bool) {
	switch name {
	case "nodes_visited":
		return m.NodesVisited, true
	case "candidates_scored":
		return m.CandidatesScored, true
	case "backtracks":
		return m.Backtracks, true
	case "blacklist_entries":
		return int64(m.BlacklistEntries), true
	case "blacklist_nodes":
		return int64(m.BlacklistNodes), true
	case "blacklist_bytes":
		return m.BlacklistBytes, true
	}
	return 0, false
}
