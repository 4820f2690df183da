package harness

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/gambit/internal/canon"
)

// snapshotMap flattens a harness result for canonical serialization.
//
// The elapsed time and the blacklist byte estimate are left out: the
// first is wall clock, the second tracks allocator capacity. Every
// field kept is reproducible for a fixed instance and scorer lineup.
func snapshotMap(result *Result) map[string]any {
	metrics := map[string]any{
		"nodes_visited":     result.Metrics.NodesVisited,
		"candidates_scored": result.Metrics.CandidatesScored,
		"backtracks":        result.Metrics.Backtracks,
		"blacklist_entries": result.Metrics.BlacklistEntries,
		"blacklist_nodes":   result.Metrics.BlacklistNodes,
	}
	snapshot := map[string]any{
		"scenario": result.Scenario,
		"width":    result.Width,
		"outcome":  string(result.Outcome),
		"metrics":  metrics,
	}
	if len(result.Presets) > 0 {
		snapshot["presets"] = result.Presets
	}
	if len(result.Scorers) > 0 {
		snapshot["scorers"] = result.Scorers
	}
	if len(result.Solution) > 0 {
		snapshot["solution"] = result.Solution
	}
	if result.Key != "" {
		snapshot["key"] = result.Key
	}
	return snapshot
}

// AssertGolden compares a result snapshot against the golden file
// named after the scenario under testdata/golden. Regenerate with:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, result *Result) error {
	t.Helper()

	if result.Outcome == "" {
		return fmt.Errorf("scenario %q: aborted runs have no snapshot", result.Scenario)
	}

	data, err := canon.MarshalCanonical(snapshotMap(result))
	if err != nil {
		return err
	}
	data = append(data, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, result.Scenario, data)
	return nil
}

// RunWithGolden executes a scenario and compares its snapshot against
// the golden file. A failed check fails the returned Result; a changed
// search path additionally fails the golden comparison.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, result); err != nil {
		return nil, err
	}
	return result, nil
}
