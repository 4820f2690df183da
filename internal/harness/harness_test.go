package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gambit/internal/engine"
	"github.com/roach88/gambit/internal/score"
)

func TestRun_WidthFour_SolvesWithExactMetrics(t *testing.T) {
	scenario := &Scenario{
		Name:        "inline_width_four",
		Description: "Exact counters for the smallest solvable width",
		Board:       BoardSpec{Width: 4},
		Expect: ExpectClause{
			Outcome:  "solved",
			Solution: []int{1, 3, 0, 2},
			Key:      "1,3,0,2",
			Metrics: map[string]int64{
				"nodes_visited":     8,
				"candidates_scored": 13,
				"backtracks":        4,
				"blacklist_entries": 4,
				"blacklist_nodes":   5,
			},
		},
		Assertions: []Assertion{
			{Type: AssertSolutionLegal},
			{Type: AssertKeyCanonical},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, engine.StateSolved, result.Outcome)
	assert.Equal(t, []int{1, 3, 0, 2}, result.Solution)
	assert.Equal(t, "1,3,0,2", result.Key)
	assert.Equal(t, 4, result.Width)
	assert.Empty(t, result.Scorers)
}

func TestRun_WidthTwo_Exhausts(t *testing.T) {
	scenario := &Scenario{
		Name:        "inline_width_two",
		Description: "Nothing survives the diagonals",
		Board:       BoardSpec{Width: 2},
		Expect:      ExpectClause{Outcome: "exhausted"},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, engine.StateExhausted, result.Outcome)
	assert.Nil(t, result.Solution)
	assert.Empty(t, result.Key)
}

func TestRun_PresetSteersToMirrorSolution(t *testing.T) {
	// A preset at (0,2) forces the mirror of the classic solution; its
	// canonical key is still the classic form.
	scenario := &Scenario{
		Name:        "inline_mirror_preset",
		Description: "Preset picks the mirror solution, key stays canonical",
		Board:       BoardSpec{Width: 4, Presets: []int{2}},
		Expect: ExpectClause{
			Outcome:  "solved",
			Solution: []int{2, 0, 3, 1},
			Key:      "1,3,0,2",
		},
		Assertions: []Assertion{
			{Type: AssertSolutionLegal},
			{Type: AssertKeyCanonical},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, []int{2}, result.Presets)
}

func TestRun_BareScorerName_NormalizedInResult(t *testing.T) {
	scenario := &Scenario{
		Name:        "inline_ladder",
		Description: "Ladder walks width 5 in knight strides",
		Board:       BoardSpec{Width: 5},
		Scorers:     []string{"ladder"},
		Expect: ExpectClause{
			Outcome:  "solved",
			Solution: []int{0, 2, 4, 1, 3},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, []string{"builtin:ladder:1"}, result.Scorers)
	assert.Zero(t, result.Metrics.Backtracks)
}

func TestRun_ExpectedAbort_Passes(t *testing.T) {
	scenario := &Scenario{
		Name:        "inline_budget",
		Description: "A one-node budget dies at the first dead branch",
		Board:       BoardSpec{Width: 3},
		MaxNodes:    1,
		Expect:      ExpectClause{Error: "MEMORY_EXHAUSTED"},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Outcome)
	assert.Nil(t, result.Solution)
}

func TestRun_UnexpectedAbort_IsExecutionError(t *testing.T) {
	scenario := &Scenario{
		Name:        "inline_surprise_abort",
		Description: "The abort was not asked for",
		Board:       BoardSpec{Width: 3},
		MaxNodes:    1,
		Expect:      ExpectClause{Outcome: "exhausted"},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.True(t, engine.IsMemoryExhausted(err))
	assert.Contains(t, err.Error(), "inline_surprise_abort")
}

func TestRun_AbortExpectedButRunFinishes(t *testing.T) {
	scenario := &Scenario{
		Name:        "inline_no_abort",
		Description: "Budget never trips on a trivial board",
		Board:       BoardSpec{Width: 1},
		MaxNodes:    100,
		Expect:      ExpectClause{Error: "MEMORY_EXHAUSTED"},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected abort MEMORY_EXHAUSTED, run finished as solved")
}

func TestRun_OutcomeMismatch_FailsResult(t *testing.T) {
	scenario := &Scenario{
		Name:        "inline_wrong_outcome",
		Description: "Width 4 solves, the scenario says otherwise",
		Board:       BoardSpec{Width: 4},
		Expect:      ExpectClause{Outcome: "exhausted"},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected outcome exhausted, got solved")
}

func TestRun_SolutionMismatch_FailsResult(t *testing.T) {
	scenario := &Scenario{
		Name:        "inline_wrong_solution",
		Description: "The search finds the classic form, not the mirror",
		Board:       BoardSpec{Width: 4},
		Expect: ExpectClause{
			Outcome:  "solved",
			Solution: []int{2, 0, 3, 1},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected solution [2 0 3 1], got [1 3 0 2]")
}

func TestRun_MetricMismatch_NamesTheCounter(t *testing.T) {
	scenario := &Scenario{
		Name:        "inline_wrong_metric",
		Description: "One counter off by one",
		Board:       BoardSpec{Width: 4},
		Expect: ExpectClause{
			Outcome: "solved",
			Metrics: map[string]int64{"nodes_visited": 7},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "metric nodes_visited: expected 7, got 8", result.Errors[0])
}

func TestRun_BadDirective_IsExecutionError(t *testing.T) {
	scenario := &Scenario{
		Name:        "inline_bad_scorer",
		Description: "Unresolvable directive",
		Board:       BoardSpec{Width: 4},
		Scorers:     []string{"builtin:nope"},
		Expect:      ExpectClause{Outcome: "solved"},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.True(t, score.IsLoadError(err))
}

func TestRun_ConflictingPresets_IsExecutionError(t *testing.T) {
	scenario := &Scenario{
		Name:        "inline_bad_board",
		Description: "Adjacent presets attack each other",
		Board:       BoardSpec{Width: 4, Presets: []int{0, 1}},
		Expect:      ExpectClause{Outcome: "solved"},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inline_bad_board")
}

func TestResult_AddError_MarksFailed(t *testing.T) {
	result := NewResult("sample")
	assert.True(t, result.Pass)

	result.AddError("metric %s: expected %d, got %d", "backtracks", 0, 2)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "metric backtracks: expected 0, got 2", result.Errors[0])
}

// TestScenarioSuite runs every checked-in scenario. Completed runs are
// additionally compared against their golden snapshots.
func TestScenarioSuite(t *testing.T) {
	scenarios, err := LoadScenarioDir("testdata/scenarios")
	require.NoError(t, err)
	require.Len(t, scenarios, 7)

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			var result *Result
			var runErr error
			if scenario.Expect.Error != "" {
				result, runErr = Run(scenario)
			} else {
				result, runErr = RunWithGolden(t, scenario)
			}
			require.NoError(t, runErr)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}
