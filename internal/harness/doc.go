/*
Package harness executes YAML conformance scenarios against the solver.

A scenario names a board instance, an optional scorer lineup and the
expected terminal result. The harness builds the board, resolves the
directives and drives the real engine to completion, so a failing
scenario means the solver drifted, never that a fixture went stale on
its own.

# Scenario Format

Scenarios are YAML files with strict field checking:

	name: width_four_solved
	description: "The smallest solvable width"
	board:
	  width: 4
	expect:
	  outcome: solved
	  solution: [1, 3, 0, 2]
	  key: "1,3,0,2"
	  metrics:
	    nodes_visited: 8
	assertions:
	  - type: solution_legal
	  - type: key_canonical

The expect clause pins the terminal state; scenarios for budget aborts
set expect.error to the abort code instead of an outcome.

# Assertion Types

Assertions add checks beyond the expect clause:

  - solution_legal: the reported solution survives full placement
    validation (in range, one queen per row, pairwise non-attacking)
  - key_canonical: the reported key equals the symmetry-canonical
    form recomputed from the solution alone
  - metric_bound: a named counter stays within inclusive min/max
    bounds
  - store_round_trip: the run persists into a fresh in-memory store
    and reads back by fingerprint unchanged

# Deterministic Testing

A run's path depends only on width, presets and the scorer lineup;
score ties resolve to the smaller column. Every counter except the
elapsed time is therefore reproducible, which is what makes exact
metric expectations and golden snapshots viable.

# Usage

	scenario, err := harness.LoadScenario("testdata/scenarios/width_four_solved.yaml")
	if err != nil {
		...
	}
	result, err := harness.Run(scenario)
	if err != nil {
		...
	}
	if !result.Pass {
		// result.Errors lists each failed check
	}
*/
package harness
