package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sort"

	"github.com/roach88/gambit/internal/board"
	"github.com/roach88/gambit/internal/engine"
	"github.com/roach88/gambit/internal/score"
	"github.com/roach88/gambit/internal/scorers"
)

// Run executes a scenario against the engine and evaluates its
// expectations and assertions.
//
// The error return covers broken scenarios (unresolvable scorer
// directives, invalid boards) and aborts the scenario did not expect;
// failed checks land in the Result instead.
func Run(scenario *Scenario) (*Result, error) {
	specs, normalized, err := scorers.FromDirectives(scenario.Scorers)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}
	registry, err := score.NewRegistry(specs...)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}
	b, err := board.New(scenario.Board.Width, scenario.Board.Presets)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}

	result := NewResult(scenario.Name)
	result.Width = scenario.Board.Width
	result.Presets = slices.Clone(scenario.Board.Presets)
	result.Scorers = normalized

	opts := []engine.EngineOption{
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	if scenario.MaxNodes > 0 {
		opts = append(opts, engine.WithNodeBudget(scenario.MaxNodes))
	}

	res, err := engine.New(b, registry, opts...).Run(context.Background())
	if err != nil {
		return abortedResult(scenario, result, err)
	}

	if scenario.Expect.Error != "" {
		result.AddError("expected abort %s, run finished as %s",
			scenario.Expect.Error, res.Outcome)
		return result, nil
	}

	result.Outcome = res.Outcome
	result.Solution = slices.Clone(res.Solution)
	result.Key = res.Key.String()
	result.Metrics = res.Metrics

	evaluateExpect(&scenario.Expect, res, result)
	evaluateAssertions(scenario, res, result)
	return result, nil
}

// abortedResult matches a run abort against the scenario's expected
// error code. An abort the scenario did not ask for is an execution
// error, not a failed check.
func abortedResult(scenario *Scenario, result *Result, err error) (*Result, error) {
	if scenario.Expect.Error == "" {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}
	var runErr *engine.RunError
	if !errors.As(err, &runErr) {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}
	if string(runErr.Code) != scenario.Expect.Error {
		result.AddError("expected abort %s, got %s", scenario.Expect.Error, runErr.Code)
	}
	return result, nil
}

// evaluateExpect checks the expect clause against the engine result.
// Solution, key and metric checks are skipped after an outcome
// mismatch; they would only restate it.
func evaluateExpect(e *ExpectClause, res *engine.Result, result *Result) {
	if string(res.Outcome) != e.Outcome {
		result.AddError("expected outcome %s, got %s", e.Outcome, res.Outcome)
		return
	}
	if e.Solution != nil && !slices.Equal(res.Solution, e.Solution) {
		result.AddError("expected solution %v, got %v", e.Solution, res.Solution)
	}
	if e.Key != "" && res.Key.String() != e.Key {
		result.AddError("expected key %s, got %s", e.Key, res.Key)
	}

	names := make([]string, 0, len(e.Metrics))
	for name := range e.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		got, _ := metricValue(res.Metrics, name)
		if want := e.Metrics[name]; got != want {
			result.AddError("metric %s: expected %d, got %d", name, want, got)
		}
	}
}
