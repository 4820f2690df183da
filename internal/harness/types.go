package harness

import (
	"fmt"

	"github.com/roach88/gambit/internal/engine"
)

// Result is the outcome of executing one scenario.
//
// Pass reports whether the run finished and every expectation and
// assertion held. Errors collects the violations in evaluation order;
// a failing scenario usually carries exactly one.
type Result struct {
	// Scenario is the name of the executed scenario.
	Scenario string

	// Pass reports whether every check held.
	Pass bool

	// Width, Presets and Scorers echo the instance that ran. Scorers
	// holds the normalized directive forms.
	Width   int
	Presets []int
	Scorers []string

	// Outcome, Solution, Key and Metrics carry the engine result. They
	// stay zero when the run aborted, as budget scenarios expect.
	Outcome  engine.State
	Solution []int
	Key      string
	Metrics  engine.Metrics

	// Errors lists every failed check.
	Errors []string
}

// NewResult creates a passing Result for the named scenario.
func NewResult(scenario string) *Result {
	return &Result{Scenario: scenario, Pass: true}
}

// AddError records a failed check and marks the result failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}
