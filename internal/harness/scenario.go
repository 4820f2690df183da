package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/gambit/internal/engine"
)

// Scenario defines one conformance case: a board instance, the scorer
// lineup to search it with, and the expected result.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden snapshots are
	// filed under it.
	Name string `yaml:"name"`

	// Description explains what this scenario pins down.
	Description string `yaml:"description"`

	// Board is the instance to solve.
	Board BoardSpec `yaml:"board"`

	// Scorers lists scorer directives in composite order. Empty means
	// an unweighted search where every candidate scores zero.
	Scorers []string `yaml:"scorers,omitempty"`

	// MaxNodes is the blacklist node budget. Zero means unbounded.
	MaxNodes int `yaml:"max_nodes,omitempty"`

	// Expect is the expected terminal result.
	Expect ExpectClause `yaml:"expect"`

	// Assertions are additional checks on the finished run.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// BoardSpec describes the instance: dimension and preset queen cells
// as row-major indices.
type BoardSpec struct {
	Width   int   `yaml:"width"`
	Presets []int `yaml:"presets,omitempty"`
}

// ExpectClause specifies the expected terminal result. Exactly one of
// Outcome and Error must be set.
type ExpectClause struct {
	// Outcome is the expected terminal state, "solved" or "exhausted".
	Outcome string `yaml:"outcome,omitempty"`

	// Error is the expected abort code, e.g. "MEMORY_EXHAUSTED".
	Error string `yaml:"error,omitempty"`

	// Solution is the exact expected column-per-row assignment.
	// Solved scenarios only.
	Solution []int `yaml:"solution,omitempty"`

	// Key is the expected canonical solution key. Solved scenarios
	// only.
	Key string `yaml:"key,omitempty"`

	// Metrics holds exact expected counter values by metric name.
	Metrics map[string]int64 `yaml:"metrics,omitempty"`
}

// Assertion is one additional check on the finished run.
type Assertion struct {
	// Type selects the check.
	Type string `yaml:"type"`

	// Metric names the counter checked by metric_bound.
	Metric string `yaml:"metric,omitempty"`

	// Min and Max bound the counter, inclusive. Either may be omitted,
	// not both.
	Min *int64 `yaml:"min,omitempty"`
	Max *int64 `yaml:"max,omitempty"`
}

// Assertion type constants.
const (
	AssertSolutionLegal  = "solution_legal"
	AssertKeyCanonical   = "key_canonical"
	AssertMetricBound    = "metric_bound"
	AssertStoreRoundTrip = "store_round_trip"
)

// metricNames are the counters addressable from expect.metrics and
// metric_bound assertions, keyed by their JSON names.
var metricNames = map[string]bool{
	"nodes_visited":     true,
	"candidates_scored": true,
	"backtracks":        true,
	"blacklist_entries": true,
	"blacklist_nodes":   true,
	"blacklist_bytes":   true,
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// (typos) and missing required fields are errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenarioDir loads every *.yaml file in a directory, sorted by
// file name.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list scenario dir: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		scenario, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Board.Width < 1 {
		return fmt.Errorf("board.width must be at least 1")
	}
	if s.MaxNodes < 0 {
		return fmt.Errorf("max_nodes must not be negative")
	}

	if err := validateExpect(&s.Expect); err != nil {
		return err
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion, &s.Expect); err != nil {
			return err
		}
	}
	return nil
}

// validateExpect checks the expect clause for internal consistency.
func validateExpect(e *ExpectClause) error {
	switch {
	case e.Outcome == "" && e.Error == "":
		return fmt.Errorf("expect: one of outcome and error is required")
	case e.Outcome != "" && e.Error != "":
		return fmt.Errorf("expect: outcome and error are mutually exclusive")
	}

	if e.Error != "" {
		if len(e.Solution) > 0 || e.Key != "" || len(e.Metrics) > 0 {
			return fmt.Errorf("expect: an aborted run has no solution, key or metrics")
		}
		return nil
	}

	switch engine.State(e.Outcome) {
	case engine.StateSolved:
	case engine.StateExhausted:
		if len(e.Solution) > 0 || e.Key != "" {
			return fmt.Errorf("expect: an exhausted run has no solution or key")
		}
	default:
		return fmt.Errorf("expect: outcome must be %q or %q, got %q",
			engine.StateSolved, engine.StateExhausted, e.Outcome)
	}

	for name := range e.Metrics {
		if !metricNames[name] {
			return fmt.Errorf("expect.metrics: unknown metric %q", name)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, e *ExpectClause) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertSolutionLegal, AssertKeyCanonical:
		if engine.State(e.Outcome) != engine.StateSolved {
			return fmt.Errorf("assertions[%d]: %s requires a solved expectation", index, a.Type)
		}
	case AssertMetricBound:
		if a.Metric == "" {
			return fmt.Errorf("assertions[%d]: metric is required for metric_bound", index)
		}
		if !metricNames[a.Metric] {
			return fmt.Errorf("assertions[%d]: unknown metric %q", index, a.Metric)
		}
		if a.Min == nil && a.Max == nil {
			return fmt.Errorf("assertions[%d]: metric_bound needs min or max", index)
		}
	case AssertStoreRoundTrip:
		if e.Error != "" {
			return fmt.Errorf("assertions[%d]: store_round_trip requires a completed run", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
