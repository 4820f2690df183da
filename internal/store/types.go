package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/roach88/gambit/internal/canon"
	"github.com/roach88/gambit/internal/engine"
)

// Run is one persisted search run.
//
// Presets and Scorers describe the instance; together with Width they
// determine Fingerprint. Solution, SolutionHash and CanonicalKey are
// populated only for solved runs.
type Run struct {
	ID           string
	Fingerprint  string
	Width        int
	Presets      []int
	Scorers      []string
	Outcome      engine.State
	Solution     []int
	SolutionHash string
	CanonicalKey string
	Metrics      engine.Metrics
	CreatedAt    time.Time
}

// Solution is one canonical solution, shared by every run that found it.
type Solution struct {
	Hash         string
	Width        int
	CanonicalKey string
	FirstSeenAt  time.Time
}

// NewRun assembles a Run record from an instance description and a
// finished engine result, computing the content-addressed identities.
// The caller supplies normalized scorer directives. ID is left empty
// for WriteRun to assign.
func NewRun(width int, presets []int, scorers []string, res *engine.Result) (Run, error) {
	fingerprint, err := canon.RunFingerprint(width, presets, scorers)
	if err != nil {
		return Run{}, fmt.Errorf("new run: %w", err)
	}

	run := Run{
		Fingerprint: fingerprint,
		Width:       width,
		Presets:     presets,
		Scorers:     scorers,
		Outcome:     res.Outcome,
		Metrics:     res.Metrics,
		CreatedAt:   time.Now().UTC(),
	}

	if res.Outcome == engine.StateSolved {
		key := make([]int, len(res.Key))
		for i, c := range res.Key {
			key[i] = int(c)
		}
		hash, err := canon.SolutionHash(key)
		if err != nil {
			return Run{}, fmt.Errorf("new run: %w", err)
		}
		run.Solution = res.Solution
		run.SolutionHash = hash
		run.CanonicalKey = res.Key.String()
	}

	return run, nil
}

// marshalIntColumn serializes an int slice to canonical JSON TEXT.
// nil serializes as the empty array so stored text is comparable.
func marshalIntColumn(vals []int) (string, error) {
	if vals == nil {
		vals = []int{}
	}
	data, err := canon.MarshalCanonical(vals)
	if err != nil {
		return "", fmt.Errorf("marshal int column: %w", err)
	}
	return string(data), nil
}

// marshalStringColumn serializes a string slice to canonical JSON TEXT.
func marshalStringColumn(vals []string) (string, error) {
	if vals == nil {
		vals = []string{}
	}
	data, err := canon.MarshalCanonical(vals)
	if err != nil {
		return "", fmt.Errorf("marshal string column: %w", err)
	}
	return string(data), nil
}

// unmarshalIntColumn parses a canonical JSON TEXT column back to ints.
// The empty array comes back as nil.
func unmarshalIntColumn(data string) ([]int, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var vals []int
	if err := json.Unmarshal([]byte(data), &vals); err != nil {
		return nil, fmt.Errorf("unmarshal int column: %w", err)
	}
	return vals, nil
}

// unmarshalStringColumn parses a canonical JSON TEXT column back to strings.
func unmarshalStringColumn(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var vals []string
	if err := json.Unmarshal([]byte(data), &vals); err != nil {
		return nil, fmt.Errorf("unmarshal string column: %w", err)
	}
	return vals, nil
}

// formatTime renders a timestamp for a TEXT column, UTC RFC 3339.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime parses a TEXT column timestamp.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}
