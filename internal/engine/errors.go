package engine

import (
	"errors"
	"fmt"
)

// RunError represents a fatal condition detected during a search run.
//
// The search's legitimate terminals (Solved, Exhausted, Cancelled) are
// outcomes, not errors. RunError covers the conditions that abort a run
// abnormally, currently only blacklist growth past a host-configured
// budget.
//
// RunError includes structured fields for diagnostics.
type RunError struct {
	// Code identifies the error category.
	Code RunErrorCode

	// Message is a human-readable description.
	Message string

	// Details contains additional context.
	Details map[string]string
}

// RunErrorCode categorizes run errors.
type RunErrorCode string

const (
	// ErrCodeMemoryExhausted indicates the blacklist grew past the
	// host-configured node budget. The store never self-limits; hosts
	// that set a budget get this instead of an OOM kill.
	ErrCodeMemoryExhausted RunErrorCode = "MEMORY_EXHAUSTED"
)

// Error implements the error interface.
func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsMemoryExhausted returns true if the error is a blacklist budget
// violation. Uses errors.As to handle wrapped errors.
func IsMemoryExhausted(err error) bool {
	var re *RunError
	if errors.As(err, &re) {
		return re.Code == ErrCodeMemoryExhausted
	}
	return false
}

// NewMemoryExhaustedError creates a RunError for blacklist growth past
// the configured budget.
func NewMemoryExhaustedError(nodes, budget int) *RunError {
	return &RunError{
		Code:    ErrCodeMemoryExhausted,
		Message: fmt.Sprintf("blacklist grew past node budget (%d > %d)", nodes, budget),
		Details: map[string]string{
			"nodes":  fmt.Sprintf("%d", nodes),
			"budget": fmt.Sprintf("%d", budget),
		},
	}
}
