package score

import (
	"errors"
	"fmt"
)

// LoadError reports that a requested scoring capability could not be
// resolved. It is fatal at startup; the run never begins.
type LoadError struct {
	// Path is the module-path part of the directive, "" when absent.
	Path string

	// Symbol is the requested function name.
	Symbol string

	// Message describes why resolution failed.
	Message string
}

// ErrCodeLoad is the stable identifier carried in formatted output.
const ErrCodeLoad = "LOAD_ERROR"

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (path=%s, symbol=%s)", ErrCodeLoad, e.Message, e.Path, e.Symbol)
	}
	return fmt.Sprintf("%s: %s (symbol=%s)", ErrCodeLoad, e.Message, e.Symbol)
}

// IsLoadError returns true if the error is a scorer resolution failure.
// Uses errors.As to handle wrapped errors.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// NewLoadError creates a LoadError for a failed directive.
func NewLoadError(path, symbol, message string) *LoadError {
	return &LoadError{
		Path:    path,
		Symbol:  symbol,
		Message: message,
	}
}
