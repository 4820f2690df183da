package board

import (
	"errors"
	"fmt"
)

// BoardError represents a placement or construction failure.
//
// Board errors fall into three categories:
//   - Invalid preset: malformed width or preset queens that conflict or
//     fall outside the board; detected at construction, fatal to the run
//   - Conflict: a candidate cell is occupied or attacked; an expected,
//     internal outcome used to filter move enumeration, never fatal
//   - Nothing to undo: Undo called with no search-assigned queens left;
//     drives the search's exhaustion terminal
type BoardError struct {
	// Code identifies the error category.
	Code BoardErrorCode

	// Message is a human-readable description.
	Message string

	// Row and Col locate the offending cell, -1 when not applicable.
	Row int
	Col int
}

// BoardErrorCode categorizes board errors.
type BoardErrorCode string

const (
	// ErrCodeInvalidPreset indicates malformed width or preset queens.
	ErrCodeInvalidPreset BoardErrorCode = "INVALID_PRESET"

	// ErrCodeConflict indicates a candidate cell is occupied or attacked.
	ErrCodeConflict BoardErrorCode = "CONFLICT"

	// ErrCodeNothingToUndo indicates Undo was called at the root.
	ErrCodeNothingToUndo BoardErrorCode = "NOTHING_TO_UNDO"
)

// Error implements the error interface.
func (e *BoardError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("%s: %s (row=%d, col=%d)", e.Code, e.Message, e.Row, e.Col)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidPreset returns true if the error is a preset validation error.
// Uses errors.As to handle wrapped errors.
func IsInvalidPreset(err error) bool {
	var be *BoardError
	if errors.As(err, &be) {
		return be.Code == ErrCodeInvalidPreset
	}
	return false
}

// IsConflict returns true if the error is a placement conflict.
// Uses errors.As to handle wrapped errors.
func IsConflict(err error) bool {
	var be *BoardError
	if errors.As(err, &be) {
		return be.Code == ErrCodeConflict
	}
	return false
}

// IsNothingToUndo returns true if the error signals an empty undo stack.
// Uses errors.As to handle wrapped errors.
func IsNothingToUndo(err error) bool {
	var be *BoardError
	if errors.As(err, &be) {
		return be.Code == ErrCodeNothingToUndo
	}
	return false
}

// NewInvalidPresetError creates a BoardError for preset validation.
// Pass row, col as -1 when the failure is not tied to a cell.
func NewInvalidPresetError(message string, row, col int) *BoardError {
	return &BoardError{
		Code:    ErrCodeInvalidPreset,
		Message: message,
		Row:     row,
		Col:     col,
	}
}

// NewConflictError creates a BoardError for a rejected placement.
func NewConflictError(row, col int) *BoardError {
	return &BoardError{
		Code:    ErrCodeConflict,
		Message: "cell is occupied or attacked",
		Row:     row,
		Col:     col,
	}
}

// NewNothingToUndoError creates a BoardError for an empty undo stack.
func NewNothingToUndoError() *BoardError {
	return &BoardError{
		Code:    ErrCodeNothingToUndo,
		Message: "no search-assigned queens to undo",
		Row:     -1,
		Col:     -1,
	}
}
