package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/gambit/internal/board"
	"github.com/roach88/gambit/internal/engine"
	"github.com/roach88/gambit/internal/score"
)

// Exit codes for CLI commands. Solve outcomes map onto them so shell
// scripts can branch on the search result without parsing output.
const (
	ExitSolved    = 0   // a solution was found (and any non-solve success)
	ExitFailure   = 1   // invalid input, load errors, store failures
	ExitExhausted = 2   // search space exhausted without a solution
	ExitCancelled = 130 // interrupted or timed out (128 + SIGINT)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSolved (0) for nil and ExitFailure (1) for errors that
// carry no code of their own.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSolved
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutcomeExitError maps a terminal search outcome to the error a
// command should return: nil for Solved so the process exits 0,
// a coded ExitError otherwise. Output has already been rendered by
// the time this is called; SilenceErrors keeps Cobra from printing
// the sentinel.
func OutcomeExitError(outcome engine.State) error {
	switch outcome {
	case engine.StateSolved:
		return nil
	case engine.StateExhausted:
		return NewExitError(ExitExhausted, "search space exhausted")
	case engine.StateCancelled:
		return NewExitError(ExitCancelled, "search cancelled")
	default:
		return NewExitError(ExitFailure, fmt.Sprintf("search ended in non-terminal state %q", outcome))
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // error code, e.g. "INVALID_PRESET"
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format. Text
// mode prints the data's String form, so payloads implement
// fmt.Stringer for their human rendering.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// errorCode extracts the stable code carried by gambit's typed errors.
// JSON consumers branch on these codes instead of parsing messages.
func errorCode(err error) string {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return inputErr.Code
	}
	var boardErr *board.BoardError
	if errors.As(err, &boardErr) {
		return string(boardErr.Code)
	}
	var loadErr *score.LoadError
	if errors.As(err, &loadErr) {
		return score.ErrCodeLoad
	}
	var runErr *engine.RunError
	if errors.As(err, &runErr) {
		return string(runErr.Code)
	}
	return ErrCodeGeneric
}
