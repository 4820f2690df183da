// Package printer renders human-facing CLI output. Coloring follows
// github.com/fatih/color conventions: disabled for non-TTY writers and
// whenever NO_COLOR is set.
package printer

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	// Color definitions
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
	bold   = color.New(color.Bold)
)

// Printer writes styled messages to a pair of streams. Informational
// output goes to out, errors go to errOut.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

// New returns a Printer bound to the given streams.
func New(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut}
}

// Default returns a Printer bound to stdout and stderr.
func Default() *Printer {
	return New(os.Stdout, os.Stderr)
}

// Out exposes the informational stream for raw writes.
func (p *Printer) Out() io.Writer {
	return p.out
}

// Success prints a success message in green with a checkmark prefix.
func (p *Printer) Success(format string, a ...any) {
	green.Fprintf(p.out, "✓ %s", fmt.Sprintf(format, a...))
}

// Info prints an informational message in the default color.
func (p *Printer) Info(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Warning prints a warning message in yellow.
func (p *Printer) Warning(format string, a ...any) {
	yellow.Fprintf(p.out, "⚠ %s", fmt.Sprintf(format, a...))
}

// Step prints a step message with emphasis (used in multi-step
// operations).
func (p *Printer) Step(format string, a ...any) {
	cyan.Fprintf(p.out, "→ %s", fmt.Sprintf(format, a...))
}

// Error prints a message in red to the error stream and returns a
// plain error carrying the same text for Cobra (which stays silent:
// the root command sets SilenceErrors).
func (p *Printer) Error(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	red.Fprintf(p.errOut, "%s\n", msg)
	return fmt.Errorf("%s", msg)
}

// Println prints a plain message (for output that doesn't need
// coloring).
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// Printf prints a plain formatted message (for output that doesn't
// need coloring).
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Bold renders s with bold emphasis, for table headers and names.
func Bold(s string) string {
	return bold.Sprint(s)
}

// Green renders s in green for embedding in a larger message.
func Green(s string) string {
	return green.Sprint(s)
}

// Yellow renders s in yellow for embedding in a larger message.
func Yellow(s string) string {
	return yellow.Sprint(s)
}
