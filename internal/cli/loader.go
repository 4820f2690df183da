package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// InputError represents an error in the board description a command was
// given.
type InputError struct {
	Code    string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeReadFailed   = "E002" // Reading the board description failed
	ErrCodeEmptyInput   = "E003" // No board description given
	ErrCodeInvalidWidth = "E004" // Width segment missing or unparsable
	ErrCodeInvalidCell  = "E005" // Preset segment unparsable
)

// BoardInput is a parsed board description: the board width plus any
// preset queen cell indices in row-major order.
type BoardInput struct {
	Width   int
	Presets []int
}

// readBoardInput takes the board description from the positional
// argument when one is given, otherwise from stdin. This lets boards be
// piped in: `echo 8 | gambit solve`.
func readBoardInput(cmd *cobra.Command, args []string) (BoardInput, error) {
	var raw string
	if len(args) > 0 {
		raw = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return BoardInput{}, &InputError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("reading board from stdin: %v", err)}
		}
		raw = string(data)
	}
	return ParseBoardInput(raw)
}

// ParseBoardInput parses a board description of the form
// "width,cell,cell,...". Everything that is not an ASCII digit or a
// comma is stripped first, so whitespace, quotes, and trailing newlines
// from piped input are all tolerated. The first segment is the board
// width; each remaining segment is a preset queen cell index.
func ParseBoardInput(raw string) (BoardInput, error) {
	filtered := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' {
			return r
		}
		return -1
	}, raw)

	if filtered == "" {
		return BoardInput{}, &InputError{Code: ErrCodeEmptyInput, Message: "no board description given"}
	}

	segments := strings.Split(filtered, ",")

	width, err := strconv.Atoi(segments[0])
	if err != nil {
		return BoardInput{}, &InputError{Code: ErrCodeInvalidWidth, Message: fmt.Sprintf("invalid width %q", segments[0])}
	}

	presets := make([]int, 0, len(segments)-1)
	for _, seg := range segments[1:] {
		cell, err := strconv.Atoi(seg)
		if err != nil {
			return BoardInput{}, &InputError{Code: ErrCodeInvalidCell, Message: fmt.Sprintf("invalid cell index %q", seg)}
		}
		presets = append(presets, cell)
	}

	return BoardInput{Width: width, Presets: presets}, nil
}
