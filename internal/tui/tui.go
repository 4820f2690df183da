// Package tui implements the interactive board editor behind
// `gambit edit`: a grid cursor for placing and removing preset queens,
// with the solver one keypress away.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roach88/gambit/internal/board"
	"github.com/roach88/gambit/internal/engine"
	"github.com/roach88/gambit/internal/score"
)

const (
	// DefaultWidth is the editor's starting board width.
	DefaultWidth = 8

	minWidth = 1
	maxWidth = 20
)

// solveDoneMsg reports a finished in-editor search.
type solveDoneMsg struct {
	res *engine.Result
	err error
}

// Model is the editor state. Queens the user placed are kept as preset
// cell indices; the board is rebuilt through board.New on every change,
// so placement legality is exactly the solver's.
type Model struct {
	width   int
	presets []int
	board   *board.Board

	cursorRow int
	cursorCol int

	solving bool
	status  string

	registry *score.Registry
}

// New creates an editor model. The presets seed the starting position
// and are validated like any solve request. The registry steers
// in-editor solves and must be non-nil; an empty registry is fine.
func New(width int, presets []int, registry *score.Registry) (Model, error) {
	if width < minWidth || width > maxWidth {
		return Model{}, fmt.Errorf("width must be between %d and %d, got %d", minWidth, maxWidth, width)
	}
	m := Model{width: width, registry: registry}
	if err := m.rebuild(presets); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case solveDoneMsg:
		return m.handleSolveDone(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.solving {
		// Only quitting is allowed while a search runs.
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	// Messages live until the next keypress.
	m.status = ""

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "h", "left":
		if m.cursorCol > 0 {
			m.cursorCol--
		}
	case "l", "right":
		if m.cursorCol < m.width-1 {
			m.cursorCol++
		}
	case "k", "up":
		if m.cursorRow > 0 {
			m.cursorRow--
		}
	case "j", "down":
		if m.cursorRow < m.width-1 {
			m.cursorRow++
		}
	case " ":
		m.toggle()
	case "c":
		m.reset(m.width)
	case "+", "=":
		m.resize(m.width + 1)
	case "-", "_":
		m.resize(m.width - 1)
	case "x":
		return m.startSolve()
	default:
		if msg.Type == tea.KeyRunes {
			m.status = fmt.Sprintf("unknown %q command", msg.String())
		}
	}
	return m, nil
}

// toggle places or removes a queen under the cursor. Attacked cells
// refuse placement, which also rules out two queens in one row.
func (m *Model) toggle() {
	index := m.board.Index(m.cursorRow, m.cursorCol)
	cell := m.board.Cell(index)

	switch {
	case cell.IsQueen():
		next := make([]int, 0, len(m.presets))
		for _, p := range m.presets {
			if p != index {
				next = append(next, p)
			}
		}
		if err := m.rebuild(next); err != nil {
			m.status = err.Error()
		}
	case cell.IsAttacked():
		m.status = fmt.Sprintf("cell %d is attacked", index)
	default:
		next := append(append([]int(nil), m.presets...), index)
		if err := m.rebuild(next); err != nil {
			m.status = err.Error()
			return
		}
		if m.board.IsComplete() {
			m.status = "solved!"
		}
	}
}

func (m *Model) resize(width int) {
	if width < minWidth || width > maxWidth {
		m.status = fmt.Sprintf("width must be between %d and %d", minWidth, maxWidth)
		return
	}
	m.reset(width)
}

// reset replaces the position with an empty board of the given width.
func (m *Model) reset(width int) {
	m.width = width
	m.cursorRow, m.cursorCol = 0, 0
	if err := m.rebuild(nil); err != nil {
		// An empty board of a bounds-checked width always builds.
		m.status = err.Error()
	}
}

func (m *Model) rebuild(presets []int) error {
	b, err := board.New(m.width, presets)
	if err != nil {
		return err
	}
	m.presets = presets
	m.board = b
	return nil
}

func (m Model) startSolve() (tea.Model, tea.Cmd) {
	m.solving = true
	m.status = "solving..."

	width := m.width
	presets := append([]int(nil), m.presets...)
	registry := m.registry

	return m, func() tea.Msg {
		b, err := board.New(width, presets)
		if err != nil {
			return solveDoneMsg{err: err}
		}
		res, err := engine.New(b, registry).Run(context.Background())
		return solveDoneMsg{res: res, err: err}
	}
}

func (m Model) handleSolveDone(msg solveDoneMsg) (tea.Model, tea.Cmd) {
	m.solving = false
	if msg.err != nil {
		m.status = msg.err.Error()
		return m, nil
	}

	switch msg.res.Outcome {
	case engine.StateSolved:
		// The solution becomes the editable position, queens and all.
		cells := make([]int, len(msg.res.Solution))
		for row, col := range msg.res.Solution {
			cells[row] = row*m.width + col
		}
		if err := m.rebuild(cells); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("solved in %d jumps!", msg.res.Metrics.Backtracks)
	case engine.StateExhausted:
		m.status = fmt.Sprintf("board exhausted in %d jumps!", msg.res.Metrics.Backtracks)
	default:
		m.status = string(msg.res.Outcome)
	}
	return m, nil
}
