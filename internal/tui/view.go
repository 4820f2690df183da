package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	glyphQueen    = "█"
	glyphAttacked = "▓"
	glyphFree     = "░"
)

var (
	colorQueen  = lipgloss.Color("212")
	colorAttack = lipgloss.Color("103")
	colorFree   = lipgloss.Color("240")
	colorCursor = lipgloss.Color("57")
	colorAccent = lipgloss.Color("205")
	colorFaint  = lipgloss.Color("243")
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	queenStyle  = lipgloss.NewStyle().Foreground(colorQueen)
	attackStyle = lipgloss.NewStyle().Foreground(colorAttack)
	freeStyle   = lipgloss.NewStyle().Foreground(colorFree)
	statusStyle = lipgloss.NewStyle().Foreground(colorAccent)
	helpStyle   = lipgloss.NewStyle().Foreground(colorFaint)
)

const helpLine = "hjkl - move; space - toggle queen; c - clear; +/- - resize; x - solve; q - quit"

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("gambit editor (width %d)", m.width)))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderGrid())
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render(helpLine))
	sb.WriteString("\n")

	status := m.status
	if m.solving {
		status = "solving..."
	}
	if status != "" {
		sb.WriteString(statusStyle.Render(status))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m Model) renderGrid() string {
	var sb strings.Builder
	for row := 0; row < m.width; row++ {
		for col := 0; col < m.width; col++ {
			cell := m.board.Cell(m.board.Index(row, col))

			var glyph string
			var style lipgloss.Style
			switch {
			case cell.IsQueen():
				glyph, style = glyphQueen, queenStyle
			case cell.IsAttacked():
				glyph, style = glyphAttacked, attackStyle
			default:
				glyph, style = glyphFree, freeStyle
			}
			if row == m.cursorRow && col == m.cursorCol {
				style = style.Background(colorCursor)
			}

			sb.WriteString(style.Render(glyph))
			if col < m.width-1 {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
