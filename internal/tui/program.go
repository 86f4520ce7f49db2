package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram builds the bubbletea program for the dashboard, running full
// screen so log output never scrolls the host terminal's own history.
func NewProgram(cfg Config) *tea.Program {
	return tea.NewProgram(New(cfg), tea.WithAltScreen())
}
