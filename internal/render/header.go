package render

import (
	"fmt"

	"dtop/internal/model"
	"dtop/internal/state"
)

// Header renders the title bar with container/host counts.
func Header(s *state.State, hostCount int, width int) string {
	title := ActionSelectedStyle.Render("dtop")
	stats := LabelStyle.Render(fmt.Sprintf(" | %d hosts | %d containers", hostCount, s.Len()))
	line := title + stats
	if width > 0 {
		return HeaderStyle.Width(width).Render(line)
	}
	return HeaderStyle.Render(line)
}

// Footer renders the keybinding hint bar, varying by active view.
func Footer(s *state.State) string {
	var hints []string
	switch s.View.Kind {
	case model.ViewActionMenu:
		hints = []string{"↑↓ select", "enter confirm", "esc cancel"}
	case model.ViewLogView:
		hints = []string{"↑↓ scroll", "esc/← back", "q quit"}
	case model.ViewSearchMode:
		hints = []string{"type to filter", "enter accept", "esc cancel"}
	default:
		hints = []string{"↑↓ select", "enter actions", "/ search", "s sort", "a all", "l/→ logs", "d dozzle", "? help", "q quit"}
	}
	line := ""
	for i, h := range hints {
		if i > 0 {
			line += MutedStyle.Render(" | ")
		}
		line += LabelStyle.Render(h)
	}
	return FooterStyle.Render(line)
}
