package render

import (
	"time"

	"dtop/internal/model"
	"dtop/internal/state"
)

// View is a pure function from state + viewport size to the string the
// dispatcher writes to the terminal. It performs no I/O and holds no state
// of its own, mirroring internal/monitor's separation of rendering from the
// bubbletea Model that owns state.
func View(s *state.State, hostCount, width, height int, now time.Time, icons IconSet) string {
	header := Header(s, hostCount, width)
	footer := Footer(s)

	var body string
	switch s.View.Kind {
	case model.ViewLogView:
		body = LogTitle(s) + "\n\n" + LogContent(s)
	default:
		body = renderContainerList(s, now, icons)
	}

	out := header + "\n\n" + body + "\n" + footer

	if s.View.Kind == model.ViewActionMenu {
		out += "\n\n" + renderActionMenu(s)
	}
	if s.View.Kind == model.ViewSearchMode {
		out += "\n\n" + LabelStyle.Render("search: ") + ValueStyle.Render(s.Search)
	}
	if s.ShowHelp {
		return HelpOverlay(width, height)
	}
	return out
}
