package render

import (
	"strings"

	"dtop/internal/model"
	"dtop/internal/state"
)

// renderActionMenu renders the modal action list for the targeted container.
func renderActionMenu(s *state.State) string {
	c, ok := s.Container(s.View.Target)
	if !ok {
		return ""
	}
	actions := model.AvailableActions(c.State)

	var b strings.Builder
	b.WriteString(LabelStyle.Bold(true).Render(c.Name))
	b.WriteString("\n\n")
	for i, act := range actions {
		line := act.String()
		if i == s.View.ActionSelected {
			line = ActionSelectedStyle.Render("> " + line)
		} else {
			line = ValueStyle.Render("  " + line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return ActionMenuStyle.Render(strings.TrimRight(b.String(), "\n"))
}
