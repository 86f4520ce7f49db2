package render

import (
	"strings"

	"dtop/internal/state"
)

// LogContent joins the buffered log lines for the active LogView into the
// content string a bubbles/viewport renders; the ANSI styling in each line
// was decoded once by the log worker and is preserved verbatim here.
func LogContent(s *state.State) string {
	if len(s.Log) == 0 {
		return MutedStyle.Render("waiting for log output...")
	}
	var b strings.Builder
	for i, entry := range s.Log {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(entry.Styled)
	}
	return b.String()
}

// LogTitle renders the header line shown above the log viewport.
func LogTitle(s *state.State) string {
	c, ok := s.Container(s.View.Target)
	if !ok {
		return HeaderStyle.Render("logs")
	}
	return HeaderStyle.Render("logs: " + c.Name)
}
