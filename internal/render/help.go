package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpBinding is a single keyboard shortcut line shown in the help overlay.
type HelpBinding struct {
	Key  string
	Desc string
}

var helpBindings = []HelpBinding{
	{Key: "↑↓ / j k", Desc: "Select container"},
	{Key: "enter", Desc: "Open action menu"},
	{Key: "l / →", Desc: "Show logs"},
	{Key: "esc / ←", Desc: "Back / close"},
	{Key: "/", Desc: "Search by name or ID"},
	{Key: "a", Desc: "Show/hide stopped containers"},
	{Key: "s", Desc: "Cycle sort field"},
	{Key: "u/n/c/m", Desc: "Jump to sort by uptime/name/cpu/memory"},
	{Key: "d", Desc: "Open in Dozzle"},
	{Key: "?", Desc: "Toggle this help"},
	{Key: "q / Ctrl+C", Desc: "Quit"},
}

var (
	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Background(ColorSurfaceBg).
			Padding(1, 2)

	helpTitleStyle = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).MarginBottom(1)
	helpKeyStyle   = lipgloss.NewStyle().Foreground(ColorTextPrimary).Bold(true).Width(14)
	helpDescStyle  = lipgloss.NewStyle().Foreground(ColorTextSecondary)
)

// HelpOverlay renders a centered help box with keyboard shortcuts, sized to
// the given viewport.
func HelpOverlay(width, height int) string {
	var lines []string
	lines = append(lines, helpTitleStyle.Render("Keyboard Shortcuts"))
	lines = append(lines, "")
	for _, b := range helpBindings {
		lines = append(lines, helpKeyStyle.Render(b.Key)+helpDescStyle.Render(b.Desc))
	}
	lines = append(lines, "")
	lines = append(lines, LabelStyle.Render("Press ? to close"))

	box := helpBoxStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
