// Package render derives the terminal frame from *state.State. It performs
// no I/O: given a State and a viewport size it returns plain strings for the
// dispatcher to write to the screen. Grounded on internal/monitor's
// separation of view/styles/card rendering from the model that owns state.
package render

import "github.com/charmbracelet/lipgloss"

const (
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	ColorHealthy  = lipgloss.Color("#39FF14")
	ColorWarning  = lipgloss.Color("#FFAA00")
	ColorCritical = lipgloss.Color("#FF0055")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent = lipgloss.Color("#FF2E97")
)

const (
	WarningThreshold  = 60.0
	CriticalThreshold = 80.0
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	HostGroupStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	SelectedRowStyle = lipgloss.NewStyle().
				Background(ColorSurfaceBg).
				Bold(true)

	LabelStyle = lipgloss.NewStyle().Foreground(ColorTextSecondary)
	ValueStyle = lipgloss.NewStyle().Foreground(ColorTextPrimary)
	MutedStyle = lipgloss.NewStyle().Foreground(ColorTextMuted)

	ActionMenuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 2)

	ActionSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)
)

// MetricColor returns the threshold-based color for a percentage metric.
func MetricColor(percent float64) lipgloss.Color {
	switch {
	case percent >= CriticalThreshold:
		return ColorCritical
	case percent >= WarningThreshold:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// MetricStyle returns a style whose foreground reflects the metric's severity.
func MetricStyle(percent float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(MetricColor(percent))
}

func stateStyle(healthy bool) lipgloss.Style {
	if healthy {
		return lipgloss.NewStyle().Foreground(ColorHealthy)
	}
	return lipgloss.NewStyle().Foreground(ColorTextMuted)
}
