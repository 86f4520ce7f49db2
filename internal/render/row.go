package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"dtop/internal/model"
	"dtop/internal/state"
	"dtop/internal/ui"
)

const sparklineWidth = 10

// stateGlyph maps a container state to the single-character indicator shown
// in the leftmost column, colored by health/severity.
func stateGlyph(c model.Container, icons IconSet) string {
	g := glyphsFor(icons)
	var glyph string
	var style lipgloss.Style
	switch c.State {
	case model.StateRunning:
		glyph = g.running
		style = stateStyle(true)
		if c.HasHealth {
			switch c.Health {
			case model.HealthHealthy:
				style = lipgloss.NewStyle().Foreground(ColorHealthy)
			case model.HealthUnhealthy:
				style = lipgloss.NewStyle().Foreground(ColorCritical)
			case model.HealthStarting:
				style = lipgloss.NewStyle().Foreground(ColorWarning)
			}
		}
	case model.StatePaused:
		glyph, style = g.paused, lipgloss.NewStyle().Foreground(ColorWarning)
	case model.StateRestarting:
		glyph, style = g.restarting, lipgloss.NewStyle().Foreground(ColorWarning)
	case model.StateExited, model.StateDead:
		glyph, style = g.exited, stateStyle(false)
	default:
		glyph, style = g.unknown, stateStyle(false)
	}
	return style.Render(glyph)
}

// containerRow renders one line of the container list table.
func containerRow(c model.Container, selected bool, now time.Time, icons IconSet) string {
	name := c.Name
	if len(name) > 24 {
		name = name[:21] + "..."
	}
	nameCol := ValueStyle.Render(fmt.Sprintf("%-24s", name))

	cpu := fmt.Sprintf("%5.1f%%", c.Stats.CPUPercent)
	cpuCol := MetricStyle(c.Stats.CPUPercent).Render(cpu)
	cpuSpark := ui.RenderSparkline(c.Stats.CPUHistory, sparklineWidth)

	mem := fmt.Sprintf("%5.1f%%", c.Stats.MemoryPercent)
	memCol := MetricStyle(c.Stats.MemoryPercent).Render(mem)
	memSpark := ui.RenderSparkline(c.Stats.MemoryHistory, sparklineWidth)

	netCol := MutedStyle.Render(fmt.Sprintf("%s/%s", formatRate(c.Stats.NetRxRate), formatRate(c.Stats.NetTxRate)))

	uptime := MutedStyle.Render(formatUptime(int64(now.Sub(c.Created).Seconds())))

	line := fmt.Sprintf("  %s %s  %s %s  %s %s  %s  %s",
		stateGlyph(c, icons), nameCol,
		cpuCol, cpuSpark,
		memCol, memSpark,
		netCol, uptime)

	if selected {
		return SelectedRowStyle.Render(line)
	}
	return line
}

// renderContainerList builds the host-grouped, sorted table body.
func renderContainerList(s *state.State, now time.Time, icons IconSet) string {
	rows := s.Rows()
	if len(rows) == 0 {
		return MutedStyle.Render("  No containers to show. Press 'a' to include stopped containers.")
	}

	var b strings.Builder
	var lastHost model.HostId
	first := true
	for i, key := range rows {
		c, ok := s.Container(key)
		if !ok {
			continue
		}
		if first || key.HostId != lastHost {
			if !first {
				b.WriteString("\n")
			}
			b.WriteString(HostGroupStyle.Render(string(key.HostId)))
			b.WriteString("\n")
			lastHost = key.HostId
			first = false
		}
		b.WriteString(containerRow(c, i == s.Selected, now, icons))
		if st, ok := s.ActionStatuses[key]; ok {
			b.WriteString("  ")
			b.WriteString(renderActionStatus(st))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderActionStatus(st state.ActionStatus) string {
	switch {
	case st.Err != "":
		return lipgloss.NewStyle().Foreground(ColorCritical).Render(fmt.Sprintf("%s failed: %s", st.Action, st.Err))
	case st.Succeeded:
		return lipgloss.NewStyle().Foreground(ColorHealthy).Render(fmt.Sprintf("%s ok", st.Action))
	default:
		return lipgloss.NewStyle().Foreground(ColorWarning).Render(fmt.Sprintf("%s...", st.Action))
	}
}
