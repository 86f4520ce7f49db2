package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"dtop/internal/model"
)

// Key bindings as constants for consistency, mirroring the list in
// internal/render's help overlay.
const (
	KeyQuit        = "q"
	KeyQuitAlt     = "ctrl+c"
	KeySelectPrev  = "up"
	KeySelectPrevK = "k"
	KeySelectNext  = "down"
	KeySelectNextJ = "j"
	KeyEnter       = "enter"
	KeyEscape      = "esc"
	KeyEscapeAlt   = "left"
	KeySearch      = "/"
	KeyToggleAll   = "a"
	KeyCycleSort   = "s"
	KeySortUptime  = "u"
	KeySortName    = "n"
	KeySortCPU     = "c"
	KeySortMemory  = "m"
	KeyShowLogs    = "l"
	KeyShowLogsAlt = "right"
	KeyOpenDozzle  = "d"
	KeyToggleHelp  = "?"
)

// sortFieldKeys maps a direct-jump sort key to the field it selects,
// mirroring the CLI --sort synonyms (model.ParseSortField).
var sortFieldKeys = map[string]model.SortField{
	KeySortUptime: model.SortUptime,
	KeySortName:   model.SortName,
	KeySortCPU:    model.SortCPU,
	KeySortMemory: model.SortMemory,
}

// handleKey translates a key press into an AppEvent given the current view,
// applies it, and returns the resulting side-effect Cmd.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.state.View.Kind == model.ViewLogView {
		if cmd, handled := m.handleLogViewKey(msg); handled {
			return cmd
		}
	}

	if m.state.View.Kind == model.ViewSearchMode {
		if evt, ok := translateSearchKey(msg); ok {
			return m.apply(evt)
		}
		return nil
	}

	key := msg.String()

	if m.state.ShowHelp {
		if key == KeyToggleHelp || key == KeyEscape {
			return m.apply(model.AppEvent{Kind: model.EventToggleHelp})
		}
		return nil
	}

	switch key {
	case KeyToggleHelp:
		return m.apply(model.AppEvent{Kind: model.EventToggleHelp})
	case KeyQuit, KeyQuitAlt:
		return m.apply(model.AppEvent{Kind: model.EventQuit})
	}

	switch m.state.View.Kind {
	case model.ViewContainerList:
		return m.handleListKey(key)
	case model.ViewActionMenu:
		return m.handleActionMenuKey(key)
	}
	return nil
}

func (m *Model) handleListKey(key string) tea.Cmd {
	switch key {
	case KeySelectPrev, KeySelectPrevK:
		return m.apply(model.AppEvent{Kind: model.EventSelectPrevious})
	case KeySelectNext, KeySelectNextJ:
		return m.apply(model.AppEvent{Kind: model.EventSelectNext})
	case KeyEnter:
		return m.apply(model.AppEvent{Kind: model.EventEnterPressed})
	case KeySearch:
		return m.apply(model.AppEvent{Kind: model.EventEnterSearchMode})
	case KeyToggleAll:
		return m.apply(model.AppEvent{Kind: model.EventToggleShowAll})
	case KeyCycleSort:
		return m.apply(model.AppEvent{Kind: model.EventCycleSortField})
	case KeySortUptime, KeySortName, KeySortCPU, KeySortMemory:
		return m.apply(model.AppEvent{Kind: model.EventSetSortField, SortField: sortFieldKeys[key]})
	case KeyShowLogs, KeyShowLogsAlt:
		return m.apply(model.AppEvent{Kind: model.EventShowLogView})
	case KeyOpenDozzle:
		return m.apply(model.AppEvent{Kind: model.EventOpenDozzle})
	}
	return nil
}

func (m *Model) handleActionMenuKey(key string) tea.Cmd {
	switch key {
	case KeySelectPrev, KeySelectPrevK:
		return m.apply(model.AppEvent{Kind: model.EventSelectActionUp})
	case KeySelectNext, KeySelectNextJ:
		return m.apply(model.AppEvent{Kind: model.EventSelectActionDown})
	case KeyEnter:
		return m.apply(model.AppEvent{Kind: model.EventEnterPressed})
	case KeyEscape:
		return m.apply(model.AppEvent{Kind: model.EventCancelActionMenu})
	}
	return nil
}

// handleLogViewKey scrolls the viewport directly (it, not State, owns the
// true scroll offset) and forwards the same key to State for its
// AutoScroll bookkeeping.
func (m *Model) handleLogViewKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()
	switch key {
	case KeySelectPrev, KeySelectPrevK:
		m.viewport.LineUp(1)
		cmd := m.apply(model.AppEvent{Kind: model.EventScrollUp})
		return cmd, true
	case KeySelectNext, KeySelectNextJ:
		m.viewport.LineDown(1)
		if m.viewport.AtBottom() {
			m.state.ReengageAutoScroll()
		}
		cmd := m.apply(model.AppEvent{Kind: model.EventScrollDown})
		return cmd, true
	case KeyEscape, KeyEscapeAlt:
		return m.apply(model.AppEvent{Kind: model.EventExitLogView}), true
	case KeyOpenDozzle:
		return m.apply(model.AppEvent{Kind: model.EventOpenDozzle}), true
	case KeyQuit, KeyQuitAlt:
		return m.apply(model.AppEvent{Kind: model.EventQuit}), true
	}
	return nil, false
}

// translateSearchKey maps a key press in SearchMode into the append/delete
// event the search box expects; unrecognized key types are ignored so
// modifier-only presses don't corrupt the query.
func translateSearchKey(msg tea.KeyMsg) (model.AppEvent, bool) {
	switch msg.Type {
	case tea.KeyEnter:
		return model.AppEvent{Kind: model.EventEnterPressed}, true
	case tea.KeyEsc:
		return model.AppEvent{Kind: model.EventCancelActionMenu}, true
	case tea.KeyBackspace:
		return model.AppEvent{Kind: model.EventSearchKeyEvent, SearchIsDel: true}, true
	case tea.KeySpace:
		return model.AppEvent{Kind: model.EventSearchKeyEvent, SearchRune: ' '}, true
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return model.AppEvent{}, false
		}
		return model.AppEvent{Kind: model.EventSearchKeyEvent, SearchRune: msg.Runes[0]}, true
	}
	return model.AppEvent{}, false
}
