// Package tui wires the App State Machine to a bubbletea program: it drains
// the shared MPSC event channel, translates key presses into
// model.AppEvent values, feeds both to state.Apply, and carries out the
// Command values Apply returns (log workers, actions, opening Dozzle,
// quitting). Grounded on internal/monitor/model.go's Update-returns-Cmd
// shape, generalized from a single collector loop to the host-manager
// fan-in described by dtop's event model.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"dtop/internal/dockerclient"
	"dtop/internal/logger"
	"dtop/internal/model"
	"dtop/internal/render"
	"dtop/internal/state"
)

// logViewChrome is the number of lines View reserves for the header, log
// title, and footer around the scrollable viewport.
const logViewChrome = 6

// tickInterval drives the periodic re-render that expires stale action
// status lines even when no event arrives.
const tickInterval = 500 * time.Millisecond

// Config carries everything the dashboard needs to construct its Model.
type Config struct {
	InitialSort      model.SortState
	ShowAll          bool
	DozzleSuppressed bool
	HostCount        int
	Icons            render.IconSet

	// Events is the shared MPSC channel host managers, the log worker, and
	// the action executor all publish onto; the Model both drains it and
	// hands it to newly spawned workers as their output channel.
	Events chan model.AppEvent

	// Clients maps each configured host to the client used to spawn its log
	// workers and lifecycle actions. The Model does not own these and never
	// closes them.
	Clients map[model.HostId]dockerclient.Client

	Log logger.Logger
}

// Model is the bubbletea model wrapping the App State Machine.
type Model struct {
	state   *state.State
	events  chan model.AppEvent
	clients map[model.HostId]dockerclient.Client
	log     logger.Logger

	hostCount int
	icons     render.IconSet
	width     int
	height    int

	viewport  viewport.Model
	logCancel context.CancelFunc

	quitting bool
}

type appEventMsg model.AppEvent
type tickMsg time.Time

// New builds the Model. The caller owns starting the host managers that
// publish onto cfg.Events before or after handing this Model to a
// tea.Program — events queue harmlessly either way.
func New(cfg Config) *Model {
	return &Model{
		state:     state.New(cfg.InitialSort, cfg.ShowAll, cfg.DozzleSuppressed),
		events:    cfg.Events,
		clients:   cfg.Clients,
		log:       cfg.Log,
		hostCount: cfg.HostCount,
		icons:     cfg.Icons,
		viewport:  viewport.New(0, 0),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), tickCmd())
}

func waitForEvent(ch <-chan model.AppEvent) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return nil
		}
		return appEventMsg(evt)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = m.width
		m.viewport.Height = max(m.height-logViewChrome, 1)
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case appEventMsg:
		cmd := m.apply(model.AppEvent(msg))
		return m, tea.Batch(cmd, waitForEvent(m.events))

	case tickMsg:
		m.state.ExpireActionStatuses(time.Now())
		return m, tickCmd()
	}
	return m, nil
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.state.View.Kind == model.ViewLogView && !m.state.ShowHelp {
		header := render.Header(m.state, m.hostCount, m.width)
		title := render.LogTitle(m.state)
		footer := render.Footer(m.state)
		return header + "\n\n" + title + "\n\n" + m.viewport.View() + "\n" + footer
	}
	if m.state.ShowHelp {
		return render.HelpOverlay(m.width, m.height)
	}
	return render.View(m.state, m.hostCount, m.width, m.height, time.Now(), m.icons)
}

// syncViewport refreshes the log viewport's content from state, keeping it
// pinned to the tail while AutoScroll is on.
func (m *Model) syncViewport() {
	if m.state.View.Kind != model.ViewLogView {
		return
	}
	m.viewport.SetContent(render.LogContent(m.state))
	if m.state.AutoScroll {
		m.viewport.GotoBottom()
	}
}
