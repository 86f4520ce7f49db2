package tui

import (
	"context"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"

	"dtop/internal/action"
	"dtop/internal/hostmanager"
	"dtop/internal/logger"
	"dtop/internal/model"
	"dtop/internal/state"
)

// apply feeds evt to the state machine, carries out any Command it returns,
// and refreshes the log viewport if the view changed underneath it.
func (m *Model) apply(evt model.AppEvent) tea.Cmd {
	cmds := m.state.Apply(evt)
	m.syncViewport()

	var quit tea.Cmd
	for _, cmd := range cmds {
		if c := m.dispatch(cmd); c != nil {
			quit = c
		}
	}
	return quit
}

func (m *Model) dispatch(cmd state.Command) tea.Cmd {
	switch cmd.Kind {
	case state.CmdStartLogWorker:
		m.startLogWorker(cmd.Key)
	case state.CmdCancelLogWorker:
		m.cancelLogWorker()
	case state.CmdSpawnAction:
		m.spawnAction(cmd.Key, cmd.Action)
	case state.CmdOpenDozzle:
		openURL(cmd.URL, m.log)
	case state.CmdQuit:
		m.quitting = true
		return tea.Quit
	}
	return nil
}

func (m *Model) startLogWorker(key model.ContainerKey) {
	m.cancelLogWorker()
	client, ok := m.clients[key.HostId]
	if !ok {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.logCancel = cancel
	m.viewport.SetContent("")
	m.viewport.GotoTop()
	go hostmanager.RunLogWorker(ctx, client, key, m.events)
}

func (m *Model) cancelLogWorker() {
	if m.logCancel != nil {
		m.logCancel()
		m.logCancel = nil
	}
}

func (m *Model) spawnAction(key model.ContainerKey, act model.ContainerAction) {
	client, ok := m.clients[key.HostId]
	if !ok {
		return
	}
	go action.Execute(context.Background(), client, key, act, m.events)
}

// openURL launches the platform's default browser, matching the
// runtime.GOOS dispatch used elsewhere in the corpus for opening a
// container's port in a browser. Failures are logged, not surfaced in the
// dashboard, since bubbletea owns the whole terminal.
func openURL(url string, log logger.Logger) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		log.Warn("dozzle: unsupported OS %s, cannot open %s", runtime.GOOS, url)
		return
	}
	if err := cmd.Start(); err != nil {
		log.Warn("dozzle: failed to open %s: %v", url, err)
	}
}
