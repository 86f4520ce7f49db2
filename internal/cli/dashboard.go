package cli

import (
	"context"
	"os"
	"strings"

	"dtop/internal/config"
	"dtop/internal/dockerclient"
	"dtop/internal/errors"
	"dtop/internal/hostmanager"
	"dtop/internal/logger"
	"dtop/internal/model"
	"dtop/internal/render"
	"dtop/internal/tui"
)

// dashboardOptions carries the raw CLI flags into runDashboard, along with
// which of them were explicitly passed (cobra can't tell "" apart from
// "not set" for plain string/slice flags).
type dashboardOptions struct {
	hosts    []string
	hostsSet bool
	filters  []string
	sort     string
	sortSet  bool
	icons    string
	iconsSet bool
	all      bool
}

// eventBufferSize sizes the shared MPSC channel generously enough that a
// burst of Docker events across many hosts never blocks a host manager on
// the dispatcher keeping up.
const eventBufferSize = 256

// runDashboard loads and resolves config, connects to every configured
// host, and runs the bubbletea dashboard until the user quits. Host managers
// that exit do not end the dashboard.
func runDashboard(opts dashboardOptions) error {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to load config", "Check your config file's YAML syntax.")
	}

	resolved := config.Resolve(cfg, opts.hosts, opts.hostsSet, opts.filters, opts.sort, opts.sortSet, opts.icons, opts.iconsSet, opts.all)

	sortField, ok := model.ParseSortField(resolved.Sort)
	if !ok {
		return errors.New(errors.ErrConfig,
			"Invalid sort field: "+resolved.Sort,
			"Use one of uptime, name, cpu, memory.")
	}

	log, err := logger.NewFileLogger("dashboard")
	if err != nil {
		log = logger.Noop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	events := make(chan model.AppEvent, eventBufferSize)
	clients := make(map[model.HostId]dockerclient.Client)

	for _, h := range resolved.Hosts {
		client, hostId, err := dockerclient.New(ctx, h.Host)
		if err != nil {
			log.Warn("host %s: connect failed: %v", h.Host, err)
			continue
		}
		if _, dup := clients[hostId]; dup {
			client.Close()
			cancel()
			return errors.New(errors.ErrConfig,
				"Duplicate host id: "+string(hostId),
				"Give each --host / config host a distinct address so it maps to a unique id.")
		}
		clients[hostId] = client
		defer client.Close()

		mgr := hostmanager.New(hostId, client, dockerclient.ParseFilterSpecs(h.Filter), h.Dozzle, events, log)
		go mgr.Run(ctx)
	}

	if len(clients) == 0 {
		cancel()
		return errors.New(errors.ErrTransport,
			"Could not connect to any configured host",
			"Check that Docker is running and reachable for at least one host.")
	}

	program := tui.NewProgram(tui.Config{
		InitialSort:      model.SortState{Field: sortField, Direction: model.DefaultDirection(sortField)},
		ShowAll:          resolved.All,
		DozzleSuppressed: dozzleSuppressed(),
		HostCount:        len(clients),
		Icons:            render.ParseIconSet(resolved.Icons),
		Events:           events,
		Clients:          clients,
		Log:              log,
	})

	_, err = program.Run()
	cancel()
	return err
}

// dozzleSuppressed reports whether the process is itself running over an
// SSH session: opening a browser on the far end of an SSH connection is
// never useful, so the "open in Dozzle" action is disabled.
func dozzleSuppressed() bool {
	for _, k := range []string{"SSH_CLIENT", "SSH_TTY", "SSH_CONNECTION"} {
		if strings.TrimSpace(os.Getenv(k)) != "" {
			return true
		}
	}
	return false
}
