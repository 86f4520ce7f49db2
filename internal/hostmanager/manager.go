// Package hostmanager owns one Manager per configured Docker host: it
// pings and lists containers at startup, subscribes to the host's event
// stream with bounded backoff, and spawns per-container stats workers —
// translating all of it into model.AppEvent values published on the shared
// MPSC channel the dispatcher drains. Grounded on
// internal/monitor/collector.go's channel-based streaming-collector shape.
package hostmanager

import (
	"context"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/events"

	"dtop/internal/dockerclient"
	"dtop/internal/logger"
	"dtop/internal/model"
)

const (
	backoffInitial = 1 * time.Second
	backoffMax     = 30 * time.Second
)

// Manager owns the connection to a single Docker daemon.
type Manager struct {
	hostId    model.HostId
	client    dockerclient.Client
	filterKV  map[string][]string
	dozzleURL string
	events    chan<- model.AppEvent
	log       logger.Logger

	statCancels map[string]context.CancelFunc
}

// New constructs a Manager for one host. The caller retains ownership of
// client and is responsible for closing it when the manager's Run returns.
func New(hostId model.HostId, client dockerclient.Client, filterKV map[string][]string, dozzleURL string, events chan<- model.AppEvent, log logger.Logger) *Manager {
	return &Manager{
		hostId:      hostId,
		client:      client,
		filterKV:    filterKV,
		dozzleURL:   dozzleURL,
		events:      events,
		log:         log,
		statCancels: make(map[string]context.CancelFunc),
	}
}

// Run performs startup (ping + initial list) then subscribes to the event
// stream with bounded exponential backoff until ctx is cancelled. A startup
// failure is a non-fatal diagnostic: Run returns without emitting anything
// further for this host, letting other hosts continue.
func (m *Manager) Run(ctx context.Context) {
	if err := m.client.Ping(ctx); err != nil {
		m.log.Warn("host %s: ping failed: %v", m.hostId, err)
		return
	}

	if err := m.listInitial(ctx); err != nil {
		m.log.Warn("host %s: initial list failed: %v", m.hostId, err)
		return
	}

	backoff := backoffInitial
	for {
		select {
		case <-ctx.Done():
			m.cancelAllStats()
			return
		default:
		}

		err := m.subscribeEvents(ctx)
		if ctx.Err() != nil {
			m.cancelAllStats()
			return
		}
		if err != nil {
			m.log.Warn("host %s: event stream: %v", m.hostId, err)
		}

		m.emitHostDisconnected()

		select {
		case <-ctx.Done():
			m.cancelAllStats()
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > backoffMax {
			backoff = backoffMax
		}
	}
}

func (m *Manager) listInitial(ctx context.Context) error {
	filterResult := dockerclient.BuildListingFilters(m.filterKV)
	summaries, err := m.client.ListContainers(ctx, filterResult)
	if err != nil {
		return err
	}

	containers := make([]model.Container, 0, len(summaries))
	for _, s := range summaries {
		c := m.toContainer(s.ID, s.Names, s.State, s.Status, time.Unix(s.Created, 0))
		containers = append(containers, c)
		m.spawnStatsWorker(ctx, c.Key.ContainerId)
	}

	m.publish(model.AppEvent{
		Kind:       model.EventInitialContainerList,
		HostId:     m.hostId,
		Containers: containers,
	})
	return nil
}

func (m *Manager) toContainer(id string, names []string, state, status string, created time.Time) model.Container {
	name := id
	if len(names) > 0 {
		name = strings.TrimPrefix(names[0], "/")
	}
	key := model.ContainerKey{HostId: m.hostId, ContainerId: model.ShortId(id)}
	c := model.Container{
		Key:     key,
		Name:    name,
		State:   model.ParseContainerState(state),
		Created: created,
		HostId:  m.hostId,
	}
	if h, ok := model.ParseHealthStatus(status); ok {
		c.Health = h
		c.HasHealth = true
	}
	if m.dozzleURL != "" {
		c.DozzleURL = m.dozzleURL
	}
	return c
}

func (m *Manager) subscribeEvents(ctx context.Context) error {
	filterResult := dockerclient.BuildEventsFilters(m.filterKV)
	if len(filterResult.Dropped) > 0 {
		m.log.Info("host %s: filters unsupported by events API dropped: %s", m.hostId, strings.Join(filterResult.Dropped, ", "))
	}

	msgs, errs := m.client.Events(ctx, filterResult.Args)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			return err
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			m.handleEvent(ctx, msg)
		}
	}
}

func (m *Manager) handleEvent(ctx context.Context, msg events.Message) {
	key := model.ContainerKey{HostId: m.hostId, ContainerId: model.ShortId(msg.Actor.ID)}

	switch msg.Action {
	case events.ActionStart:
		info, err := m.client.InspectContainer(ctx, msg.Actor.ID)
		if err != nil {
			m.log.Warn("host %s: inspect %s: %v", m.hostId, key.ContainerId, err)
			return
		}
		c := m.containerFromInspect(info)
		m.spawnStatsWorker(ctx, key.ContainerId)
		m.publish(model.AppEvent{Kind: model.EventContainerCreated, HostId: m.hostId, Key: key, Container: c})

	case events.ActionDie, events.ActionDestroy, events.ActionStop, events.ActionKill:
		m.cancelStatsWorker(key.ContainerId)
		m.publish(model.AppEvent{Kind: model.EventContainerDestroyed, HostId: m.hostId, Key: key})

	case "health_status: healthy", "health_status: unhealthy", "health_status: starting":
		h, ok := model.ParseHealthStatus(string(msg.Action))
		if !ok {
			return
		}
		m.publish(model.AppEvent{Kind: model.EventContainerHealthChanged, HostId: m.hostId, Key: key, Health: h, HasHealth: true})
	}
}

func (m *Manager) containerFromInspect(info container.InspectResponse) model.Container {
	id := info.ID
	key := model.ContainerKey{HostId: m.hostId, ContainerId: model.ShortId(id)}
	c := model.Container{
		Key:    key,
		Name:   strings.TrimPrefix(info.Name, "/"),
		State:  model.ParseContainerState(info.State.Status),
		HostId: m.hostId,
	}
	if created, err := time.Parse(time.RFC3339Nano, info.Created); err == nil {
		c.Created = created
	}
	if info.State.Health != nil {
		if h, ok := model.ParseHealthStatus(info.State.Health.Status); ok {
			c.Health = h
			c.HasHealth = true
		}
	}
	if m.dozzleURL != "" {
		c.DozzleURL = m.dozzleURL
	}
	return c
}

// emitHostDisconnected removes all known containers for this host, per
// connection loss destroys every tracked container before
// backoff resumes.
func (m *Manager) emitHostDisconnected() {
	m.cancelAllStats()
	m.publish(model.AppEvent{Kind: model.EventHostDisconnected, HostId: m.hostId})
}

// publish retries indefinitely for lifecycle events (never dropped, per the
// backpressure rules); non-lifecycle events are not emitted
// from this file.
func (m *Manager) publish(evt model.AppEvent) {
	m.events <- evt
}

func (m *Manager) spawnStatsWorker(ctx context.Context, containerId string) {
	m.cancelStatsWorker(containerId)
	workerCtx, cancel := context.WithCancel(ctx)
	m.statCancels[containerId] = cancel
	key := model.ContainerKey{HostId: m.hostId, ContainerId: containerId}
	go RunStatsWorker(workerCtx, m.client, key, m.events, m.log)
}

func (m *Manager) cancelStatsWorker(containerId string) {
	if cancel, ok := m.statCancels[containerId]; ok {
		cancel()
		delete(m.statCancels, containerId)
	}
}

func (m *Manager) cancelAllStats() {
	for id, cancel := range m.statCancels {
		cancel()
		delete(m.statCancels, id)
	}
}
