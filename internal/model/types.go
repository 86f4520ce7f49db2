// Package model defines the shared data types that flow between the host
// managers, the app state machine, and the renderer: containers, stats,
// sort/view state, and the events that carry state transitions.
package model

import (
	"strings"
	"time"
)

// HistorySize is the fixed capacity of the cpu/memory sparkline buffers (H).
const HistorySize = 20

// HistoryBucket is the wall-clock bucket width, in seconds, used to decide
// when a stat sample advances the sparkline history rather than only the
// instantaneous percent. Decouples sparkline cadence from the Docker
// stats-stream sample rate.
const HistoryBucket = 2

// ContainerState is the lifecycle state Docker reports for a container.
type ContainerState int

const (
	StateUnknown ContainerState = iota
	StateCreated
	StateRestarting
	StateRunning
	StateRemoving
	StatePaused
	StateExited
	StateDead
)

func (s ContainerState) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRestarting:
		return "restarting"
	case StateRunning:
		return "running"
	case StateRemoving:
		return "removing"
	case StatePaused:
		return "paused"
	case StateExited:
		return "exited"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// ParseContainerState parses Docker's raw state string leniently, by
// substring containment rather than exact match, matching the original
// implementation's tolerance for API drift across daemon versions.
func ParseContainerState(raw string) ContainerState {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "restarting"):
		return StateRestarting
	case strings.Contains(s, "running"):
		return StateRunning
	case strings.Contains(s, "removing"):
		return StateRemoving
	case strings.Contains(s, "paused"):
		return StatePaused
	case strings.Contains(s, "created"):
		return StateCreated
	case strings.Contains(s, "exited"):
		return StateExited
	case strings.Contains(s, "dead"):
		return StateDead
	default:
		return StateUnknown
	}
}

// HealthStatus is the optional Docker healthcheck status of a container.
type HealthStatus int

const (
	HealthNone HealthStatus = iota
	HealthStarting
	HealthHealthy
	HealthUnhealthy
)

func (h HealthStatus) String() string {
	switch h {
	case HealthStarting:
		return "starting"
	case HealthHealthy:
		return "healthy"
	case HealthUnhealthy:
		return "unhealthy"
	default:
		return ""
	}
}

// ParseHealthStatus parses Docker's raw health string leniently.
// "unhealthy" is checked before "healthy" since the former contains the
// latter as a substring.
func ParseHealthStatus(raw string) (HealthStatus, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return HealthNone, false
	case strings.Contains(s, "unhealthy"):
		return HealthUnhealthy, true
	case strings.Contains(s, "healthy"):
		return HealthHealthy, true
	case strings.Contains(s, "starting"):
		return HealthStarting, true
	default:
		return HealthNone, false
	}
}

// ContainerAction is a lifecycle command the Action Executor can perform.
type ContainerAction int

const (
	ActionStart ContainerAction = iota
	ActionStop
	ActionRestart
	ActionRemove
	ActionPause
	ActionUnpause
)

func (a ContainerAction) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionStop:
		return "stop"
	case ActionRestart:
		return "restart"
	case ActionRemove:
		return "remove"
	case ActionPause:
		return "pause"
	case ActionUnpause:
		return "unpause"
	default:
		return "unknown"
	}
}

// AvailableActions returns the actions valid for a container currently in
// the given state, per spec's precondition table plus the Pause/Unpause
// supplement.
func AvailableActions(s ContainerState) []ContainerAction {
	var actions []ContainerAction
	switch s {
	case StateExited, StateCreated, StateDead:
		actions = append(actions, ActionStart)
	case StateRunning:
		actions = append(actions, ActionStop, ActionRestart, ActionPause)
	case StatePaused:
		actions = append(actions, ActionStop, ActionUnpause)
	}
	if s != StateRestarting && s != StateRemoving {
		actions = append(actions, ActionRemove)
	}
	return actions
}

// HostId is a stable, canonicalized identifier for a Docker daemon target.
type HostId string

// ContainerKey uniquely identifies a container within a run.
type ContainerKey struct {
	HostId      HostId
	ContainerId string
}

// ShortId truncates a container ID to the 12 hex characters used for
// display and lookup.
func ShortId(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// Container is the mapping-value keyed by ContainerKey.
type Container struct {
	Key       ContainerKey
	Name      string
	State     ContainerState
	Health    HealthStatus
	HasHealth bool
	Created   time.Time
	Stats     ContainerStats
	HostId    HostId
	DozzleURL string
}

// RawSample is the previous cpu/system/net totals used to compute deltas
// for the next stats sample.
type RawSample struct {
	CPUTotal    uint64
	SystemTotal uint64
	NetRxBytes  uint64
	NetTxBytes  uint64
	Timestamp   time.Time
	Seeded      bool
}

// ContainerStats holds smoothed resource metrics and bounded history.
type ContainerStats struct {
	CPUPercent    float64
	MemoryPercent float64
	MemoryUsed    uint64
	MemoryLimit   uint64
	NetRxRate     float64
	NetTxRate     float64

	CPUHistory    []float64
	MemoryHistory []float64
	SampleCount   uint64

	lastBucket int64
	LastRaw    RawSample

	// emaSeeded tracks whether cpu/mem/net EMAs have received a first value.
	emaSeeded bool
}

// PushHistory appends the smoothed cpu/memory percentages to the bounded
// history buffers, gated by wall-clock bucket advance so sparkline
// resolution is decoupled from the raw sample rate. sample_count increments
// on every call regardless of whether the bucket advanced.
func (cs *ContainerStats) PushHistory(now time.Time, cpu, mem float64) {
	cs.SampleCount++
	bucket := now.Unix() / HistoryBucket
	if cs.SampleCount > 1 && bucket == cs.lastBucket {
		return
	}
	cs.lastBucket = bucket
	cs.CPUHistory = appendBounded(cs.CPUHistory, cpu, HistorySize)
	cs.MemoryHistory = appendBounded(cs.MemoryHistory, mem, HistorySize)
}

func appendBounded(seq []float64, v float64, cap int) []float64 {
	seq = append(seq, v)
	if len(seq) > cap {
		seq = seq[len(seq)-cap:]
	}
	return seq
}

// EMAAlpha is the exponential-moving-average smoothing factor.
const EMAAlpha = 0.3

// Smooth applies EMA to a raw value against the previous smoothed value.
// The first call for a given ContainerStats bypasses smoothing.
func (cs *ContainerStats) smooth(prev, raw float64, seeded bool) float64 {
	if !seeded {
		return raw
	}
	return EMAAlpha*raw + (1-EMAAlpha)*prev
}

// ApplySample computes CPU%, memory%, and network rates from a raw sample
// against the previous raw sample, applies EMA smoothing, and pushes the
// smoothed cpu/memory values onto the bounded history. The first sample for
// a container only seeds LastRaw and produces no metric change.
func (cs *ContainerStats) ApplySample(now time.Time, cpuTotal, systemTotal uint64, onlineCPUs int, memUsed, memLimit uint64, netRxBytes, netTxBytes uint64) {
	prev := cs.LastRaw
	cs.LastRaw = RawSample{
		CPUTotal:    cpuTotal,
		SystemTotal: systemTotal,
		NetRxBytes:  netRxBytes,
		NetTxBytes:  netTxBytes,
		Timestamp:   now,
		Seeded:      true,
	}
	cs.MemoryUsed = memUsed
	cs.MemoryLimit = memLimit

	if !prev.Seeded {
		return
	}

	cpuDelta := int64(cpuTotal) - int64(prev.CPUTotal)
	sysDelta := int64(systemTotal) - int64(prev.SystemTotal)
	if cpuDelta < 0 {
		cpuDelta = 0
	}
	if sysDelta < 1 {
		sysDelta = 1
	}
	if onlineCPUs < 1 {
		onlineCPUs = 1
	}
	rawCPU := float64(cpuDelta) / float64(sysDelta) * float64(onlineCPUs) * 100

	var rawMem float64
	if memLimit > 0 {
		rawMem = float64(memUsed) / float64(memLimit) * 100
	}

	elapsed := now.Sub(prev.Timestamp).Seconds()
	var rawRx, rawTx float64
	if elapsed > 0 {
		if netRxBytes >= prev.NetRxBytes {
			rawRx = float64(netRxBytes-prev.NetRxBytes) / elapsed
		}
		if netTxBytes >= prev.NetTxBytes {
			rawTx = float64(netTxBytes-prev.NetTxBytes) / elapsed
		}
	}

	seeded := cs.emaSeeded
	cs.CPUPercent = cs.smooth(cs.CPUPercent, rawCPU, seeded)
	cs.MemoryPercent = cs.smooth(cs.MemoryPercent, rawMem, seeded)
	cs.NetRxRate = cs.smooth(cs.NetRxRate, rawRx, seeded)
	cs.NetTxRate = cs.smooth(cs.NetTxRate, rawTx, seeded)
	cs.emaSeeded = true

	cs.PushHistory(now, cs.CPUPercent, cs.MemoryPercent)
}

// LogEntry is one ANSI-decoded, timestamp-parsed log line.
type LogEntry struct {
	Timestamp time.Time
	Styled    string
}

// SortField is the column the container list is ordered by.
type SortField int

const (
	SortUptime SortField = iota
	SortName
	SortCPU
	SortMemory
)

func (f SortField) String() string {
	switch f {
	case SortUptime:
		return "uptime"
	case SortName:
		return "name"
	case SortCPU:
		return "cpu"
	case SortMemory:
		return "memory"
	default:
		return "uptime"
	}
}

// ParseSortField accepts full names and single-letter synonyms.
func ParseSortField(s string) (SortField, bool) {
	switch strings.ToLower(s) {
	case "uptime", "u":
		return SortUptime, true
	case "name", "n":
		return SortName, true
	case "cpu", "c":
		return SortCPU, true
	case "memory", "m":
		return SortMemory, true
	default:
		return SortUptime, false
	}
}

// SortDirection is the ordering direction for the active SortField.
type SortDirection int

const (
	Asc SortDirection = iota
	Desc
)

// DefaultDirection returns each field's default direction per spec.
func DefaultDirection(f SortField) SortDirection {
	switch f {
	case SortName:
		return Asc
	default:
		return Desc
	}
}

// SortState is the active sort field and direction.
type SortState struct {
	Field     SortField
	Direction SortDirection
}

// ViewKind discriminates the mutually-exclusive top-level views.
type ViewKind int

const (
	ViewContainerList ViewKind = iota
	ViewLogView
	ViewActionMenu
	ViewSearchMode
)

// ViewState is exactly one of ContainerList, LogView(key), ActionMenu(key,
// selected index), or SearchMode.
type ViewState struct {
	Kind           ViewKind
	Target         ContainerKey
	ActionSelected int
}

func ContainerListView() ViewState { return ViewState{Kind: ViewContainerList} }
func LogViewOf(key ContainerKey) ViewState {
	return ViewState{Kind: ViewLogView, Target: key}
}
func ActionMenuOf(key ContainerKey, selected int) ViewState {
	return ViewState{Kind: ViewActionMenu, Target: key, ActionSelected: selected}
}
func SearchModeView() ViewState { return ViewState{Kind: ViewSearchMode} }
