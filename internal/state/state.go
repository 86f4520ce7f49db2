// Package state implements the App State Machine: the single writer of all
// container, view, sort, search, and log-buffer state. It runs entirely on
// the main loop (no locks) and reacts to model.AppEvent
// values by mutating itself and, where a side effect is required (spawning
// a log worker or an action task, opening Dozzle), returning a Command for
// the dispatcher to carry out. Grounded on internal/monitor/model.go's
// Update-returns-Cmd shape.
package state

import (
	"strings"
	"time"

	"dtop/internal/model"
)

// resortThrottle is the minimum interval between re-sorts triggered purely
// by ContainerStat pressure.
const resortThrottle = 3 * time.Second

// actionStatusTTL is how long a transient action status line stays visible.
const actionStatusTTL = 3 * time.Second

// ActionStatus is a transient per-container status line shown after an
// action event, until it expires or a matching Docker event supersedes it.
type ActionStatus struct {
	Action    model.ContainerAction
	Err       string
	Succeeded bool
	At        time.Time
}

// containerEntry pairs a Container with its insertion sequence, so equal
// sort keys retain insertion order.
type containerEntry struct {
	container model.Container
	seq       uint64
}

// State is the App State Machine.
type State struct {
	containers map[model.ContainerKey]containerEntry
	nextSeq    uint64

	View  model.ViewState
	Sort  model.SortState
	Search string

	ShowAll bool
	ShowHelp bool

	Selected int

	Log        []model.LogEntry
	AutoScroll bool

	ActionStatuses map[model.ContainerKey]ActionStatus

	rows        []model.ContainerKey
	rowsDirty   bool
	forceResort bool
	lastSort    time.Time

	DozzleSuppressed bool
}

// New builds a State with the given initial sort and show-all defaults,
// per the initial-state rule.
func New(initialSort model.SortState, showAll bool, dozzleSuppressed bool) *State {
	return &State{
		containers:       make(map[model.ContainerKey]containerEntry),
		View:             model.ContainerListView(),
		Sort:             initialSort,
		ShowAll:          showAll,
		ActionStatuses:   make(map[model.ContainerKey]ActionStatus),
		rowsDirty:        true,
		DozzleSuppressed: dozzleSuppressed,
	}
}

// CommandKind discriminates the side effects Apply asks the dispatcher to
// perform. The state machine never performs I/O itself.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdStartLogWorker
	CmdCancelLogWorker
	CmdSpawnAction
	CmdOpenDozzle
	CmdQuit
)

// Command is a side effect requested by Apply.
type Command struct {
	Kind   CommandKind
	Key    model.ContainerKey
	Action model.ContainerAction
	URL    string
}

// Container looks up a container by key.
func (s *State) Container(key model.ContainerKey) (model.Container, bool) {
	e, ok := s.containers[key]
	return e.container, ok
}

// Len returns the number of tracked containers (regardless of filtering).
func (s *State) Len() int { return len(s.containers) }

func (s *State) insert(c model.Container) {
	existing, ok := s.containers[c.Key]
	seq := s.nextSeq
	if ok {
		seq = existing.seq
	} else {
		s.nextSeq++
	}
	s.containers[c.Key] = containerEntry{container: c, seq: seq}
}

func (s *State) remove(key model.ContainerKey) {
	delete(s.containers, key)
	delete(s.ActionStatuses, key)
}

func (s *State) markDirty(force bool) {
	s.rowsDirty = true
	if force {
		s.forceResort = true
	}
}

// Apply feeds one event to the state machine in arrival order and returns
// any side-effect commands the dispatcher must carry out.
func (s *State) Apply(evt model.AppEvent) []Command {
	switch evt.Kind {
	case model.EventInitialContainerList:
		return s.applyInitialList(evt)
	case model.EventContainerCreated:
		return s.applyCreated(evt)
	case model.EventContainerDestroyed:
		return s.applyDestroyed(evt)
	case model.EventHostDisconnected:
		return s.applyHostDisconnected(evt)
	case model.EventContainerStat:
		return s.applyStat(evt)
	case model.EventContainerHealthChanged:
		return s.applyHealthChanged(evt)

	case model.EventToggleShowAll:
		s.ShowAll = !s.ShowAll
		s.markDirty(true)
		return nil
	case model.EventCycleSortField:
		s.cycleSortField()
		s.markDirty(true)
		return nil
	case model.EventSetSortField:
		s.setSortField(evt.SortField)
		s.markDirty(true)
		return nil

	case model.EventEnterSearchMode:
		s.Search = ""
		s.View = model.SearchModeView()
		s.markDirty(true)
		return nil
	case model.EventSearchKeyEvent:
		s.applySearchKey(evt)
		s.markDirty(true)
		return nil

	case model.EventCancelActionMenu:
		s.View = model.ContainerListView()
		return nil
	case model.EventExitLogView:
		return s.exitLogView()

	case model.EventShowLogView:
		return s.enterLogView()
	case model.EventLogLine:
		s.applyLogLine(evt)
		return nil

	case model.EventScrollUp:
		s.scroll(-1)
		return nil
	case model.EventScrollDown:
		s.scroll(1)
		return nil

	case model.EventSelectPrevious:
		s.movePrevious()
		return nil
	case model.EventSelectNext:
		s.moveNext()
		return nil

	case model.EventSelectActionUp:
		s.moveActionSelection(-1)
		return nil
	case model.EventSelectActionDown:
		s.moveActionSelection(1)
		return nil

	case model.EventEnterPressed:
		return s.applyEnterPressed()

	case model.EventOpenDozzle:
		return s.applyOpenDozzle()

	case model.EventToggleHelp:
		s.ShowHelp = !s.ShowHelp
		return nil

	case model.EventActionInProgress, model.EventActionSuccess, model.EventActionError:
		s.applyActionEvent(evt)
		return nil

	case model.EventQuit:
		return []Command{{Kind: CmdQuit}}
	}
	return nil
}

func (s *State) applyInitialList(evt model.AppEvent) []Command {
	wanted := make(map[model.ContainerKey]bool, len(evt.Containers))
	for _, c := range evt.Containers {
		wanted[c.Key] = true
	}
	for key := range s.containers {
		if key.HostId == evt.HostId && !wanted[key] {
			s.remove(key)
		}
	}
	for _, c := range evt.Containers {
		s.insert(c)
	}
	s.retargetViewIfMissing()
	s.markDirty(true)
	return nil
}

func (s *State) applyCreated(evt model.AppEvent) []Command {
	s.insert(evt.Container)
	s.markDirty(true)
	return nil
}

func (s *State) applyDestroyed(evt model.AppEvent) []Command {
	s.remove(evt.Key)
	s.markDirty(true)
	return s.retargetIfViewing(evt.Key)
}

func (s *State) applyHostDisconnected(evt model.AppEvent) []Command {
	var cmds []Command
	for key := range s.containers {
		if key.HostId == evt.HostId {
			s.remove(key)
			cmds = append(cmds, s.retargetIfViewing(key)...)
		}
	}
	s.markDirty(true)
	return cmds
}

func (s *State) applyStat(evt model.AppEvent) []Command {
	entry, ok := s.containers[evt.Key]
	if !ok {
		return nil
	}
	entry.container.Stats = evt.Stats
	s.containers[evt.Key] = entry
	s.rowsDirty = true // throttled resort decides whether to actually recompute
	return nil
}

func (s *State) applyHealthChanged(evt model.AppEvent) []Command {
	entry, ok := s.containers[evt.Key]
	if !ok {
		return nil
	}
	entry.container.Health = evt.Health
	entry.container.HasHealth = evt.HasHealth
	s.containers[evt.Key] = entry
	return nil
}

// retargetIfViewing returns to ContainerList (and cancels the log worker)
// if the current view targets key.
func (s *State) retargetIfViewing(key model.ContainerKey) []Command {
	if (s.View.Kind == model.ViewLogView || s.View.Kind == model.ViewActionMenu) && s.View.Target == key {
		wasLog := s.View.Kind == model.ViewLogView
		s.View = model.ContainerListView()
		if wasLog {
			s.Log = nil
			return []Command{{Kind: CmdCancelLogWorker}}
		}
	}
	return nil
}

func (s *State) retargetViewIfMissing() {
	if s.View.Kind == model.ViewLogView || s.View.Kind == model.ViewActionMenu {
		if _, ok := s.containers[s.View.Target]; !ok {
			s.View = model.ContainerListView()
		}
	}
}

func (s *State) applySearchKey(evt model.AppEvent) {
	if evt.SearchIsDel {
		if len(s.Search) > 0 {
			s.Search = s.Search[:len(s.Search)-1]
		}
		return
	}
	s.Search += string(evt.SearchRune)
}

func matchesSearch(c model.Container, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(c.Name), q) {
		return true
	}
	return strings.HasPrefix(strings.ToLower(c.Key.ContainerId), q)
}

func (s *State) exitLogView() []Command {
	s.View = model.ContainerListView()
	s.Log = nil
	return []Command{{Kind: CmdCancelLogWorker}}
}

func (s *State) enterLogView() []Command {
	rows := s.Rows()
	if s.Selected < 0 || s.Selected >= len(rows) {
		return nil
	}
	key := rows[s.Selected]
	s.View = model.LogViewOf(key)
	s.Log = nil
	s.AutoScroll = true
	return []Command{{Kind: CmdStartLogWorker, Key: key}}
}

func (s *State) applyLogLine(evt model.AppEvent) {
	if s.View.Kind != model.ViewLogView || s.View.Target != evt.Key {
		return
	}
	s.Log = append(s.Log, evt.LogEntry)
}

func (s *State) scroll(delta int) {
	if s.View.Kind != model.ViewLogView {
		return
	}
	if delta < 0 {
		s.AutoScroll = false
	} else if s.AutoScroll {
		return
	}
	// Reaching the tail re-engages auto-scroll; the renderer/viewport is the
	// one that knows the true scroll offset, so it calls ReengageAutoScroll
	// once it observes the tail.
}

// ReengageAutoScroll is called by the renderer/viewport once a downward
// scroll reaches the tail of the log buffer.
func (s *State) ReengageAutoScroll() { s.AutoScroll = true }

func (s *State) movePrevious() {
	if s.View.Kind != model.ViewContainerList && s.View.Kind != model.ViewSearchMode {
		return
	}
	if s.Selected > 0 {
		s.Selected--
	}
}

func (s *State) moveNext() {
	if s.View.Kind != model.ViewContainerList && s.View.Kind != model.ViewSearchMode {
		return
	}
	rows := s.Rows()
	if s.Selected < len(rows)-1 {
		s.Selected++
	}
}

func (s *State) moveActionSelection(delta int) {
	if s.View.Kind != model.ViewActionMenu {
		return
	}
	c, ok := s.Container(s.View.Target)
	if !ok {
		return
	}
	actions := model.AvailableActions(c.State)
	if len(actions) == 0 {
		return
	}
	next := s.View.ActionSelected + delta
	if next < 0 {
		next = 0
	}
	if next >= len(actions) {
		next = len(actions) - 1
	}
	s.View.ActionSelected = next
}

func (s *State) applyEnterPressed() []Command {
	switch s.View.Kind {
	case model.ViewContainerList:
		rows := s.Rows()
		if s.Selected < 0 || s.Selected >= len(rows) {
			return nil
		}
		s.View = model.ActionMenuOf(rows[s.Selected], 0)
		return nil

	case model.ViewActionMenu:
		c, ok := s.Container(s.View.Target)
		if !ok {
			s.View = model.ContainerListView()
			return nil
		}
		actions := model.AvailableActions(c.State)
		if len(actions) == 0 {
			s.View = model.ContainerListView()
			return nil
		}
		idx := s.View.ActionSelected
		if idx < 0 || idx >= len(actions) {
			idx = 0
		}
		act := actions[idx]
		key := s.View.Target
		s.View = model.ContainerListView()
		return []Command{{Kind: CmdSpawnAction, Key: key, Action: act}}

	case model.ViewSearchMode:
		s.View = model.ContainerListView()
		return nil
	}
	return nil
}

func (s *State) applyOpenDozzle() []Command {
	if s.DozzleSuppressed {
		return nil
	}
	if s.View.Kind != model.ViewContainerList && s.View.Kind != model.ViewLogView && s.View.Kind != model.ViewActionMenu {
		return nil
	}
	rows := s.Rows()
	var key model.ContainerKey
	if s.View.Kind == model.ViewContainerList {
		if s.Selected < 0 || s.Selected >= len(rows) {
			return nil
		}
		key = rows[s.Selected]
	} else {
		key = s.View.Target
	}
	c, ok := s.Container(key)
	if !ok || c.DozzleURL == "" {
		return nil
	}
	return []Command{{Kind: CmdOpenDozzle, URL: c.DozzleURL + "/container/" + c.Key.ContainerId}}
}

func (s *State) applyActionEvent(evt model.AppEvent) {
	switch evt.Kind {
	case model.EventActionInProgress:
		s.ActionStatuses[evt.Key] = ActionStatus{Action: evt.Action, At: time.Now()}
	case model.EventActionSuccess:
		s.ActionStatuses[evt.Key] = ActionStatus{Action: evt.Action, Succeeded: true, At: time.Now()}
	case model.EventActionError:
		s.ActionStatuses[evt.Key] = ActionStatus{Action: evt.Action, Err: evt.ActionMessage, At: time.Now()}
	}
}

// ExpireActionStatuses drops action status lines older than the display
// window; called once per render tick.
func (s *State) ExpireActionStatuses(now time.Time) {
	for key, st := range s.ActionStatuses {
		if now.Sub(st.At) > actionStatusTTL {
			delete(s.ActionStatuses, key)
		}
	}
}
