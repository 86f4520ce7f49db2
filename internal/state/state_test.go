package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dtop/internal/model"
)

func newTestState() *State {
	return New(model.SortState{Field: model.SortUptime, Direction: model.Desc}, false, false)
}

func mkContainer(host, id, name string, st model.ContainerState, created time.Time) model.Container {
	return model.Container{
		Key:     model.ContainerKey{HostId: model.HostId(host), ContainerId: id},
		Name:    name,
		State:   st,
		Created: created,
		HostId:  model.HostId(host),
	}
}

// E1: single host, one container.
func TestE1SingleHostOneContainer(t *testing.T) {
	s := newTestState()
	t0 := time.Unix(1000, 0)
	s.Apply(model.AppEvent{
		Kind:   model.EventInitialContainerList,
		HostId: "local",
		Containers: []model.Container{
			mkContainer("local", "abc123def456", "nginx", model.StateRunning, t0),
		},
	})

	rows := s.Rows()
	require.Len(t, rows, 1)
	require.Equal(t, 0, s.Selected)

	key := model.ContainerKey{HostId: "local", ContainerId: "abc123def456"}
	var cs model.ContainerStats
	base := time.Unix(2000, 0)
	cs.PushHistory(base, 10.0, 0)
	s.Apply(model.AppEvent{Kind: model.EventContainerStat, Key: key, Stats: cs})
	cs.PushHistory(base.Add(model.HistoryBucket*time.Second), 10.0, 0)
	s.Apply(model.AppEvent{Kind: model.EventContainerStat, Key: key, Stats: cs})

	c, ok := s.Container(key)
	require.True(t, ok)
	require.Equal(t, []float64{10.0, 10.0}, c.Stats.CPUHistory)
	require.Equal(t, uint64(2), c.Stats.SampleCount)
}

// E2: multi-host sort by name ascending groups by host first.
func TestE2MultiHostSortGroupsByHost(t *testing.T) {
	s := newTestState()
	s.Sort = model.SortState{Field: model.SortName, Direction: model.Asc}
	now := time.Now()

	s.Apply(model.AppEvent{Kind: model.EventInitialContainerList, HostId: "a", Containers: []model.Container{
		mkContainer("a", "111111111111", "x", model.StateRunning, now),
		mkContainer("a", "222222222222", "y", model.StateRunning, now),
	}})
	s.Apply(model.AppEvent{Kind: model.EventInitialContainerList, HostId: "b", Containers: []model.Container{
		mkContainer("b", "333333333333", "x", model.StateRunning, now),
		mkContainer("b", "444444444444", "y", model.StateRunning, now),
	}})

	rows := s.Rows()
	require.Equal(t, []model.ContainerKey{
		{HostId: "a", ContainerId: "111111111111"},
		{HostId: "a", ContainerId: "222222222222"},
		{HostId: "b", ContainerId: "333333333333"},
		{HostId: "b", ContainerId: "444444444444"},
	}, rows)
}

// E3: destroying the container being viewed in LogView retargets to
// ContainerList and cancels the log worker.
func TestE3DestructionRetargetsView(t *testing.T) {
	s := newTestState()
	key := model.ContainerKey{HostId: "local", ContainerId: "abc123def456"}
	s.Apply(model.AppEvent{Kind: model.EventInitialContainerList, HostId: "local", Containers: []model.Container{
		mkContainer("local", "abc123def456", "nginx", model.StateRunning, time.Now()),
	}})
	cmds := s.Apply(model.AppEvent{Kind: model.EventShowLogView})
	require.Len(t, cmds, 1)
	require.Equal(t, CmdStartLogWorker, cmds[0].Kind)
	require.Equal(t, model.ViewLogView, s.View.Kind)

	s.Apply(model.AppEvent{Kind: model.EventLogLine, Key: key, LogEntry: model.LogEntry{Styled: "hi"}})
	require.Len(t, s.Log, 1)

	cmds = s.Apply(model.AppEvent{Kind: model.EventContainerDestroyed, Key: key})
	require.Equal(t, model.ViewContainerList, s.View.Kind)
	require.Empty(t, s.Log)

	var sawCancel bool
	for _, c := range cmds {
		if c.Kind == CmdCancelLogWorker {
			sawCancel = true
		}
	}
	require.True(t, sawCancel)
}

// E4: search filtering.
func TestE4SearchFiltering(t *testing.T) {
	s := newTestState()
	now := time.Now()
	s.Apply(model.AppEvent{Kind: model.EventInitialContainerList, HostId: "local", Containers: []model.Container{
		mkContainer("local", "111111111111", "nginx", model.StateRunning, now),
		mkContainer("local", "222222222222", "postgres", model.StateRunning, now),
		mkContainer("local", "333333333333", "redis", model.StateRunning, now),
	}})

	s.Apply(model.AppEvent{Kind: model.EventEnterSearchMode})
	s.Apply(model.AppEvent{Kind: model.EventSearchKeyEvent, SearchRune: 'g'})

	rows := s.Rows()
	var names []string
	for _, k := range rows {
		c, _ := s.Container(k)
		names = append(names, c.Name)
	}
	require.ElementsMatch(t, []string{"nginx", "postgres"}, names)
	require.Equal(t, 0, s.Selected)
}

// E5: action semantics — paused container offers {Stop, Unpause, Remove}.
func TestE5ActionMenuAvailableActions(t *testing.T) {
	s := newTestState()
	s.ShowAll = true
	now := time.Now()
	s.Apply(model.AppEvent{Kind: model.EventInitialContainerList, HostId: "local", Containers: []model.Container{
		mkContainer("local", "abc123def456", "app", model.StatePaused, now),
	}})

	s.Apply(model.AppEvent{Kind: model.EventEnterPressed})
	require.Equal(t, model.ViewActionMenu, s.View.Kind)

	c, _ := s.Container(s.View.Target)
	actions := model.AvailableActions(c.State)
	require.ElementsMatch(t, []model.ContainerAction{model.ActionStop, model.ActionUnpause, model.ActionRemove}, actions)

	cmds := s.Apply(model.AppEvent{Kind: model.EventEnterPressed})
	require.Equal(t, model.ViewContainerList, s.View.Kind)
	require.Len(t, cmds, 1)
	require.Equal(t, CmdSpawnAction, cmds[0].Kind)

	s.Apply(model.AppEvent{Kind: model.EventActionInProgress, Key: c.Key, Action: cmds[0].Action})
	require.Contains(t, s.ActionStatuses, c.Key)
}

// E6: sparkline tick marching, 20 then 21 samples.
func TestE6SparklineTickMarching(t *testing.T) {
	var cs model.ContainerStats
	base := time.Unix(0, 0)
	for i := 1; i <= 20; i++ {
		cs.PushHistory(base.Add(time.Duration(i)*model.HistoryBucket*time.Second), float64(i*5), 0)
	}
	require.Len(t, cs.CPUHistory, 20)
	require.Equal(t, uint64(20), cs.SampleCount)

	cs.PushHistory(base.Add(21*model.HistoryBucket*time.Second), 100, 0)
	require.Len(t, cs.CPUHistory, 20)
	require.Equal(t, float64(10), cs.CPUHistory[0])
	require.Equal(t, float64(100), cs.CPUHistory[len(cs.CPUHistory)-1])
}

func TestInvariantHostIdMatchesKey(t *testing.T) {
	s := newTestState()
	s.Apply(model.AppEvent{Kind: model.EventInitialContainerList, HostId: "local", Containers: []model.Container{
		mkContainer("local", "abc123def456", "nginx", model.StateRunning, time.Now()),
	}})
	for key, entry := range s.containers {
		require.Equal(t, key.HostId, entry.container.HostId)
	}
}

func TestReSortThrottle(t *testing.T) {
	s := newTestState()
	now := time.Now()
	s.Apply(model.AppEvent{Kind: model.EventInitialContainerList, HostId: "local", Containers: []model.Container{
		mkContainer("local", "111111111111", "a", model.StateRunning, now),
	}})
	s.Rows() // consume initial forced resort

	key := model.ContainerKey{HostId: "local", ContainerId: "111111111111"}
	s.Apply(model.AppEvent{Kind: model.EventContainerStat, Key: key, Stats: model.ContainerStats{CPUPercent: 5}})
	before := s.lastSort
	s.Rows() // throttled: should not recompute lastSort
	require.Equal(t, before, s.lastSort)

	s.Apply(model.AppEvent{Kind: model.EventContainerCreated, Container: mkContainer("local", "222222222222", "b", model.StateRunning, now)})
	s.Rows() // membership change bypasses throttle
	require.NotEqual(t, before, s.lastSort)
}
