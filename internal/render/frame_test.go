package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dtop/internal/model"
	"dtop/internal/state"
)

func TestViewRendersContainerList(t *testing.T) {
	s := state.New(model.SortState{Field: model.SortName, Direction: model.Asc}, false, false)
	s.Apply(model.AppEvent{
		Kind:   model.EventInitialContainerList,
		HostId: "local",
		Containers: []model.Container{{
			Key:     model.ContainerKey{HostId: "local", ContainerId: "abc123def456"},
			Name:    "nginx",
			State:   model.StateRunning,
			Created: time.Now().Add(-90 * time.Second),
			HostId:  "local",
		}},
	})

	out := View(s, 1, 100, 30, time.Now(), IconsUnicode)
	require.Contains(t, out, "dtop")
	require.Contains(t, out, "local")
	require.Contains(t, out, "nginx")
}

func TestViewRendersHelpOverlayWhenToggled(t *testing.T) {
	s := state.New(model.SortState{Field: model.SortName, Direction: model.Asc}, false, false)
	s.Apply(model.AppEvent{Kind: model.EventToggleHelp})

	out := View(s, 0, 80, 24, time.Now(), IconsUnicode)
	require.Contains(t, out, "Keyboard Shortcuts")
}
