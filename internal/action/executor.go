// Package action implements the Action Executor: one-shot Docker lifecycle
// commands spawned per user selection in the ActionMenu, reporting progress
// back onto the shared event channel. It never mutates container state
// itself — the canonical update always arrives through the Host Manager's
// event stream.
package action

import (
	"context"
	"time"

	"dtop/internal/dockerclient"
	"dtop/internal/model"
)

// stopTimeout is the grace period before Stop/Restart escalate to SIGKILL,
// per the action table.
var stopTimeout = 10 * time.Second

// Execute runs action against key on client, emitting ActionInProgress
// immediately and ActionSuccess/ActionError when the Docker call returns.
// Intended to be invoked with `go action.Execute(...)` by the dispatcher.
func Execute(ctx context.Context, client dockerclient.Client, key model.ContainerKey, act model.ContainerAction, out chan<- model.AppEvent) {
	out <- model.AppEvent{Kind: model.EventActionInProgress, Key: key, Action: act}

	var err error
	switch act {
	case model.ActionStart:
		err = client.Start(ctx, key.ContainerId)
	case model.ActionStop:
		err = client.Stop(ctx, key.ContainerId, &stopTimeout)
	case model.ActionRestart:
		err = client.Restart(ctx, key.ContainerId, &stopTimeout)
	case model.ActionRemove:
		err = client.Remove(ctx, key.ContainerId, true)
	case model.ActionPause:
		err = client.Pause(ctx, key.ContainerId)
	case model.ActionUnpause:
		err = client.Unpause(ctx, key.ContainerId)
	}

	if err != nil {
		out <- model.AppEvent{Kind: model.EventActionError, Key: key, Action: act, ActionMessage: err.Error()}
		return
	}
	out <- model.AppEvent{Kind: model.EventActionSuccess, Key: key, Action: act}
}
