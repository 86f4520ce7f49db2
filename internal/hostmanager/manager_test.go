package hostmanager

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/events"
	"github.com/docker/docker/api/types/filters"
	"github.com/stretchr/testify/require"

	"dtop/internal/logger"
	"dtop/internal/model"
)

type fakeClient struct {
	summaries []container.Summary
	events    chan events.Message
	errs      chan error
	statsBody string
}

func (f *fakeClient) Ping(ctx context.Context) error { return nil }
func (f *fakeClient) ListContainers(ctx context.Context, filt filters.Args) ([]container.Summary, error) {
	return f.summaries, nil
}
func (f *fakeClient) InspectContainer(ctx context.Context, id string) (container.InspectResponse, error) {
	return container.InspectResponse{}, nil
}
func (f *fakeClient) Events(ctx context.Context, filt filters.Args) (<-chan events.Message, <-chan error) {
	return f.events, f.errs
}
func (f *fakeClient) Stats(ctx context.Context, id string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewBufferString(f.statsBody)), nil
}
func (f *fakeClient) Logs(ctx context.Context, id, tail string, follow bool) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewBufferString("")), nil
}
func (f *fakeClient) Start(ctx context.Context, id string) error                    { return nil }
func (f *fakeClient) Stop(ctx context.Context, id string, t *time.Duration) error   { return nil }
func (f *fakeClient) Restart(ctx context.Context, id string, t *time.Duration) error { return nil }
func (f *fakeClient) Remove(ctx context.Context, id string, force bool) error       { return nil }
func (f *fakeClient) Pause(ctx context.Context, id string) error                    { return nil }
func (f *fakeClient) Unpause(ctx context.Context, id string) error                  { return nil }
func (f *fakeClient) Close() error                                                  { return nil }

func TestManagerListInitialEmitsInitialContainerList(t *testing.T) {
	fc := &fakeClient{
		summaries: []container.Summary{
			{ID: "abc123def456789", Names: []string{"/nginx"}, State: "running", Created: time.Now().Unix()},
		},
		events: make(chan events.Message),
		errs:   make(chan error),
	}
	out := make(chan model.AppEvent, 8)
	m := New("local", fc, nil, "", out, logger.Noop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.listInitial(ctx))

	evt := <-out
	require.Equal(t, model.EventInitialContainerList, evt.Kind)
	require.Len(t, evt.Containers, 1)
	require.Equal(t, "nginx", evt.Containers[0].Name)
	require.Equal(t, model.StateRunning, evt.Containers[0].State)
	require.Equal(t, "abc123def456", evt.Containers[0].Key.ContainerId)
}

func TestManagerHandleEventDestroyed(t *testing.T) {
	fc := &fakeClient{events: make(chan events.Message), errs: make(chan error)}
	out := make(chan model.AppEvent, 8)
	m := New("local", fc, nil, "", out, logger.Noop())
	ctx := context.Background()

	m.handleEvent(ctx, events.Message{Action: events.ActionDie, Actor: events.Actor{ID: "abc123def456789"}})
	evt := <-out
	require.Equal(t, model.EventContainerDestroyed, evt.Kind)
	require.Equal(t, "abc123def456", evt.Key.ContainerId)
}
