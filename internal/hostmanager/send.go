package hostmanager

import (
	"context"
	"time"

	"dtop/internal/model"
)

// dropTimeout bounds how long a stats or log producer waits for the event
// channel before dropping the event, per the backpressure rule:
// stat/log drops are acceptable (smoothing and the next line resync state),
// but lifecycle events must never be dropped.
const dropTimeout = 50 * time.Millisecond

// trySend publishes evt, dropping it if the channel doesn't accept it
// within dropTimeout or ctx is cancelled first.
func trySend(ctx context.Context, out chan<- model.AppEvent, evt model.AppEvent) {
	timer := time.NewTimer(dropTimeout)
	defer timer.Stop()
	select {
	case out <- evt:
	case <-timer.C:
	case <-ctx.Done():
	}
}
