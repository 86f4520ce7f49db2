package hostmanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dtop/internal/logger"
	"dtop/internal/model"
)

func TestRunStatsWorkerEmitsContainerStat(t *testing.T) {
	body := `{"read":"2024-01-01T00:00:00Z","cpu_stats":{"cpu_usage":{"total_usage":100},"system_cpu_usage":1000,"online_cpus":1},"memory_stats":{"usage":50,"limit":100},"networks":{}}` + "\n" +
		`{"read":"2024-01-01T00:00:01Z","cpu_stats":{"cpu_usage":{"total_usage":200},"system_cpu_usage":2000,"online_cpus":1},"memory_stats":{"usage":50,"limit":100},"networks":{}}` + "\n"

	fc := &fakeClient{statsBody: body}
	out := make(chan model.AppEvent, 8)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	key := model.ContainerKey{HostId: "local", ContainerId: "abc123def456"}
	RunStatsWorker(ctx, fc, key, out, logger.Noop())

	var last model.AppEvent
	count := 0
	for {
		select {
		case evt := <-out:
			require.Equal(t, model.EventContainerStat, evt.Kind)
			last = evt
			count++
		default:
			require.Equal(t, 2, count, "one event per raw sample; the first only seeds")
			require.InDelta(t, 10.0, last.Stats.CPUPercent, 0.01)
			return
		}
	}
}
