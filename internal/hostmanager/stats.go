package hostmanager

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"dtop/internal/dockerclient"
	"dtop/internal/logger"
	"dtop/internal/model"
)

// rawStats mirrors the fields of Docker's per-message stats JSON that the
// smoothing math needs. Kept as a local struct (rather than depending on
// the SDK's container.StatsResponse) so a daemon API-version skew in field
// naming degrades gracefully to zero values instead of a decode error.
type rawStats struct {
	CPUStats struct {
		CPUUsage struct {
			TotalUsage uint64 `json:"total_usage"`
		} `json:"cpu_usage"`
		SystemCPUUsage uint64 `json:"system_cpu_usage"`
		OnlineCPUs     int    `json:"online_cpus"`
	} `json:"cpu_stats"`
	MemoryStats struct {
		Usage uint64 `json:"usage"`
		Limit uint64 `json:"limit"`
	} `json:"memory_stats"`
	Networks map[string]struct {
		RxBytes uint64 `json:"rx_bytes"`
		TxBytes uint64 `json:"tx_bytes"`
	} `json:"networks"`
	Read time.Time `json:"read"`
}

// RunStatsWorker reads the stats stream for one container, computing
// smoothed CPU%/memory%/network rates and emitting
// ContainerStat events. Terminates on stream end, ctx cancellation, or a
// transport error (in which case the host manager's event stream, not this
// worker, is responsible for the eventual ContainerDestroyed).
func RunStatsWorker(ctx context.Context, client dockerclient.Client, key model.ContainerKey, out chan<- model.AppEvent, log logger.Logger) {
	body, err := client.Stats(ctx, key.ContainerId)
	if err != nil {
		if ctx.Err() == nil {
			log.Warn("stats worker %s: %v", key.ContainerId, err)
		}
		return
	}
	defer body.Close()

	dec := json.NewDecoder(body)
	var stats model.ContainerStats

	for {
		if ctx.Err() != nil {
			return
		}

		var raw rawStats
		if err := dec.Decode(&raw); err != nil {
			if err != io.EOF && ctx.Err() == nil {
				log.Warn("stats worker %s: decode: %v", key.ContainerId, err)
			}
			return
		}

		now := raw.Read
		if now.IsZero() {
			now = time.Now().UTC()
		}

		var rx, tx uint64
		for _, iface := range raw.Networks {
			rx += iface.RxBytes
			tx += iface.TxBytes
		}

		onlineCPUs := raw.CPUStats.OnlineCPUs
		stats.ApplySample(now, raw.CPUStats.CPUUsage.TotalUsage, raw.CPUStats.SystemCPUUsage, onlineCPUs, raw.MemoryStats.Usage, raw.MemoryStats.Limit, rx, tx)

		trySend(ctx, out, model.AppEvent{Kind: model.EventContainerStat, Key: key, Stats: stats})
	}
}
