// Package stats fetches one live resource-usage sample for a container.
package stats

import (
	"context"
	"strings"
	"time"

	"github.com/docker/docker/api/types"

	"docker-worker-mgr/internal/common/errs"
	"docker-worker-mgr/internal/dockerops"
	"docker-worker-mgr/internal/model"
	clog "docker-worker-mgr/utils/log" //custom log
)

const DefaultTimeout = 10 * time.Second

type Engine interface {
	OpenStatsStream(ctx context.Context, containerID string) (dockerops.SampleStream, error)
}

type Collector struct {
	engine  Engine
	timeout time.Duration
}

func New(engine Engine, timeout time.Duration) *Collector {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Collector{engine: engine, timeout: timeout}
}

type recvResult struct {
	sample types.StatsJSON
	err    error
}

// Get waits for the first complete sample on a fresh stream. The stream is
// closed before Get returns, whatever the outcome.
func (c *Collector) Get(ctx context.Context, containerID string) (*model.Statistics, error) {
	waitCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stream, err := c.engine.OpenStatsStream(waitCtx, containerID)
	if err != nil {
		if waitCtx.Err() != nil {
			return nil, c.waitErr(ctx, waitCtx, containerID)
		}
		return nil, errs.E(errs.Statistics, "open stats stream", containerID, err)
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil {
			clog.Debug("Closing stats stream failed", "containerID", containerID, "err", cerr)
		}
	}()

	results := make(chan recvResult, 1)
	go func() {
		for {
			sample, err := stream.Recv()
			if err != nil {
				results <- recvResult{err: err}
				return
			}
			if complete(sample) {
				results <- recvResult{sample: sample}
				return
			}
		}
	}()

	select {
	case r := <-results:
		if r.err != nil {
			return nil, errs.E(errs.Statistics, "read stats sample", containerID, r.err)
		}
		out := normalize(containerID, r.sample)
		return &out, nil
	case <-waitCtx.Done():
		return nil, c.waitErr(ctx, waitCtx, containerID)
	}
}

// waitErr classifies why waitCtx ended: the caller cancelled, or our own
// bound ran out.
func (c *Collector) waitErr(parent, waitCtx context.Context, containerID string) error {
	if err := parent.Err(); err != nil {
		return errs.E(errs.Statistics, "get statistics", containerID, err)
	}
	if err := waitCtx.Err(); err != nil {
		clog.Warn("Timed out waiting for stats sample", "containerID", containerID, "timeout", c.timeout)
		return errs.E(errs.Statistics, "get statistics", containerID,
			errs.E(errs.Timeout, "await sample", containerID, err))
	}
	return nil
}

// complete reports whether the engine filled in the sample. The daemon stamps
// every real sample with its read time.
func complete(s types.StatsJSON) bool {
	return !s.Read.IsZero()
}

func normalize(containerID string, s types.StatsJSON) model.Statistics {
	out := model.Statistics{
		ContainerID: containerID,
		Name:        strings.TrimPrefix(s.Name, "/"),
		ReadAt:      s.Read.UTC(),
		CPU: model.CPUStats{
			TotalUsage:  s.CPUStats.CPUUsage.TotalUsage,
			SystemUsage: s.CPUStats.SystemUsage,
			OnlineCPUs:  onlineCPUs(s),
			Percent:     cpuPercent(s),
		},
		Memory:   memory(s),
		Networks: make(map[string]model.NetworkIO, len(s.Networks)),
		PIDs:     s.PidsStats.Current,
	}
	if s.ID != "" {
		out.ContainerID = s.ID
	}

	for name, n := range s.Networks {
		out.Networks[name] = model.NetworkIO{
			RxBytes:   n.RxBytes,
			TxBytes:   n.TxBytes,
			RxPackets: n.RxPackets,
			TxPackets: n.TxPackets,
		}
	}

	for _, entry := range s.BlkioStats.IoServiceBytesRecursive {
		switch strings.ToLower(entry.Op) {
		case "read":
			out.BlockIO.ReadBytes += entry.Value
		case "write":
			out.BlockIO.WriteBytes += entry.Value
		}
	}
	return out
}

func onlineCPUs(s types.StatsJSON) uint32 {
	if s.CPUStats.OnlineCPUs > 0 {
		return s.CPUStats.OnlineCPUs
	}
	return uint32(len(s.CPUStats.CPUUsage.PercpuUsage))
}

// cpuPercent follows `docker stats`: the container's share of host CPU time
// since the previous sample, scaled by the number of CPUs.
func cpuPercent(s types.StatsJSON) float64 {
	cur, pre := s.CPUStats, s.PreCPUStats
	if cur.CPUUsage.TotalUsage <= pre.CPUUsage.TotalUsage || cur.SystemUsage <= pre.SystemUsage {
		return 0
	}
	cpuDelta := float64(cur.CPUUsage.TotalUsage - pre.CPUUsage.TotalUsage)
	sysDelta := float64(cur.SystemUsage - pre.SystemUsage)
	return cpuDelta / sysDelta * float64(onlineCPUs(s)) * 100
}

// memory excludes reclaimable page cache the same way `docker stats` does
// (inactive_file on cgroup v2, cache on v1).
func memory(s types.StatsJSON) model.MemoryStats {
	usage := s.MemoryStats.Usage
	cache, ok := s.MemoryStats.Stats["inactive_file"]
	if !ok {
		cache = s.MemoryStats.Stats["cache"]
	}
	if cache < usage {
		usage -= cache
	}

	m := model.MemoryStats{Usage: usage, Limit: s.MemoryStats.Limit}
	if m.Limit > 0 {
		m.Percent = float64(usage) / float64(m.Limit) * 100
	}
	return m
}
