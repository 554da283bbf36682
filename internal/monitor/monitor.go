// Package monitor keeps the store in step with the engine by running a
// reconciliation pass on a fixed interval and whenever one is requested.
package monitor

import (
	"context"
	"time"

	"docker-worker-mgr/internal/reconcile"
	clog "docker-worker-mgr/utils/log" //custom log
)

type Reconciler interface {
	Reconcile(ctx context.Context) (*reconcile.SyncReport, error)
}

type Monitor struct {
	reconciler Reconciler
	interval   time.Duration
	trigger    chan string
}

func New(r Reconciler, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Monitor{
		reconciler: r,
		interval:   interval,
		trigger:    make(chan string, 1),
	}
}

// Trigger asks for a pass as soon as the running one finishes. Requests that
// arrive while one is already queued are folded into it.
func (m *Monitor) Trigger(source string) {
	select {
	case m.trigger <- source:
	default:
		clog.Debug("Sync already queued", "source", source)
	}
}

// CheckDockerStatus runs one pass right away and then keeps going until ctx
// ends. A failed pass is logged and retried on the next tick.
func (m *Monitor) CheckDockerStatus(ctx context.Context) {
	clog.Debug("Starting CheckDockerStatus...", "interval", m.interval)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.runOnce(ctx, "startup")
	for {
		select {
		case <-ctx.Done():
			clog.Info("Docker Status watcher stopped.")
			return
		case <-ticker.C:
			m.runOnce(ctx, "interval")
		case source := <-m.trigger:
			m.runOnce(ctx, source)
			// 요청으로 돈 직후 바로 주기 실행이 겹치지 않게
			ticker.Reset(m.interval)
		}
	}
}

func (m *Monitor) runOnce(ctx context.Context, source string) {
	report, err := m.reconciler.Reconcile(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		clog.Error("Reconcile pass failed", "source", source, "err", err)
		return
	}
	args := []any{
		"source", source,
		"runID", report.RunID,
		"total", report.Total,
		"failed", report.Failed,
		"took", report.Duration(),
	}
	if report.Failed > 0 {
		clog.Warn("Reconcile pass finished with failures", args...)
		return
	}
	clog.Debug("Reconcile pass finished", args...)
}
