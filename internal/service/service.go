// Package service is the surface the HTTP API and the CLI call into. It
// validates input, classifies store failures and remembers the last
// reconciliation report.
package service

import (
	"context"
	"strings"

	"docker-worker-mgr/internal/common/errs"
	"docker-worker-mgr/internal/lifecycle"
	"docker-worker-mgr/internal/model"
	"docker-worker-mgr/internal/reconcile"
	clog "docker-worker-mgr/utils/log" //custom log
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Syncer interface {
	Reconcile(ctx context.Context) (*reconcile.SyncReport, error)
}

type Store interface {
	ListWorkers(ctx context.Context, page, size int) (model.Page[model.WorkerSummary], error)
	FindWorkerByContainerID(ctx context.Context, containerID string) (*model.Worker, error)
	LoadAggregate(ctx context.Context, w *model.Worker) error
}

type Lifecycle interface {
	Start(ctx context.Context, containerID string) (lifecycle.Result, error)
	Stop(ctx context.Context, containerID string) (lifecycle.Result, error)
}

type StatsGetter interface {
	Get(ctx context.Context, containerID string) (*model.Statistics, error)
}

type Service struct {
	syncer    Syncer
	store     Store
	lifecycle Lifecycle
	stats     StatsGetter
	reports   ReportCache
}

type Option func(*Service)

// WithReportCache shares the last report between instances, e.g. through
// redis. The default keeps it in memory.
func WithReportCache(c ReportCache) Option {
	return func(s *Service) { s.reports = c }
}

func New(syncer Syncer, store Store, lc Lifecycle, stats StatsGetter, opts ...Option) *Service {
	s := &Service{
		syncer:    syncer,
		store:     store,
		lifecycle: lc,
		stats:     stats,
		reports:   NewMemoryReportCache(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reconcile runs one pass and records its report.
func (s *Service) Reconcile(ctx context.Context) (*reconcile.SyncReport, error) {
	report, err := s.syncer.Reconcile(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.reports.Save(ctx, report); err != nil {
		// 리포트 저장 실패는 동기화 결과에 영향 없음
		clog.Warn("Saving sync report failed", "runID", report.RunID, "err", err)
	}
	return report, nil
}

// LastReport returns the most recent pass, or nil if none ran yet.
func (s *Service) LastReport(ctx context.Context) (*reconcile.SyncReport, error) {
	r, err := s.reports.Last(ctx)
	if err != nil {
		return nil, errs.E(errs.Store, "load last report", "", err)
	}
	return r, nil
}

// ListWorkers pages are zero-based. size 0 means DefaultPageSize.
func (s *Service) ListWorkers(ctx context.Context, page, size int) (model.Page[model.WorkerSummary], error) {
	if size == 0 {
		size = DefaultPageSize
	}
	if page < 0 {
		return model.Page[model.WorkerSummary]{}, errs.E(errs.Invalid, "list workers", "", errPageNegative)
	}
	if size < 1 || size > MaxPageSize {
		return model.Page[model.WorkerSummary]{}, errs.E(errs.Invalid, "list workers", "", errPageSize)
	}

	p, err := s.store.ListWorkers(ctx, page, size)
	if err != nil {
		return model.Page[model.WorkerSummary]{}, errs.E(errs.Store, "list workers", "", err)
	}
	return p, nil
}

// GetWorker returns the full aggregate for the worker currently bound to
// containerID, or nil when no worker is.
func (s *Service) GetWorker(ctx context.Context, containerID string) (*model.Worker, error) {
	containerID, err := requireID("get worker", containerID)
	if err != nil {
		return nil, err
	}

	w, err := s.store.FindWorkerByContainerID(ctx, containerID)
	if err != nil {
		return nil, errs.E(errs.Store, "get worker", containerID, err)
	}
	if w == nil {
		return nil, nil
	}
	if err := s.store.LoadAggregate(ctx, w); err != nil {
		return nil, errs.E(errs.Store, "get worker", containerID, err)
	}
	return w, nil
}

func (s *Service) StartContainer(ctx context.Context, containerID string) (lifecycle.Result, error) {
	containerID, err := requireID("start container", containerID)
	if err != nil {
		return lifecycle.Result{}, err
	}
	return s.lifecycle.Start(ctx, containerID)
}

func (s *Service) StopContainer(ctx context.Context, containerID string) (lifecycle.Result, error) {
	containerID, err := requireID("stop container", containerID)
	if err != nil {
		return lifecycle.Result{}, err
	}
	return s.lifecycle.Stop(ctx, containerID)
}

func (s *Service) GetStatistics(ctx context.Context, containerID string) (*model.Statistics, error) {
	containerID, err := requireID("get statistics", containerID)
	if err != nil {
		return nil, err
	}
	return s.stats.Get(ctx, containerID)
}

func requireID(op, containerID string) (string, error) {
	id := strings.TrimSpace(containerID)
	if id == "" {
		return "", errs.E(errs.Invalid, op, "", errEmptyID)
	}
	return id, nil
}
