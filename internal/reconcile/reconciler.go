package reconcile

import (
	"context"
	"sync"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"docker-worker-mgr/internal/common/errs"
	"docker-worker-mgr/internal/model"
	"docker-worker-mgr/utils"
	clog "docker-worker-mgr/utils/log" //custom log
)

// Engine is the part of the container engine a pass reads from.
type Engine interface {
	ListContainers(ctx context.Context, includeStopped bool) ([]types.Container, error)
	Inspect(ctx context.Context, containerID string) (types.ContainerJSON, error)
}

// Store is the persistence a pass reads prior state from and writes to.
type Store interface {
	FindWorkerByImageID(ctx context.Context, imageID string) (*model.Worker, error)
	FindPortsByWorkerID(ctx context.Context, workerID int64) ([]model.DockerPort, error)
	FindHostConfigByWorkerID(ctx context.Context, workerID int64) (*model.DockerHostConfig, error)
	FindNetworkSettingsByWorkerID(ctx context.Context, workerID int64) (*model.DockerNetworkSettings, error)
	FindMountsByWorkerID(ctx context.Context, workerID int64) ([]model.DockerMount, error)
	UpsertWorker(ctx context.Context, w *model.Worker) error
}

type Reconciler struct {
	engine      Engine
	store       Store
	locker      Locker
	concurrency int
	now         func() time.Time
}

type Option func(*Reconciler)

// WithLocker replaces the in-process per-image lock, e.g. with a distributed
// one when several processes reconcile the same store.
func WithLocker(l Locker) Option {
	return func(r *Reconciler) { r.locker = l }
}

// WithConcurrency sets how many image groups are processed at once.
func WithConcurrency(n int) Option {
	return func(r *Reconciler) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) { r.now = now }
}

func New(engine Engine, store Store, opts ...Option) *Reconciler {
	r := &Reconciler{
		engine:      engine,
		store:       store,
		locker:      NewKeyedMutex(),
		concurrency: 1,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile runs one pass. It returns an error only when the container list
// itself cannot be read; everything else ends up in the report.
//
// Containers sharing an image id map to the same worker, so they are handled
// in list order by one goroutine and the last one listed wins.
func (r *Reconciler) Reconcile(ctx context.Context) (*SyncReport, error) {
	report := &SyncReport{RunID: uuid.NewString(), StartedAt: r.now().UTC()}

	containers, err := r.engine.ListContainers(ctx, true)
	if err != nil {
		return nil, asKind(err, errs.Engine, "list containers", "")
	}

	type indexed struct {
		pos int
		c   types.Container
	}
	items := make([]indexed, len(containers))
	for i, c := range containers {
		items[i] = indexed{pos: i, c: c}
	}
	imageIDs, groups := utils.GroupBy(items, func(it indexed) string { return it.c.ImageID })

	results := make([]error, len(containers))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for _, imageID := range imageIDs {
		group := groups[imageID]
		g.Go(func() error {
			for _, it := range group {
				err := r.syncContainer(ctx, it.c)
				mu.Lock()
				results[it.pos] = err
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	report.Total = len(containers)
	report.Failures = make([]SyncFailure, 0)
	for i, err := range results {
		if err == nil {
			report.Succeeded++
			continue
		}
		c := containers[i]
		report.Failed++
		report.Failures = append(report.Failures, SyncFailure{
			ContainerID: c.ID,
			ImageID:     c.ImageID,
			Name:        containerName(c.Names),
			Kind:        errs.KindOf(err).String(),
			Reason:      err.Error(),
		})
		clog.Warn("Container skipped during reconciliation", "containerID", c.ID, "err", err)
	}
	report.FinishedAt = r.now().UTC()

	clog.Info("Reconciliation pass finished",
		"run", report.RunID,
		"total", report.Total,
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"duration", report.Duration(),
	)
	return report, nil
}

// syncContainer brings the worker for one container up to date.
func (r *Reconciler) syncContainer(ctx context.Context, c types.Container) error {
	unlock, err := r.locker.Lock(ctx, imageLockKey(c.ImageID))
	if err != nil {
		return errs.E(errs.Store, "lock worker", c.ImageID, err)
	}
	defer unlock()

	w, err := r.resolve(ctx, c.ImageID)
	if err != nil {
		return errs.E(errs.Store, "find worker", c.ImageID, err)
	}

	detail, err := r.engine.Inspect(ctx, c.ID)
	if err != nil {
		return asKind(err, errs.Engine, "inspect container", c.ID)
	}

	if err := mapWorker(w, c, detail); err != nil {
		return errs.E(errs.Mapping, "map container", c.ID, err)
	}

	if err := r.mergeNested(ctx, w, c); err != nil {
		return errs.E(errs.Store, "load nested state", c.ID, err)
	}

	if err := r.store.UpsertWorker(ctx, w); err != nil {
		return errs.E(errs.Store, "upsert worker", c.ID, err)
	}

	clog.Debug("Worker synced", "containerID", c.ID, "imageID", c.ImageID, "workerID", w.ID)
	return nil
}

// asKind keeps an already classified error and tags anything else with kind.
func asKind(err error, kind errs.Kind, op, id string) error {
	if errs.KindOf(err) != 0 {
		return err
	}
	return errs.E(kind, op, id, err)
}
