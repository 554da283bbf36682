// Package sqlops persists Worker aggregates in MySQL or SQLite.
package sqlops

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"docker-worker-mgr/config"
	"docker-worker-mgr/internal/model"
)

const workerSelect = `SELECT id, image_id, container_id, name, command, image, status, state,
	size_rw, size_root_fs, created_at, started_at, finished_at FROM workers`

type Store struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// Open connects using the configured driver and makes sure the schema exists.
func Open(ctx context.Context, cfg *config.StoreConfig) (*Store, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	switch dialect.Name {
	case MySQL.Name:
		db, err = MysqlConnection(&cfg.MySQL)
	default:
		db, err = SqliteConnection(cfg.SQLitePath)
	}
	if err != nil {
		return nil, err
	}

	s := New(db, dialect)
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range s.dialect.schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("initialize %s schema: %w", s.dialect.Name, err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) findWorker(ctx context.Context, where string, arg any) (*model.Worker, error) {
	rows, err := SelectQueryRowsToStructs[workerRow](ctx, s.db, workerSelect+" WHERE "+where+" ORDER BY id LIMIT 1", arg)
	if err != nil {
		return nil, fmt.Errorf("select worker: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toModel()
}

// FindWorkerByImageID returns the worker's scalar fields, or nil if none exists.
func (s *Store) FindWorkerByImageID(ctx context.Context, imageID string) (*model.Worker, error) {
	return s.findWorker(ctx, "image_id = ?", imageID)
}

// FindWorkerByContainerID returns the worker's scalar fields, or nil if none exists.
func (s *Store) FindWorkerByContainerID(ctx context.Context, containerID string) (*model.Worker, error) {
	return s.findWorker(ctx, "container_id = ?", containerID)
}

func (s *Store) FindPortsByWorkerID(ctx context.Context, workerID int64) ([]model.DockerPort, error) {
	rows, err := SelectQueryRowsToStructs[portRow](ctx, s.db,
		`SELECT id, worker_id, ip, private_port, public_port, type FROM docker_ports WHERE worker_id = ? ORDER BY private_port, id`,
		workerID)
	if err != nil {
		return nil, fmt.Errorf("select ports of worker %d: %w", workerID, err)
	}
	ports := make([]model.DockerPort, 0, len(rows))
	for _, r := range rows {
		ports = append(ports, r.toModel())
	}
	return ports, nil
}

func (s *Store) FindHostConfigByWorkerID(ctx context.Context, workerID int64) (*model.DockerHostConfig, error) {
	rows, err := SelectQueryRowsToStructs[hostConfigRow](ctx, s.db,
		`SELECT id, worker_id, network_mode FROM docker_host_configs WHERE worker_id = ?`,
		workerID)
	if err != nil {
		return nil, fmt.Errorf("select host config of worker %d: %w", workerID, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &model.DockerHostConfig{ID: rows[0].ID, WorkerID: rows[0].WorkerID, NetworkMode: rows[0].NetworkMode}, nil
}

func (s *Store) FindNetworkSettingsByWorkerID(ctx context.Context, workerID int64) (*model.DockerNetworkSettings, error) {
	settings, err := SelectQueryRowsToStructs[networkSettingsRow](ctx, s.db,
		`SELECT id, worker_id FROM docker_network_settings WHERE worker_id = ?`,
		workerID)
	if err != nil {
		return nil, fmt.Errorf("select network settings of worker %d: %w", workerID, err)
	}
	if len(settings) == 0 {
		return nil, nil
	}

	rows, err := SelectQueryRowsToStructs[networkRow](ctx, s.db,
		`SELECT id, network_settings_id, name, aliases, gateway, endpoint_id, ip_address, ip_prefix_len,
	global_ipv6_address, global_ipv6_prefix_len, ipv6_gateway, mac_address
FROM docker_networks WHERE network_settings_id = ? ORDER BY name, id`,
		settings[0].ID)
	if err != nil {
		return nil, fmt.Errorf("select networks of worker %d: %w", workerID, err)
	}

	out := &model.DockerNetworkSettings{
		ID:       settings[0].ID,
		WorkerID: settings[0].WorkerID,
		Networks: make([]model.DockerNetwork, 0, len(rows)),
	}
	for _, r := range rows {
		n, err := r.toModel()
		if err != nil {
			return nil, err
		}
		out.Networks = append(out.Networks, n)
	}
	return out, nil
}

func (s *Store) FindMountsByWorkerID(ctx context.Context, workerID int64) ([]model.DockerMount, error) {
	rows, err := SelectQueryRowsToStructs[mountRow](ctx, s.db,
		`SELECT id, worker_id, rw, name, mode, driver, destination, source, propagation
FROM docker_mounts WHERE worker_id = ? ORDER BY destination, id`,
		workerID)
	if err != nil {
		return nil, fmt.Errorf("select mounts of worker %d: %w", workerID, err)
	}
	mounts := make([]model.DockerMount, 0, len(rows))
	for _, r := range rows {
		mounts = append(mounts, r.toModel())
	}
	return mounts, nil
}

// LoadAggregate fills w's nested collections from the store.
func (s *Store) LoadAggregate(ctx context.Context, w *model.Worker) error {
	var err error
	if w.Ports, err = s.FindPortsByWorkerID(ctx, w.ID); err != nil {
		return err
	}
	if w.HostConfig, err = s.FindHostConfigByWorkerID(ctx, w.ID); err != nil {
		return err
	}
	if w.NetworkSettings, err = s.FindNetworkSettingsByWorkerID(ctx, w.ID); err != nil {
		return err
	}
	if w.Mounts, err = s.FindMountsByWorkerID(ctx, w.ID); err != nil {
		return err
	}
	return nil
}

// ListWorkers returns one zero-based page of workers ordered by id.
func (s *Store) ListWorkers(ctx context.Context, page, size int) (model.Page[model.WorkerSummary], error) {
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM workers`).Scan(&total); err != nil {
		return model.Page[model.WorkerSummary]{}, fmt.Errorf("count workers: %w", err)
	}

	rows, err := SelectQueryRowsToStructs[workerRow](ctx, s.db,
		workerSelect+" ORDER BY id LIMIT ? OFFSET ?", size, page*size)
	if err != nil {
		return model.Page[model.WorkerSummary]{}, fmt.Errorf("select workers page: %w", err)
	}

	items := make([]model.WorkerSummary, 0, len(rows))
	for _, r := range rows {
		w, err := r.toModel()
		if err != nil {
			return model.Page[model.WorkerSummary]{}, err
		}
		if w.Ports, err = s.FindPortsByWorkerID(ctx, w.ID); err != nil {
			return model.Page[model.WorkerSummary]{}, err
		}
		items = append(items, model.Summarize(*w))
	}
	return model.NewPage(items, page, size, total), nil
}

// UpsertWorker writes the aggregate in one transaction, keyed by image id.
// Nested rows carrying an id are updated in place, rows without one are
// inserted, and rows no longer present in the aggregate are deleted. Ids
// assigned by the database are written back into w.
func (s *Store) UpsertWorker(ctx context.Context, w *model.Worker) (err error) {
	if w.ImageID == "" {
		return errors.New("worker image id is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin worker upsert: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = ExecQuery(ctx, tx, s.dialect.upsertWorker, workerValues(w)...); err != nil {
		return fmt.Errorf("upsert worker %s: %w", w.ImageID, err)
	}
	if err = tx.QueryRowContext(ctx, `SELECT id FROM workers WHERE image_id = ?`, w.ImageID).Scan(&w.ID); err != nil {
		return fmt.Errorf("resolve worker id %s: %w", w.ImageID, err)
	}
	w.SetOwner()

	if err = syncPorts(ctx, tx, w); err != nil {
		return err
	}
	if err = syncHostConfig(ctx, tx, w); err != nil {
		return err
	}
	if err = syncNetworkSettings(ctx, tx, w); err != nil {
		return err
	}
	if err = syncMounts(ctx, tx, w); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit worker upsert: %w", err)
	}
	return nil
}
