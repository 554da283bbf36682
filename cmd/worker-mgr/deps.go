package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"docker-worker-mgr/config"
	"docker-worker-mgr/internal/appctx"
	"docker-worker-mgr/internal/dockerops"
	"docker-worker-mgr/internal/lifecycle"
	"docker-worker-mgr/internal/monitor"
	"docker-worker-mgr/internal/reconcile"
	"docker-worker-mgr/internal/redisops"
	"docker-worker-mgr/internal/service"
	"docker-worker-mgr/internal/sqlops"
	"docker-worker-mgr/internal/stats"
	clog "docker-worker-mgr/utils/log" //custom log
)

// buildDeps wires the engine, store and optional redis into a service. The
// returned func releases everything that was opened.
func buildDeps(ctx context.Context, cfg *config.Config) (*appctx.Dependencies, func(), error) {
	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				clog.Warn("Close failed", "err", err)
			}
		}
	}

	dockerClient, err := dockerops.NewDockerClient(cfg.Docker.Host)
	if err != nil {
		return nil, cleanup, fmt.Errorf("docker client: %w", err)
	}
	closers = append(closers, dockerClient.Close)
	engine := dockerops.NewEngine(dockerClient, cfg.Lifecycle.StopTimeout)

	store, err := sqlops.Open(ctx, &cfg.Store)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("%s store: %w", cfg.Store.Driver, err)
	}
	closers = append(closers, store.Close)

	recOpts := []reconcile.Option{reconcile.WithConcurrency(cfg.Sync.Concurrency)}
	var svcOpts []service.Option
	var rdb *redis.Client
	if cfg.RedisEnabled() {
		rdb, err = redisops.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		closers = append(closers, rdb.Close)
		recOpts = append(recOpts, reconcile.WithLocker(redisops.NewLocker(rdb, 0)))
		svcOpts = append(svcOpts, service.WithReportCache(service.NewRedisReportCache(rdb, 0)))
	}

	svc := service.New(
		reconcile.New(engine, store, recOpts...),
		store,
		lifecycle.New(engine),
		stats.New(engine, cfg.Stats.Timeout),
		svcOpts...,
	)

	deps := &appctx.Dependencies{
		DockerClient: dockerClient,
		RedisClient:  rdb,
		Store:        store,
		Service:      svc,
		Monitor:      monitor.New(svc, cfg.Sync.Interval),
	}
	return deps, cleanup, nil
}
