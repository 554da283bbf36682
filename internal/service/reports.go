package service

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"docker-worker-mgr/internal/reconcile"
	"docker-worker-mgr/internal/redisops"
)

// ReportCache keeps the most recent SyncReport.
type ReportCache interface {
	Save(ctx context.Context, r *reconcile.SyncReport) error
	Last(ctx context.Context) (*reconcile.SyncReport, error)
}

type MemoryReportCache struct {
	mu   sync.RWMutex
	last *reconcile.SyncReport
}

func NewMemoryReportCache() *MemoryReportCache {
	return &MemoryReportCache{}
}

func (c *MemoryReportCache) Save(_ context.Context, r *reconcile.SyncReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = r
	return nil
}

func (c *MemoryReportCache) Last(context.Context) (*reconcile.SyncReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last, nil
}

// RedisReportCache shares the report between every instance on the same
// redis.
type RedisReportCache struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

func NewRedisReportCache(rdb redis.UniversalClient, ttl time.Duration) *RedisReportCache {
	return &RedisReportCache{rdb: rdb, ttl: ttl}
}

func (c *RedisReportCache) Save(ctx context.Context, r *reconcile.SyncReport) error {
	return redisops.SaveLastReport(ctx, c.rdb, r, c.ttl)
}

func (c *RedisReportCache) Last(ctx context.Context) (*reconcile.SyncReport, error) {
	var r reconcile.SyncReport
	found, err := redisops.LoadLastReport(ctx, c.rdb, &r)
	if err != nil || !found {
		return nil, err
	}
	return &r, nil
}
