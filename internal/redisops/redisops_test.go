package redisops

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docker-worker-mgr/config"
)

// unreachable points at a port nothing listens on so every command fails fast.
func unreachable(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestNewRedisClientRejectsBadDatabase(t *testing.T) {
	_, err := NewRedisClient(context.Background(), &config.DBConfig{Host: "127.0.0.1", Port: 1, Database: "zero"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zero")
}

func TestNewRedisClientPingFailure(t *testing.T) {
	_, err := NewRedisClient(context.Background(), &config.DBConfig{Host: "127.0.0.1", Port: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}

func TestLockerReportsRedisErrors(t *testing.T) {
	l := NewLocker(unreachable(t), 0)
	assert.Equal(t, defaultLockTTL, l.ttl)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	unlock, err := l.Lock(ctx, "worker:image:sha256:abc")
	require.Error(t, err)
	assert.Nil(t, unlock)
	assert.Contains(t, err.Error(), "lock:worker:image:sha256:abc")
}

func TestLockerStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocker(unreachable(t), time.Second).Lock(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadLastReportPropagatesErrors(t *testing.T) {
	var v map[string]any
	found, err := LoadLastReport(context.Background(), unreachable(t), &v)
	assert.False(t, found)
	assert.Error(t, err)
}
