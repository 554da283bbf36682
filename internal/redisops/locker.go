package redisops

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	clog "docker-worker-mgr/utils/log" //custom log
)

const (
	lockPrefix       = "lock:"
	defaultLockTTL   = 30 * time.Second
	defaultLockRetry = 50 * time.Millisecond
)

// 토큰이 같을 때만 삭제 (다른 프로세스가 잡은 락을 지우지 않도록)
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker is a per-key lock shared by every process using the same redis.
// The TTL bounds how long a crashed holder can block others.
type Locker struct {
	rdb   redis.UniversalClient
	ttl   time.Duration
	retry time.Duration
}

func NewLocker(rdb redis.UniversalClient, ttl time.Duration) *Locker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &Locker{rdb: rdb, ttl: ttl, retry: defaultLockRetry}
}

func lockKey(key string) string {
	return lockPrefix + key
}

// Lock retries SET NX until it wins or ctx ends.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	k := lockKey(key)

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.rdb.SetNX(ctx, k, token, l.ttl).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("redis lock %s: %w", k, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.unlock(k, token) })
	}, nil
}

func (l *Locker) unlock(k, token string) {
	// 호출자 ctx가 이미 취소됐어도 락은 풀어야 함
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := unlockScript.Run(ctx, l.rdb, []string{k}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		clog.Warn("Redis unlock failed", "key", k, "err", err)
	}
}
