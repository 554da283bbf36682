package redisops

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"docker-worker-mgr/config"
	clog "docker-worker-mgr/utils/log" //custom log

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects and pings once. Database is the numeric redis db
// index; empty means 0.
func NewRedisClient(ctx context.Context, redisConfig *config.DBConfig) (*redis.Client, error) {
	db := 0
	if redisConfig.Database != "" {
		n, err := strconv.Atoi(redisConfig.Database)
		if err != nil {
			return nil, fmt.Errorf("redis database %q: %w", redisConfig.Database, err)
		}
		db = n
	}

	addr := fmt.Sprintf("%s:%d", redisConfig.Host, redisConfig.Port)
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: redisConfig.User,
		Password: redisConfig.Password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis 연결 실패 (%s): %w", addr, err)
	}

	clog.Info("Redis 연결 성공", "addr", addr, "db", db)
	return rdb, nil
}
