package appctx

import (
	"github.com/docker/docker/client"
	"github.com/redis/go-redis/v9"

	"docker-worker-mgr/internal/monitor"
	"docker-worker-mgr/internal/service"
	"docker-worker-mgr/internal/sqlops"
)

// Dependencies is everything the handlers and background loops share.
// RedisClient and Monitor are nil when not configured.
type Dependencies struct {
	DockerClient *client.Client
	RedisClient  *redis.Client
	Store        *sqlops.Store
	Service      *service.Service
	Monitor      *monitor.Monitor
}
