package redisops

import (
	"context"

	clog "docker-worker-mgr/utils/log" //custom log

	"github.com/redis/go-redis/v9"
)

// SyncRequestChannel carries on-demand reconciliation requests. The payload
// is the requester's name and is only logged.
const SyncRequestChannel = "worker-mgr:sync"

func PublishSyncRequest(ctx context.Context, rdb redis.UniversalClient, source string) error {
	return rdb.Publish(ctx, SyncRequestChannel, source).Err()
}

// SubscribeSyncRequests calls handler for every request until ctx ends or
// the subscription channel is closed.
func SubscribeSyncRequests(ctx context.Context, rdb redis.UniversalClient, handler func(source string)) {
	pubsub := rdb.Subscribe(ctx, SyncRequestChannel)
	defer pubsub.Close()
	ch := pubsub.Channel()

	clog.Debug("Subscribed to sync requests", "channel", SyncRequestChannel)

	for {
		select {
		case <-ctx.Done():
			clog.Info("Redis subscription cancelled")
			return
		case msg, ok := <-ch:
			if !ok {
				clog.Error("Redis channel closed")
				return
			}
			clog.Info("Sync requested", "source", msg.Payload)
			handler(msg.Payload)
		}
	}
}
