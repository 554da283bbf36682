package redisops

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const lastReportKey = "sync:last_report"

// SaveLastReport stores v as JSON so any instance can answer "what did the
// last pass do". ttl 0 keeps it until overwritten.
func SaveLastReport(ctx context.Context, rdb redis.UniversalClient, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return rdb.Set(ctx, lastReportKey, b, ttl).Err()
}

// LoadLastReport decodes the stored report into v. found is false when no
// pass has been recorded yet.
func LoadLastReport(ctx context.Context, rdb redis.UniversalClient, v any) (found bool, err error) {
	b, err := rdb.Get(ctx, lastReportKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("decode report: %w", err)
	}
	return true, nil
}
