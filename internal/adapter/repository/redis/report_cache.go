package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReportCache implements usecase.ReportCache using Redis. A single key holds
// the last rendered report text.
type ReportCache struct {
	client *redis.Client
	key    string
}

// NewReportCache creates a new ReportCache.
func NewReportCache(client *redis.Client) *ReportCache {
	return &ReportCache{
		client: client,
		key:    "report:rendered",
	}
}

// Get returns the cached report text, or redis.Nil when absent.
func (c *ReportCache) Get(ctx context.Context) (string, error) {
	return c.client.Get(ctx, c.key).Result()
}

// Set stores the rendered report with TTL.
func (c *ReportCache) Set(ctx context.Context, text string, ttl time.Duration) error {
	return c.client.Set(ctx, c.key, text, ttl).Err()
}

// Invalidate drops the cached report. Called after every mutation.
func (c *ReportCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
