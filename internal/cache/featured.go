package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/toshihome/homestay-bookings/pkg/logger"
)

// FeaturedCache keeps serialized featured-listing responses in Redis.
// A zero-value cache (no client) is valid and always misses, so the
// handler path works unchanged when REDIS_URL is unset.
type FeaturedCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFeatured(url string, ttl time.Duration) (*FeaturedCache, error) {
	if url == "" {
		return &FeaturedCache{}, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return &FeaturedCache{}, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return &FeaturedCache{}, fmt.Errorf("redis ping: %w", err)
	}

	return &FeaturedCache{client: client, ttl: ttl}, nil
}

func (c *FeaturedCache) Enabled() bool { return c.client != nil }

func (c *FeaturedCache) Get(ctx context.Context, limit int64) ([]map[string]any, bool) {
	if c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, key(limit)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.WarnContext(ctx, "Featured cache read failed", "error", err)
		return nil, false
	}

	var docs []map[string]any
	if err := json.Unmarshal(data, &docs); err != nil {
		logger.WarnContext(ctx, "Featured cache entry corrupt", "error", err)
		return nil, false
	}
	return docs, true
}

func (c *FeaturedCache) Set(ctx context.Context, limit int64, docs []map[string]any) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(docs)
	if err != nil {
		logger.WarnContext(ctx, "Featured cache encode failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, key(limit), data, c.ttl).Err(); err != nil {
		logger.WarnContext(ctx, "Featured cache write failed", "error", err)
	}
}

func (c *FeaturedCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func key(limit int64) string {
	return fmt.Sprintf("featured:%d", limit)
}
