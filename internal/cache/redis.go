// Package cache stores rendered previews in redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL applies when no TTL is configured.
const DefaultTTL = 10 * time.Minute

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache miss")

// PreviewCache wraps a redis client holding JSON encoded previews.
type PreviewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to addr. The connection is verified with a ping.
func NewRedis(ctx context.Context, addr string, ttl time.Duration) (*PreviewCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return New(rdb, ttl), nil
}

// New wraps an existing client.
func New(client *redis.Client, ttl time.Duration) *PreviewCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &PreviewCache{client: client, ttl: ttl}
}

// PreviewKey builds preview:{locale}:{country}:{city}:{category}.
func PreviewKey(locale, country, city, category string) string {
	return strings.Join([]string{"preview", locale, country, city, category}, ":")
}

// Get decodes the value stored at key into v.
func (c *PreviewCache) Get(ctx context.Context, key string, v any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return nil
}

// Set stores v as JSON with the cache TTL.
func (c *PreviewCache) Set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Close closes the redis connection.
func (c *PreviewCache) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
