// Package views tracks blog post view counts in Redis.
package views

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/merchbase/site-api/internal/domain"
)

// Counter implements domain.ViewCounter on a Redis instance. Counts live
// under one key per slug; they are best-effort analytics, not durable data.
type Counter struct {
	rdb *redis.Client
}

// New constructs a Counter for the given Redis address.
func New(addr string) *Counter {
	return &Counter{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

// NewWithClient wraps an existing client, used by tests.
func NewWithClient(rdb *redis.Client) *Counter {
	return &Counter{rdb: rdb}
}

func key(slug string) string { return "blog:views:" + slug }

// Increment bumps the view count for slug and returns the new value.
func (c *Counter) Increment(ctx domain.Context, slug string) (int64, error) {
	n, err := c.rdb.Incr(ctx, key(slug)).Result()
	if err != nil {
		return 0, fmt.Errorf("op=views.Increment: %w", err)
	}
	return n, nil
}

// Get returns the view count for slug, zero when never viewed.
func (c *Counter) Get(ctx domain.Context, slug string) (int64, error) {
	n, err := c.rdb.Get(ctx, key(slug)).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("op=views.Get: %w", err)
	}
	return n, nil
}

// Ping verifies connectivity for readiness checks.
func (c *Counter) Ping(ctx domain.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("op=views.Ping: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (c *Counter) Close() error { return c.rdb.Close() }
