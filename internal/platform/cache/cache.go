// Package cache provides a Redis-backed JSON cache for dashboard reads.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss reports that a key is absent. Callers fall through to the origin.
var ErrMiss = errors.New("cache miss")

// Cache wraps a Redis client with JSON get/set helpers.
type Cache struct {
	Client *redis.Client
}

// ParseURL validates a Redis connection URL.
func ParseURL(url string) (*redis.Options, error) {
	if url == "" {
		return nil, fmt.Errorf("cache URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid cache URL: %w", err)
	}
	return opts, nil
}

// New creates a new cache client and verifies the connection.
func New(ctx context.Context, url string) (*Cache, error) {
	opts, err := ParseURL(url)
	if err != nil {
		return nil, err
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging cache: %w", err)
	}

	return &Cache{Client: client}, nil
}

// GetJSON loads key and unmarshals it into out. Absent keys yield ErrMiss.
func (c *Cache) GetJSON(ctx context.Context, key string, out any) error {
	raw, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("cache decode %s: %w", key, err)
	}
	return nil
}

// SetJSON marshals value and stores it under key with the given TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.Client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Delete removes keys, ignoring ones that do not exist.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.Client.Del(ctx, keys...).Err()
}

// Close shuts down the cache client.
func (c *Cache) Close() error {
	return c.Client.Close()
}

// HealthCheck verifies the cache connection is alive.
func (c *Cache) HealthCheck(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}
