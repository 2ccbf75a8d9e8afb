package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrMiss is returned when a key is absent or expired.
var ErrMiss = fmt.Errorf("cache: miss")

// Cache is a small JSON-value cache on top of Redis. It backs the
// daily-inspiration and watch-result caches and the one-shot prefill mailbox.
type Cache struct {
	inner *redis.Client
}

// Config holds Redis connection settings
type Config struct {
	Addr     string
	Password string
	DB       int
}

// New connects to Redis and verifies the connection
func New(ctx context.Context, cfg Config) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &Cache{inner: client}, nil
}

// Set stores a JSON-encoded value under key with the given TTL.
// A zero TTL stores the key without expiry.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache value: %w", err)
	}

	if err := c.inner.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("setting cache key %s: %w", key, err)
	}

	return nil
}

// Get loads and decodes the value stored under key into out.
// Returns ErrMiss when the key is absent.
func (c *Cache) Get(ctx context.Context, key string, out interface{}) error {
	data, err := c.inner.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("getting cache key %s: %w", key, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding cache value for %s: %w", key, err)
	}

	return nil
}

// Delete removes a key. Missing keys are not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.inner.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("deleting cache key %s: %w", key, err)
	}
	return nil
}

// DeletePrefix removes all keys under the given prefix using SCAN.
func (c *Cache) DeletePrefix(ctx context.Context, prefix string) error {
	iter := c.inner.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.inner.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("deleting cache key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scanning cache prefix %s: %w", prefix, err)
	}
	return nil
}

// GetDel atomically loads and removes the value stored under key.
// Used for one-shot payloads (prefill mailbox).
func (c *Cache) GetDel(ctx context.Context, key string, out interface{}) error {
	data, err := c.inner.GetDel(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("consuming cache key %s: %w", key, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding cache value for %s: %w", key, err)
	}

	return nil
}

// Close closes the underlying Redis connection
func (c *Cache) Close() error {
	return c.inner.Close()
}

// TTLUntilMidnight returns the duration from now until the next local
// midnight in loc. Daily caches expire at the day boundary, not a fixed TTL.
func TTLUntilMidnight(now time.Time, loc *time.Location) time.Duration {
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	return midnight.Sub(local)
}
