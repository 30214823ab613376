// Package rediscache implements the listing read cache on Redis.
//
// Entries are namespaced by a generation counter. Invalidate bumps the
// counter, which orphans every entry written under the previous generation;
// orphans expire on their own TTL.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the cache.
const DefaultPrefix = "kraftfix:listings"

// Cache is a JSON value cache with generation-based invalidation.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New wraps an existing client.
func New(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Cache{client: client, prefix: prefix, ttl: ttl}
}

// Open parses a redis:// URL, connects, and verifies the server answers.
func Open(ctx context.Context, rawURL string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return New(client, DefaultPrefix, ttl), nil
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Get decodes the entry for key into dst. The boolean is false on a miss.
func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return false, err
	}
	raw, err := c.client.Get(ctx, c.entryKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %q: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode cached %q: %w", key, err)
	}
	return true, nil
}

// Set stores value under key for the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q for cache: %w", key, err)
	}
	gen, err := c.generation(ctx)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.entryKey(gen, key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Invalidate drops every entry by advancing the generation.
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.genKey()).Err(); err != nil {
		return fmt.Errorf("redis incr generation: %w", err)
	}
	return nil
}

func (c *Cache) generation(ctx context.Context) (int64, error) {
	raw, err := c.client.Get(ctx, c.genKey()).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation: %w", err)
	}
	gen, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt cache generation %q: %w", raw, err)
	}
	return gen, nil
}

func (c *Cache) genKey() string {
	return c.prefix + ":gen"
}

func (c *Cache) entryKey(gen int64, key string) string {
	return c.prefix + ":" + strconv.FormatInt(gen, 10) + ":" + key
}
