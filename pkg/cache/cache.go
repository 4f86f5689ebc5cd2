// Package cache stores JSON-encoded read models in Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/pos-backoffice/pkg/logger"
)

// Cache is a namespaced JSON cache. A Cache with a nil client is a no-op, so callers
// never branch on whether Redis is configured.
type Cache struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

func New(client *redis.Client, namespace string, ttl time.Duration) *Cache {
	return &Cache{client: client, namespace: namespace, ttl: ttl}
}

// Key builds a namespaced key from parts, hashing them to keep keys short
func (c *Cache) Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, ":")))
	return fmt.Sprintf("cache:%s:%s", c.namespace, hex.EncodeToString(hash[:8]))
}

// Get loads key into dest; found is false on a miss or when caching is disabled
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		logger.Debug(ctx).Str("cache_key", key).Msg("Cache miss")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache: %w", err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached value: %w", err)
	}
	logger.Debug(ctx).Str("cache_key", key).Msg("Cache hit")
	return true, nil
}

// Set stores value under key with the cache TTL
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	if c == nil || c.client == nil {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// Invalidate deletes every key in the namespace
func (c *Cache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}

	pattern := fmt.Sprintf("cache:%s:*", c.namespace)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to delete cache keys: %w", err)
		}
		logger.Info(ctx).
			Int("count", len(keys)).
			Str("namespace", c.namespace).
			Msg("Cache invalidated")
	}
	return nil
}
