package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheNotAvailable = errors.New("cache not available")
	ErrCacheMiss         = errors.New("cache miss")
)

// CacheHelper provides common caching operations for repositories. A nil
// redis client degrades every call to a miss, so repositories never need to
// know whether caching is configured.
type CacheHelper struct {
	client *redis.Client
	prefix string
}

func NewCacheHelper(client *redis.Client, prefix string) *CacheHelper {
	return &CacheHelper{
		client: client,
		prefix: prefix,
	}
}

// CacheConfig defines TTL and key prefix per data type.
type CacheConfig struct {
	TTL    time.Duration
	Prefix string
}

var (
	// Unread counters change on every notification write.
	UnreadCountCacheConfig = CacheConfig{
		TTL:    time.Minute,
		Prefix: "unread:",
	}

	// The doctor directory changes only on registration.
	DoctorListCacheConfig = CacheConfig{
		TTL:    5 * time.Minute,
		Prefix: "doctors:",
	}
)

func (c *CacheHelper) key(cfg CacheConfig, key string) string {
	return fmt.Sprintf("%s%s%s", c.prefix, cfg.Prefix, key)
}

// Get retrieves and unmarshals data from cache.
func (c *CacheHelper) Get(ctx context.Context, cfg CacheConfig, key string, dest interface{}) error {
	if c == nil || c.client == nil {
		return ErrCacheNotAvailable
	}
	data, err := c.client.Get(ctx, c.key(cfg, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

// Set marshals and stores data with the config's TTL.
func (c *CacheHelper) Set(ctx context.Context, cfg CacheConfig, key string, value interface{}) error {
	if c == nil || c.client == nil {
		return ErrCacheNotAvailable
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(cfg, key), data, cfg.TTL).Err()
}

// Delete removes a cached entry; invalidation failures are the caller's call
// to log, not to fail the write.
func (c *CacheHelper) Delete(ctx context.Context, cfg CacheConfig, key string) error {
	if c == nil || c.client == nil {
		return ErrCacheNotAvailable
	}
	return c.client.Del(ctx, c.key(cfg, key)).Err()
}
