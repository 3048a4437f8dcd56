// Package cache stores JSON-encoded listing responses in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const versionKey = "events:version"

// ListingCache keys entries under a version counter so a single INCR
// invalidates every cached page after an event write. A nil *ListingCache
// is a valid, always-missing cache.
type ListingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{rdb: rdb, ttl: ttl}
}

// Key builds the cache key for the current listing version.
func (c *ListingCache) Key(ctx context.Context, parts ...string) (string, error) {
	if c == nil {
		return "", nil
	}
	v, err := c.rdb.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return listingKey(v, parts...), nil
}

// Get retrieves a value from Redis and unmarshals it into dest
func (c *ListingCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil || key == "" {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, json.Unmarshal(val, dest)
}

// Set stores value as JSON with the cache TTL
func (c *ListingCache) Set(ctx context.Context, key string, value any) error {
	if c == nil || key == "" {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// Invalidate bumps the listing version; stale entries expire on their own.
func (c *ListingCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Incr(ctx, versionKey).Err()
}

func listingKey(version int64, parts ...string) string {
	return "events:v" + strconv.FormatInt(version, 10) + ":" + strings.Join(parts, ":")
}
