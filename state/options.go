package state

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// StoreOption is a functional option for configuring a state store.
type StoreOption func(*storeConfig)

// storeConfig holds configuration for state stores.
type storeConfig struct {
	redisClient *redis.Client
	redisTTL    time.Duration
	key         string
}

// WithRedisClient sets the Redis client for the Redis store.
func WithRedisClient(client *redis.Client) StoreOption {
	return func(c *storeConfig) {
		c.redisClient = client
	}
}

// WithRedisTTL sets the TTL for the Redis snapshot key. Zero or negative
// keeps the snapshot without expiry.
func WithRedisTTL(ttl time.Duration) StoreOption {
	return func(c *storeConfig) {
		c.redisTTL = ttl
	}
}

// WithKey overrides the key the snapshot is stored under.
func WithKey(key string) StoreOption {
	return func(c *storeConfig) {
		c.key = key
	}
}
