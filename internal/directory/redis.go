package directory

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCache backs the response cache with Redis so multiple instances
// share one view of the directory. Misses and Redis errors degrade to a
// cache miss; the client then just refetches.
type RedisCache struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedisCache creates a Redis-backed cache. Keys are namespaced with
// prefix to keep them apart from other users of the same instance.
func NewRedisCache(addr, prefix string, logger *zap.Logger) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		prefix: prefix,
		logger: logger,
	}
}

// Get returns the cached value for key if present.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("redis get failed, treating as miss", zap.Error(err))
		return nil, false
	}
	return data, true
}

// Set stores value under key with the given TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		c.logger.Warn("redis set failed", zap.Error(err))
	}
}

// Close releases the underlying Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
