package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis is a Redis-backed cache with TTL. Values are stored as JSON so any
// serializable T works. Redis failures degrade to cache misses; the caller
// recomputes instead of failing.
type Redis[T any] struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedis creates a Redis-backed cache against the given address.
func NewRedis[T any](addr string, ttl time.Duration, logger *zap.Logger) *Redis[T] {
	return &Redis[T]{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
		logger: logger,
	}
}

// Get retrieves a value. Returns false on miss, expiry, or Redis error.
func (r *Redis[T]) Get(key string) (T, bool) {
	var zero T

	raw, err := r.client.Get(context.Background(), key).Result()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		}
		return zero, false
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		r.logger.Warn("redis cache entry corrupted", zap.String("key", key), zap.Error(err))
		return zero, false
	}
	return value, true
}

// Set stores a value with the configured TTL. Errors are logged, not returned;
// a cold cache is not a failure.
func (r *Redis[T]) Set(key string, value T) {
	raw, err := json.Marshal(value)
	if err != nil {
		r.logger.Warn("redis cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := r.client.Set(context.Background(), key, raw, r.ttl).Err(); err != nil {
		r.logger.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes a value.
func (r *Redis[T]) Delete(key string) {
	if err := r.client.Del(context.Background(), key).Err(); err != nil {
		r.logger.Warn("redis delete failed", zap.String("key", key), zap.Error(err))
	}
}
