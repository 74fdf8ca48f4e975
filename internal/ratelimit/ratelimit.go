// Package ratelimit caps how often anonymous clients may hit the auth
// endpoints, with counters held in Redis so limits survive restarts and
// apply across replicas.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter answers whether one more attempt is allowed for a key.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type redisLimiter struct {
	client *redis.Client
}

// NewRedisLimiter builds a fixed-window limiter over the given client.
func NewRedisLimiter(client *redis.Client) Limiter {
	return &redisLimiter{client: client}
}

// Allow increments the window counter and compares it to the limit. The
// expiry is set only when the counter is created, so the window is fixed,
// not sliding.
func (l *redisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}
