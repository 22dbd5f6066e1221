// File: internal/infrastructure/ratelimit/redis.go
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/lolmatina/coincash-back/internal/domain/interfaces"
)

// RedisLimiter is a fixed-window limiter backed by Redis, for deployments
// running more than one backend instance. Keys expire with the window, so
// abandoned counters clean themselves up.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRedisLimiter creates a limiter allowing limit attempts per window.
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, window: window}
}

func (l *RedisLimiter) redisKey(key string) string {
	return fmt.Sprintf("ratelimit:reset:%s", key)
}

// Check reports the current budget for key without consuming an attempt.
func (l *RedisLimiter) Check(ctx context.Context, key string) (interfaces.RateLimitResult, error) {
	rk := l.redisKey(key)

	count, err := l.client.Get(ctx, rk).Int()
	if err == redis.Nil {
		return interfaces.RateLimitResult{
			Allowed:   true,
			Remaining: l.limit,
			ResetTime: time.Now().UTC().Add(l.window),
		}, nil
	}
	if err != nil {
		return interfaces.RateLimitResult{}, fmt.Errorf("failed to get rate limit count: %w", err)
	}

	ttl, err := l.client.TTL(ctx, rk).Result()
	if err != nil {
		return interfaces.RateLimitResult{}, fmt.Errorf("failed to get rate limit ttl: %w", err)
	}
	resetTime := time.Now().UTC().Add(ttl)

	if count >= l.limit {
		return interfaces.RateLimitResult{
			Allowed:    false,
			Remaining:  0,
			ResetTime:  resetTime,
			RetryAfter: ttl,
		}, nil
	}
	return interfaces.RateLimitResult{
		Allowed:   true,
		Remaining: l.limit - count,
		ResetTime: resetTime,
	}, nil
}

// Increment consumes one attempt for key. The first attempt in a window sets
// the key expiry; later attempts reuse it.
func (l *RedisLimiter) Increment(ctx context.Context, key string) (interfaces.RateLimitResult, error) {
	rk := l.redisKey(key)

	count, err := l.client.Incr(ctx, rk).Result()
	if err != nil {
		return interfaces.RateLimitResult{}, fmt.Errorf("failed to increment rate limit count: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, rk, l.window).Err(); err != nil {
			return interfaces.RateLimitResult{}, fmt.Errorf("failed to set rate limit expiry: %w", err)
		}
	}

	ttl, err := l.client.TTL(ctx, rk).Result()
	if err != nil {
		return interfaces.RateLimitResult{}, fmt.Errorf("failed to get rate limit ttl: %w", err)
	}
	if ttl < 0 {
		ttl = l.window
		if err := l.client.Expire(ctx, rk, l.window).Err(); err != nil {
			return interfaces.RateLimitResult{}, fmt.Errorf("failed to set rate limit expiry: %w", err)
		}
	}
	resetTime := time.Now().UTC().Add(ttl)

	if int(count) > l.limit {
		return interfaces.RateLimitResult{
			Allowed:    false,
			Remaining:  0,
			ResetTime:  resetTime,
			RetryAfter: ttl,
		}, nil
	}
	return interfaces.RateLimitResult{
		Allowed:   true,
		Remaining: l.limit - int(count),
		ResetTime: resetTime,
	}, nil
}

var _ interfaces.RateLimiter = (*RedisLimiter)(nil)
