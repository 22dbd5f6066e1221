// File: internal/infrastructure/ratelimit/memory.go
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/lolmatina/coincash-back/internal/domain/interfaces"
)

// counter is one fixed-window entry: attempts so far and when the window
// rolls over.
type counter struct {
	count     int
	resetTime time.Time
}

// MemoryLimiter is a process-local fixed-window limiter. Counters do not
// survive restarts and are not shared across instances; multi-instance
// deployments should use the Redis limiter instead.
type MemoryLimiter struct {
	mu       sync.Mutex
	counters map[string]*counter
	limit    int
	window   time.Duration
	now      func() time.Time
}

// NewMemoryLimiter creates a limiter allowing limit attempts per window.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		counters: make(map[string]*counter),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

// Check reports the current budget for key without consuming an attempt.
func (l *MemoryLimiter) Check(_ context.Context, key string) (interfaces.RateLimitResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now().UTC()
	c, ok := l.counters[key]
	if !ok || now.After(c.resetTime) {
		return interfaces.RateLimitResult{
			Allowed:   true,
			Remaining: l.limit,
			ResetTime: now.Add(l.window),
		}, nil
	}
	if c.count >= l.limit {
		return interfaces.RateLimitResult{
			Allowed:    false,
			Remaining:  0,
			ResetTime:  c.resetTime,
			RetryAfter: c.resetTime.Sub(now),
		}, nil
	}
	return interfaces.RateLimitResult{
		Allowed:   true,
		Remaining: l.limit - c.count,
		ResetTime: c.resetTime,
	}, nil
}

// Increment consumes one attempt for key, rolling the window over first if
// it has elapsed.
func (l *MemoryLimiter) Increment(_ context.Context, key string) (interfaces.RateLimitResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now().UTC()
	c, ok := l.counters[key]
	if !ok || now.After(c.resetTime) {
		c = &counter{resetTime: now.Add(l.window)}
		l.counters[key] = c
	}
	if c.count >= l.limit {
		return interfaces.RateLimitResult{
			Allowed:    false,
			Remaining:  0,
			ResetTime:  c.resetTime,
			RetryAfter: c.resetTime.Sub(now),
		}, nil
	}
	c.count++
	return interfaces.RateLimitResult{
		Allowed:   true,
		Remaining: l.limit - c.count,
		ResetTime: c.resetTime,
	}, nil
}

var _ interfaces.RateLimiter = (*MemoryLimiter)(nil)
