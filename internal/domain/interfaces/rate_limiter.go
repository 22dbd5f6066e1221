// File: internal/domain/interfaces/rate_limiter.go
package interfaces

import (
	"context"
	"time"
)

// RateLimitResult describes the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	// ResetTime is when the current window rolls over.
	ResetTime time.Time
	// RetryAfter is zero when Allowed.
	RetryAfter time.Duration
}

// RateLimiter bounds repeated actions per identity within a rolling window.
// Callers normalize the key (lowercased email) before use. Implementations:
// in-process map for single-instance deployments, Redis for multi-instance.
type RateLimiter interface {
	// Check reports whether another attempt is currently allowed without
	// consuming budget.
	Check(ctx context.Context, key string) (RateLimitResult, error)
	// Increment consumes one attempt and returns the updated result.
	Increment(ctx context.Context, key string) (RateLimitResult, error)
}
