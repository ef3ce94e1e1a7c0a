package redis

import (
	"context"
)

// ══════════════════════════════════════════════════════════════════════════════
// RATE LIMITER
// Fixed-window counter per client and action. Redis keeps the window
// shared across server restarts; when Redis is down we fail open so an
// outage never locks users out.
// ══════════════════════════════════════════════════════════════════════════════

// RateLimiter limits how many requests a client may make per window.
type RateLimiter struct {
	cache *Cache
	limit int64
}

// NewRateLimiter creates a RateLimiter allowing limit requests per
// TTLRateLimitWindow.
func NewRateLimiter(cache *Cache, limit int) *RateLimiter {
	if limit <= 0 {
		limit = 100
	}
	return &RateLimiter{cache: cache, limit: int64(limit)}
}

// Allow reports whether the identifier may perform the action now.
func (r *RateLimiter) Allow(ctx context.Context, identifier, action string) bool {
	key := RateLimitKey(identifier, action)

	count, err := r.cache.Incr(ctx, key)
	if err != nil {
		return true
	}

	// First hit in the window starts the clock.
	if count == 1 {
		_ = r.cache.Expire(ctx, key, TTLRateLimitWindow)
	}

	return count <= r.limit
}
