package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex-hub/apex-campus-hub/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEADERBOARD CACHE
// ══════════════════════════════════════════════════════════════════════════════

// LeaderboardCache keeps the rendered top-N leaderboard hot in Redis.
// The leaderboard query reads through it; XP-award event handlers
// invalidate it; a scheduler job re-warms it.
type LeaderboardCache struct {
	cache *Cache
}

// NewLeaderboardCache creates a LeaderboardCache.
func NewLeaderboardCache(cache *Cache) *LeaderboardCache {
	return &LeaderboardCache{cache: cache}
}

// Get returns the cached leaderboard, or ErrCacheMiss when cold.
func (c *LeaderboardCache) Get(ctx context.Context) ([]user.LeaderboardEntry, error) {
	var entries []user.LeaderboardEntry
	if err := c.cache.Get(ctx, LeaderboardKey(), &entries); err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("leaderboard cache: failed to get: %w", err)
	}

	return entries, nil
}

// Set stores the leaderboard with the standard TTL.
func (c *LeaderboardCache) Set(ctx context.Context, entries []user.LeaderboardEntry) error {
	if entries == nil {
		entries = []user.LeaderboardEntry{}
	}
	if err := c.cache.Set(ctx, LeaderboardKey(), entries, TTLLeaderboardCache); err != nil {
		return fmt.Errorf("leaderboard cache: failed to set: %w", err)
	}

	return nil
}

// Invalidate drops the cached leaderboard. Called whenever XP changes.
func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	return c.cache.Delete(ctx, LeaderboardKey())
}
