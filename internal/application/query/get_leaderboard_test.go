package query

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope/scopetest"
	"github.com/apex-hub/apex-campus-hub/internal/domain/user"
)

// memoryLeaderboard is an in-memory LeaderboardReader with injectable
// failures.
type memoryLeaderboard struct {
	entries []user.LeaderboardEntry
	err     error
	gets    int
	sets    int
}

func (c *memoryLeaderboard) Get(ctx context.Context) ([]user.LeaderboardEntry, error) {
	c.gets++
	if c.err != nil {
		return nil, c.err
	}
	if c.entries == nil {
		return nil, errors.New("cache miss")
	}
	return c.entries, nil
}

func (c *memoryLeaderboard) Set(ctx context.Context, entries []user.LeaderboardEntry) error {
	c.sets++
	if c.err != nil {
		return c.err
	}
	c.entries = entries
	return nil
}

func TestGetLeaderboard_TopTenByXP(t *testing.T) {
	runner := scopetest.NewRunner()
	for i := 0; i < 12; i++ {
		seedUser(t, runner, fmt.Sprintf("user%02d@apex.edu", i), (i+1)*100)
	}

	handler := NewGetLeaderboardHandler(runner, nil, nil, testLogger())

	entries, err := handler.Handle(context.Background(), GetLeaderboardQuery{})
	require.NoError(t, err)
	require.Len(t, entries, LeaderboardSize)

	assert.Equal(t, 1200, entries[0].XP, "highest XP first")
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 10, entries[9].Rank)
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].XP, entries[i].XP)
	}
}

func TestGetLeaderboard_CacheHitSkipsStorage(t *testing.T) {
	runner := scopetest.NewRunner()
	cached := []user.LeaderboardEntry{{UserID: "u1", DisplayName: "Dana Serikova", XP: 500, Level: 1, Rank: 1}}
	cache := &memoryLeaderboard{entries: cached}

	handler := NewGetLeaderboardHandler(runner, cache, nil, testLogger())

	entries, err := handler.Handle(context.Background(), GetLeaderboardQuery{})
	require.NoError(t, err)
	assert.Equal(t, cached, entries)
	assert.Empty(t, runner.Ops, "no storage round trip on a cache hit")
}

func TestGetLeaderboard_CacheMissWarmsCache(t *testing.T) {
	runner := scopetest.NewRunner()
	seedUser(t, runner, "dana@apex.edu", 300)
	cache := &memoryLeaderboard{}

	handler := NewGetLeaderboardHandler(runner, cache, nil, testLogger())

	entries, err := handler.Handle(context.Background(), GetLeaderboardQuery{})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, 1, cache.gets)
	assert.Equal(t, 1, cache.sets, "storage result re-warms the cache")
	assert.Equal(t, entries, cache.entries)
}

func TestGetLeaderboard_CacheFailureFallsThrough(t *testing.T) {
	runner := scopetest.NewRunner()
	seedUser(t, runner, "dana@apex.edu", 300)
	cache := &memoryLeaderboard{err: errors.New("redis: connection refused")}

	handler := NewGetLeaderboardHandler(runner, cache, nil, testLogger())

	entries, err := handler.Handle(context.Background(), GetLeaderboardQuery{})
	require.NoError(t, err, "cache trouble never fails the read")
	assert.Len(t, entries, 1)
}
