package query

import (
	"context"
	"errors"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/user"
	"github.com/apex-hub/apex-campus-hub/pkg/circuitbreaker"
	"github.com/apex-hub/apex-campus-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET LEADERBOARD QUERY
// Top accounts by XP. Reads through the Redis cache behind a circuit
// breaker; any cache trouble falls through to Postgres, and a Postgres
// result re-warms the cache on the way out.
// ══════════════════════════════════════════════════════════════════════════════

// LeaderboardSize is how many accounts the leaderboard shows.
const LeaderboardSize = 10

// LeaderboardReader is the cache the query reads through. Satisfied by
// redis.LeaderboardCache.
type LeaderboardReader interface {
	Get(ctx context.Context) ([]user.LeaderboardEntry, error)
	Set(ctx context.Context, entries []user.LeaderboardEntry) error
}

// GetLeaderboardQuery has no parameters; the leaderboard is global.
type GetLeaderboardQuery struct{}

// Validate validates the query.
func (q GetLeaderboardQuery) Validate() error {
	return nil
}

// GetLeaderboardHandler handles the GetLeaderboardQuery.
type GetLeaderboardHandler struct {
	runner  scope.Runner
	cache   LeaderboardReader
	breaker *circuitbreaker.CircuitBreaker
	log     *logger.Logger
}

// NewGetLeaderboardHandler creates a new GetLeaderboardHandler.
// cache and breaker may be nil, in which case every read goes to Postgres.
func NewGetLeaderboardHandler(runner scope.Runner, cache LeaderboardReader, breaker *circuitbreaker.CircuitBreaker, log *logger.Logger) *GetLeaderboardHandler {
	return &GetLeaderboardHandler{runner: runner, cache: cache, breaker: breaker, log: log}
}

// Handle executes the leaderboard query.
func (h *GetLeaderboardHandler) Handle(ctx context.Context, q GetLeaderboardQuery) ([]user.LeaderboardEntry, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if entries, ok := h.fromCache(ctx); ok {
		return entries, nil
	}

	entries, err := scope.Run(ctx, h.runner, h.log, scope.OpGetLeaderboard, func(ctx context.Context, s scope.Store) ([]user.LeaderboardEntry, error) {
		return s.Users().TopByXP(ctx, LeaderboardSize)
	})
	if err != nil {
		return nil, err
	}

	h.warmCache(ctx, entries)
	return entries, nil
}

// fromCache tries the Redis cache through the breaker. Every failure
// mode, open breaker included, reads as a miss.
func (h *GetLeaderboardHandler) fromCache(ctx context.Context) ([]user.LeaderboardEntry, bool) {
	if h.cache == nil {
		return nil, false
	}

	var entries []user.LeaderboardEntry
	fetch := func(ctx context.Context) error {
		var err error
		entries, err = h.cache.Get(ctx)
		return err
	}

	var err error
	if h.breaker != nil {
		err = h.breaker.Execute(ctx, fetch)
	} else {
		err = fetch(ctx)
	}
	if err != nil {
		if !errors.Is(err, circuitbreaker.ErrCircuitOpen) {
			h.log.Debug("leaderboard cache miss", logger.Err(err))
		}
		return nil, false
	}

	return entries, true
}

// warmCache stores a fresh Postgres result, best effort.
func (h *GetLeaderboardHandler) warmCache(ctx context.Context, entries []user.LeaderboardEntry) {
	if h.cache == nil {
		return
	}

	store := func(ctx context.Context) error {
		return h.cache.Set(ctx, entries)
	}

	var err error
	if h.breaker != nil {
		err = h.breaker.Execute(ctx, store)
	} else {
		err = store(ctx)
	}
	if err != nil && !errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		h.log.Warn("failed to warm leaderboard cache", logger.Err(err))
	}
}
