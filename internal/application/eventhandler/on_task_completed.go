// Package eventhandler contains handlers for domain events. Handlers run
// on the event bus after the publishing operation has committed; they do
// best-effort side work (cache invalidation) and must tolerate failure.
package eventhandler

import (
	"context"
	"log/slog"
	"time"

	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
)

// LeaderboardInvalidator drops the cached leaderboard snapshot so the
// next read rebuilds it from Postgres.
type LeaderboardInvalidator interface {
	Invalidate(ctx context.Context) error
}

// ══════════════════════════════════════════════════════════════════════════════
// ON TASK COMPLETED HANDLER
// A completed task changes the owner's XP, which may reorder the
// leaderboard. Invalidate the cached snapshot instead of recomputing:
// the next leaderboard read repopulates it.
// ══════════════════════════════════════════════════════════════════════════════

// OnTaskCompletedHandler reacts to focus.task_completed events.
type OnTaskCompletedHandler struct {
	cache   LeaderboardInvalidator
	logger  *slog.Logger
	timeout time.Duration
}

// NewOnTaskCompletedHandler creates a new handler.
func NewOnTaskCompletedHandler(cache LeaderboardInvalidator, logger *slog.Logger) *OnTaskCompletedHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OnTaskCompletedHandler{
		cache:   cache,
		logger:  logger,
		timeout: 5 * time.Second,
	}
}

// Name implements shared.EventHandler.
func (h *OnTaskCompletedHandler) Name() string {
	return "on_task_completed"
}

// Handle implements shared.EventHandler.
func (h *OnTaskCompletedHandler) Handle(event shared.Event) error {
	completed, ok := event.(shared.TaskCompletedEvent)
	if !ok {
		h.logger.Warn("unexpected event payload", "event_type", event.EventType())
		return nil
	}

	// No XP was awarded, the ranking cannot have moved.
	if completed.XPAwarded == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	if err := h.cache.Invalidate(ctx); err != nil {
		h.logger.Warn("leaderboard invalidation failed",
			"handler", h.Name(),
			"user_id", completed.UserID,
			"error", err,
		)
		// Stale for at most the cache TTL; not worth retrying.
		return nil
	}

	h.logger.Debug("leaderboard cache invalidated",
		"handler", h.Name(),
		"user_id", completed.UserID,
		"xp_awarded", completed.XPAwarded,
	)
	return nil
}
