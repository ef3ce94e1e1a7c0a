package eventhandler

import (
	"context"
	"log/slog"
	"time"

	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ON SESSION RECORDED HANDLER
// Study sessions award XP on every record, so the cached leaderboard is
// always dropped.
// ══════════════════════════════════════════════════════════════════════════════

// OnSessionRecordedHandler reacts to focus.session_recorded events.
type OnSessionRecordedHandler struct {
	cache   LeaderboardInvalidator
	logger  *slog.Logger
	timeout time.Duration
}

// NewOnSessionRecordedHandler creates a new handler.
func NewOnSessionRecordedHandler(cache LeaderboardInvalidator, logger *slog.Logger) *OnSessionRecordedHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OnSessionRecordedHandler{
		cache:   cache,
		logger:  logger,
		timeout: 5 * time.Second,
	}
}

// Name implements shared.EventHandler.
func (h *OnSessionRecordedHandler) Name() string {
	return "on_session_recorded"
}

// Handle implements shared.EventHandler.
func (h *OnSessionRecordedHandler) Handle(event shared.Event) error {
	recorded, ok := event.(shared.SessionRecordedEvent)
	if !ok {
		h.logger.Warn("unexpected event payload", "event_type", event.EventType())
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	if err := h.cache.Invalidate(ctx); err != nil {
		h.logger.Warn("leaderboard invalidation failed",
			"handler", h.Name(),
			"user_id", recorded.UserID,
			"error", err,
		)
		return nil
	}

	h.logger.Debug("leaderboard cache invalidated",
		"handler", h.Name(),
		"user_id", recorded.UserID,
		"duration_minutes", recorded.DurationMinutes,
	)
	return nil
}
