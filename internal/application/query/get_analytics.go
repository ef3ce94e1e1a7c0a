package query

import (
	"context"
	"math"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/focus"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET ANALYTICS QUERY
// Study analytics: total hours and the completed-task category breakdown.
// A user with no completed tasks gets a single synthetic "General" bucket
// with count 1 so category charts always have something to draw.
// ══════════════════════════════════════════════════════════════════════════════

// GetAnalyticsQuery identifies whose analytics to load.
type GetAnalyticsQuery struct {
	// UserID is the authenticated caller.
	UserID string
}

// Validate validates the query.
func (q GetAnalyticsQuery) Validate() error {
	if q.UserID == "" {
		return shared.ValidationErrors{{Field: "user_id", Message: "authentication required"}}
	}
	return nil
}

// Analytics is the analytics read model.
type Analytics struct {
	// TotalMinutes is the all-time recorded study time.
	TotalMinutes int `json:"total_minutes"`

	// TotalHours is TotalMinutes/60 rounded to one decimal place.
	TotalHours float64 `json:"total_hours"`

	// TotalSessions is the all-time session count.
	TotalSessions int `json:"total_sessions"`

	// CategoryCounts is the completed-task breakdown, never empty.
	CategoryCounts []focus.CategoryCount `json:"category_counts"`
}

// GetAnalyticsHandler handles the GetAnalyticsQuery.
type GetAnalyticsHandler struct {
	runner scope.Runner
	log    *logger.Logger
}

// NewGetAnalyticsHandler creates a new GetAnalyticsHandler.
func NewGetAnalyticsHandler(runner scope.Runner, log *logger.Logger) *GetAnalyticsHandler {
	return &GetAnalyticsHandler{runner: runner, log: log}
}

// Handle executes the analytics query.
func (h *GetAnalyticsHandler) Handle(ctx context.Context, q GetAnalyticsQuery) (*Analytics, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	return scope.Run(ctx, h.runner, h.log, scope.OpGetAnalytics, func(ctx context.Context, s scope.Store) (*Analytics, error) {
		minutes, err := s.Sessions().TotalMinutes(ctx, q.UserID)
		if err != nil {
			return nil, err
		}

		sessions, err := s.Sessions().CountSessions(ctx, q.UserID)
		if err != nil {
			return nil, err
		}

		counts, err := s.Tasks().CompletedCategoryCounts(ctx, q.UserID)
		if err != nil {
			return nil, err
		}
		if len(counts) == 0 {
			counts = []focus.CategoryCount{{Category: focus.DefaultCategory, Count: 1}}
		}

		return &Analytics{
			TotalMinutes:   minutes,
			TotalHours:     RoundHours(minutes),
			TotalSessions:  sessions,
			CategoryCounts: counts,
		}, nil
	})
}

// RoundHours converts minutes to hours rounded to one decimal place.
func RoundHours(minutes int) float64 {
	return math.Round(float64(minutes)/60.0*10) / 10
}
