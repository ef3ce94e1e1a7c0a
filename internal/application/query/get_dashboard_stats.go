// Package query contains read operations (CQRS - Queries).
// Queries run inside the same transaction scope machinery as commands so
// every read sees one consistent snapshot.
package query

import (
	"context"
	"time"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/focus"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/pkg/logger"
	"github.com/apex-hub/apex-campus-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET DASHBOARD STATS QUERY
// The focus dashboard header: XP, level, today's study minutes and task
// counts for the authenticated user.
// ══════════════════════════════════════════════════════════════════════════════

// GetDashboardStatsQuery identifies whose dashboard to load.
type GetDashboardStatsQuery struct {
	// UserID is the authenticated caller.
	UserID string
}

// Validate validates the query.
func (q GetDashboardStatsQuery) Validate() error {
	if q.UserID == "" {
		return shared.ValidationErrors{{Field: "user_id", Message: "authentication required"}}
	}
	return nil
}

// DashboardStats is the dashboard read model.
type DashboardStats struct {
	Name            string `json:"name"`
	XP              int    `json:"xp"`
	Level           int    `json:"level"`
	TodayMinutes    int    `json:"today_minutes"`
	PendingTasks    int    `json:"pending_tasks"`
	InProgressTasks int    `json:"in_progress_tasks"`
	CompletedTasks  int    `json:"completed_tasks"`
	TotalSessions   int    `json:"total_sessions"`
}

// GetDashboardStatsHandler handles the GetDashboardStatsQuery.
type GetDashboardStatsHandler struct {
	runner scope.Runner
	log    *logger.Logger
	loc    *time.Location
}

// NewGetDashboardStatsHandler creates a new GetDashboardStatsHandler.
// loc is the location in which "today" is evaluated.
func NewGetDashboardStatsHandler(runner scope.Runner, log *logger.Logger, loc *time.Location) *GetDashboardStatsHandler {
	if loc == nil {
		loc = timeutil.DefaultLocation
	}
	return &GetDashboardStatsHandler{runner: runner, log: log, loc: loc}
}

// Handle executes the dashboard stats query.
func (h *GetDashboardStatsHandler) Handle(ctx context.Context, q GetDashboardStatsQuery) (*DashboardStats, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	dayStart, dayEnd := timeutil.DayBounds(time.Now(), h.loc)

	return scope.Run(ctx, h.runner, h.log, scope.OpGetDashboardStats, func(ctx context.Context, s scope.Store) (*DashboardStats, error) {
		account, err := s.Users().GetByID(ctx, q.UserID)
		if err != nil {
			return nil, err
		}

		todayMinutes, err := s.Sessions().MinutesBetween(ctx, q.UserID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}

		pending, err := s.Tasks().CountByStatus(ctx, q.UserID, focus.StatusPending)
		if err != nil {
			return nil, err
		}
		inProgress, err := s.Tasks().CountByStatus(ctx, q.UserID, focus.StatusInProgress)
		if err != nil {
			return nil, err
		}
		completed, err := s.Tasks().CountByStatus(ctx, q.UserID, focus.StatusCompleted)
		if err != nil {
			return nil, err
		}

		sessions, err := s.Sessions().CountSessions(ctx, q.UserID)
		if err != nil {
			return nil, err
		}

		return &DashboardStats{
			Name:            account.DisplayName(),
			XP:              account.XP.Int(),
			Level:           account.Level.Int(),
			TodayMinutes:    todayMinutes,
			PendingTasks:    pending,
			InProgressTasks: inProgress,
			CompletedTasks:  completed,
			TotalSessions:   sessions,
		}, nil
	})
}
