package http

import (
	"net/http"
	"time"

	"github.com/apex-hub/apex-campus-hub/internal/application/command"
	"github.com/apex-hub/apex-campus-hub/internal/application/query"
	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/focus"
	"github.com/apex-hub/apex-campus-hub/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// FOCUS READ MODELS
// ══════════════════════════════════════════════════════════════════════════════

type taskView struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Category         string    `json:"category"`
	EstimatedMinutes int       `json:"estimated_minutes"`
	Priority         int       `json:"priority"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

func toTaskView(t *focus.Task) taskView {
	return taskView{
		ID:               t.ID,
		Title:            t.Title,
		Category:         t.Category,
		EstimatedMinutes: t.EstimatedMinutes,
		Priority:         int(t.Priority),
		Status:           string(t.Status),
		CreatedAt:        t.CreatedAt,
	}
}

func toTaskViews(tasks []*focus.Task) []taskView {
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, toTaskView(t))
	}
	return views
}

type boardView struct {
	Pending    []taskView `json:"pending"`
	InProgress []taskView `json:"in_progress"`
	Completed  []taskView `json:"completed"`
}

type sessionView struct {
	ID              string    `json:"id"`
	DurationMinutes int       `json:"duration_minutes"`
	Mode            string    `json:"mode"`
	CompletedAt     time.Time `json:"completed_at"`
}

type leaderboardEntryView struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	XP          int    `json:"xp"`
	Level       int    `json:"level"`
}

func toLeaderboardViews(entries []user.LeaderboardEntry) []leaderboardEntryView {
	views := make([]leaderboardEntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, leaderboardEntryView{
			Rank:        e.Rank,
			UserID:      e.UserID,
			DisplayName: e.DisplayName,
			XP:          e.XP,
			Level:       e.Level,
		})
	}
	return views
}

// ══════════════════════════════════════════════════════════════════════════════
// FOCUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleDashboard returns XP, level, today's minutes and task counts.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.deps.GetDashboardStats.Handle(r.Context(), query.GetDashboardStatsQuery{
		UserID: authenticatedUserID(r.Context()),
	})
	if err != nil {
		s.respondError(w, r, scope.OpGetDashboardStats, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// handleTaskBoard returns the three-column task board.
func (s *Server) handleTaskBoard(w http.ResponseWriter, r *http.Request) {
	board, err := s.deps.GetTaskBoard.Handle(r.Context(), query.GetTaskBoardQuery{
		UserID: authenticatedUserID(r.Context()),
	})
	if err != nil {
		s.respondError(w, r, scope.OpGetTaskBoard, err)
		return
	}

	writeJSON(w, http.StatusOK, boardView{
		Pending:    toTaskViews(board.Pending),
		InProgress: toTaskViews(board.InProgress),
		Completed:  toTaskViews(board.Completed),
	})
}

type addTaskRequest struct {
	Title            string `json:"title"`
	Category         string `json:"category"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	Priority         int    `json:"priority"`
}

// handleAddTask creates a pending task.
func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req addTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON")
		return
	}

	result, err := s.deps.AddTask.Handle(r.Context(), command.AddTaskCommand{
		UserID:           authenticatedUserID(r.Context()),
		Title:            req.Title,
		Category:         req.Category,
		EstimatedMinutes: req.EstimatedMinutes,
		Priority:         req.Priority,
	})
	if err != nil {
		s.respondError(w, r, scope.OpAddTask, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTaskView(result.Task))
}

// handleStartTask moves a task to in_progress. A task that is not the
// caller's is reported as applied=false, not as an error.
func (s *Server) handleStartTask(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.StartTask.Handle(r.Context(), command.StartTaskCommand{
		UserID: authenticatedUserID(r.Context()),
		TaskID: r.PathValue("id"),
	})
	if err != nil {
		s.respondError(w, r, scope.OpStartTask, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"applied": result.Applied})
}

type completeTaskResponse struct {
	Applied   bool `json:"applied"`
	XPAwarded int  `json:"xp_awarded"`
	NewXP     int  `json:"new_xp,omitempty"`
	NewLevel  int  `json:"new_level,omitempty"`
}

// handleCompleteTask marks a task completed and awards XP.
func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.CompleteTask.Handle(r.Context(), command.CompleteTaskCommand{
		UserID: authenticatedUserID(r.Context()),
		TaskID: r.PathValue("id"),
	})
	if err != nil {
		s.respondError(w, r, scope.OpCompleteTask, err)
		return
	}

	writeJSON(w, http.StatusOK, completeTaskResponse{
		Applied:   result.Applied,
		XPAwarded: result.XPAwarded,
		NewXP:     result.NewXP,
		NewLevel:  result.NewLevel,
	})
}

type recordSessionRequest struct {
	DurationMinutes int    `json:"duration_minutes"`
	Mode            string `json:"mode"`
}

type recordSessionResponse struct {
	Session  sessionView `json:"session"`
	XPGained int         `json:"xp_gained"`
	NewXP    int         `json:"new_xp"`
	NewLevel int         `json:"new_level"`
}

// handleRecordSession saves a finished study session.
func (s *Server) handleRecordSession(w http.ResponseWriter, r *http.Request) {
	var req recordSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON")
		return
	}

	result, err := s.deps.RecordSession.Handle(r.Context(), command.RecordSessionCommand{
		UserID:          authenticatedUserID(r.Context()),
		DurationMinutes: req.DurationMinutes,
		Mode:            req.Mode,
	})
	if err != nil {
		s.respondError(w, r, scope.OpRecordSession, err)
		return
	}

	writeJSON(w, http.StatusCreated, recordSessionResponse{
		Session: sessionView{
			ID:              result.Session.ID,
			DurationMinutes: result.Session.DurationMinutes,
			Mode:            string(result.Session.Mode),
			CompletedAt:     result.Session.CompletedAt,
		},
		XPGained: result.XPGained,
		NewXP:    result.NewXP,
		NewLevel: result.NewLevel,
	})
}

// handleAnalytics returns the lifetime study statistics.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := s.deps.GetAnalytics.Handle(r.Context(), query.GetAnalyticsQuery{
		UserID: authenticatedUserID(r.Context()),
	})
	if err != nil {
		s.respondError(w, r, scope.OpGetAnalytics, err)
		return
	}

	writeJSON(w, http.StatusOK, analytics)
}

// handleLeaderboard returns the top accounts by XP.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.deps.GetLeaderboard.Handle(r.Context(), query.GetLeaderboardQuery{})
	if err != nil {
		s.respondError(w, r, scope.OpGetLeaderboard, err)
		return
	}

	writeJSON(w, http.StatusOK, toLeaderboardViews(entries))
}
