package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/apex-hub/apex-campus-hub/internal/domain/focus"
	"github.com/apex-hub/apex-campus-hub/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// SESSION REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// SessionRepository implements focus.SessionRepository for PostgreSQL.
// Study sessions are append-only; there is no update or delete path.
type SessionRepository struct {
	q Querier
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(q Querier) *SessionRepository {
	return &SessionRepository{q: q}
}

// Create appends a session record.
func (r *SessionRepository) Create(ctx context.Context, s *focus.StudySession) error {
	query := `
		INSERT INTO study_sessions (id, user_id, duration_minutes, mode, completed_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.q.Exec(ctx, query,
		s.ID,
		s.UserID,
		s.DurationMinutes,
		string(s.Mode),
		s.CompletedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to record session: %w", err)
	}

	return nil
}

// MinutesBetween sums session minutes over a half-open time window. The
// range predicate keeps the (user_id, completed_at) index usable, unlike
// a DATE() cast on the column.
func (r *SessionRepository) MinutesBetween(ctx context.Context, userID string, from, to time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(duration_minutes), 0)
		FROM study_sessions
		WHERE user_id = $1 AND completed_at >= $2 AND completed_at < $3
	`

	var minutes int
	if err := r.q.QueryRow(ctx, query, userID, from, to).Scan(&minutes); err != nil {
		return 0, fmt.Errorf("failed to sum session minutes: %w", err)
	}

	return minutes, nil
}

// TotalMinutes sums all of the owner's session minutes.
func (r *SessionRepository) TotalMinutes(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COALESCE(SUM(duration_minutes), 0)
		FROM study_sessions
		WHERE user_id = $1
	`

	var minutes int
	if err := r.q.QueryRow(ctx, query, userID).Scan(&minutes); err != nil {
		return 0, fmt.Errorf("failed to sum total minutes: %w", err)
	}

	return minutes, nil
}

// CountSessions returns the owner's all-time session count.
func (r *SessionRepository) CountSessions(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM study_sessions WHERE user_id = $1`

	var count int
	if err := r.q.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	return count, nil
}
