package focus

import (
	"context"
	"time"
)

// CategoryCount is one bucket of the completed-task category breakdown.
type CategoryCount struct {
	Category string
	Count    int
}

// TaskRepository persists focus tasks. Implementations are bound to one
// transaction scope.
type TaskRepository interface {
	// Create inserts a new pending task. The storage assigns Seq.
	Create(ctx context.Context, t *Task) error

	// Start moves a task to in_progress, scoped by id AND owner. Returns
	// applied=false (not an error) when no row matched, whether the task
	// does not exist or belongs to someone else.
	Start(ctx context.Context, taskID, userID string) (applied bool, err error)

	// Complete moves a task to completed, scoped by id AND owner, with the
	// same applied semantics as Start. When onlyIfNotCompleted is set the
	// update additionally requires status <> completed, making repeat
	// completions report applied=false.
	Complete(ctx context.Context, taskID, userID string, onlyIfNotCompleted bool) (applied bool, err error)

	// Board returns the grouped task view for one owner: pending and
	// in_progress ordered priority DESC then seq DESC, completed ordered
	// seq DESC limited to CompletedBoardLimit.
	Board(ctx context.Context, userID string) (*Board, error)

	// CountByStatus returns the number of the owner's tasks in the status.
	CountByStatus(ctx context.Context, userID string, status TaskStatus) (int, error)

	// CompletedCategoryCounts groups the owner's completed tasks by
	// category. Empty when the owner has no completed tasks.
	CompletedCategoryCounts(ctx context.Context, userID string) ([]CategoryCount, error)
}

// SessionRepository persists study sessions. Implementations are bound to
// one transaction scope.
type SessionRepository interface {
	// Create appends a session record.
	Create(ctx context.Context, s *StudySession) error

	// MinutesBetween sums the owner's session minutes with
	// completed_at >= from AND completed_at < to. Zero when none.
	MinutesBetween(ctx context.Context, userID string, from, to time.Time) (int, error)

	// TotalMinutes sums all of the owner's session minutes. Zero when none.
	TotalMinutes(ctx context.Context, userID string) (int, error)

	// CountSessions returns the owner's all-time session count.
	CountSessions(ctx context.Context, userID string) (int, error)
}
