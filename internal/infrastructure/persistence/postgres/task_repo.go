package postgres

import (
	"context"
	"fmt"

	"github.com/apex-hub/apex-campus-hub/internal/domain/focus"
	"github.com/apex-hub/apex-campus-hub/internal/domain/user"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// TASK REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// TaskRepository implements focus.TaskRepository for PostgreSQL.
type TaskRepository struct {
	q Querier
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(q Querier) *TaskRepository {
	return &TaskRepository{q: q}
}

// Create inserts a new pending task and reads back the assigned seq.
func (r *TaskRepository) Create(ctx context.Context, t *focus.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, title, category, estimated_time, priority, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq
	`

	err := r.q.QueryRow(ctx, query,
		t.ID,
		t.UserID,
		t.Title,
		t.Category,
		t.EstimatedMinutes,
		int(t.Priority),
		string(t.Status),
		t.CreatedAt,
	).Scan(&t.Seq)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// Start moves a task to in_progress. The WHERE clause carries both the
// task id and the owner; a non-owner simply matches zero rows.
func (r *TaskRepository) Start(ctx context.Context, taskID, userID string) (bool, error) {
	query := `
		UPDATE tasks
		SET status = 'in_progress'
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.q.Exec(ctx, query, taskID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to start task: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Complete moves a task to completed with the same ownership scoping as
// Start. With onlyIfNotCompleted the guard also skips already-completed
// rows, so repeats report applied=false instead of re-awarding.
func (r *TaskRepository) Complete(ctx context.Context, taskID, userID string, onlyIfNotCompleted bool) (bool, error) {
	query := `
		UPDATE tasks
		SET status = 'completed'
		WHERE id = $1 AND user_id = $2
	`
	if onlyIfNotCompleted {
		query += ` AND status <> 'completed'`
	}

	tag, err := r.q.Exec(ctx, query, taskID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to complete task: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Board returns the grouped task view for one owner.
func (r *TaskRepository) Board(ctx context.Context, userID string) (*focus.Board, error) {
	openQuery := `
		SELECT id, seq, user_id, title, category, estimated_time, priority, status, created_at
		FROM tasks
		WHERE user_id = $1 AND status = $2
		ORDER BY priority DESC, seq DESC
	`
	completedQuery := `
		SELECT id, seq, user_id, title, category, estimated_time, priority, status, created_at
		FROM tasks
		WHERE user_id = $1 AND status = $2
		ORDER BY seq DESC
		LIMIT $3
	`

	board := &focus.Board{}

	pending, err := r.queryTasks(ctx, openQuery, userID, string(focus.StatusPending))
	if err != nil {
		return nil, err
	}
	board.Pending = pending

	inProgress, err := r.queryTasks(ctx, openQuery, userID, string(focus.StatusInProgress))
	if err != nil {
		return nil, err
	}
	board.InProgress = inProgress

	completed, err := r.queryTasks(ctx, completedQuery, userID, string(focus.StatusCompleted), focus.CompletedBoardLimit)
	if err != nil {
		return nil, err
	}
	board.Completed = completed

	return board, nil
}

// CountByStatus returns the number of the owner's tasks in the status.
func (r *TaskRepository) CountByStatus(ctx context.Context, userID string, status focus.TaskStatus) (int, error) {
	query := `SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND status = $2`

	var count int
	if err := r.q.QueryRow(ctx, query, userID, string(status)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	return count, nil
}

// CompletedCategoryCounts groups the owner's completed tasks by category.
func (r *TaskRepository) CompletedCategoryCounts(ctx context.Context, userID string) ([]focus.CategoryCount, error) {
	query := `
		SELECT category, COUNT(*)
		FROM tasks
		WHERE user_id = $1 AND status = 'completed'
		GROUP BY category
		ORDER BY COUNT(*) DESC, category ASC
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query category counts: %w", err)
	}
	defer rows.Close()

	var counts []focus.CategoryCount
	for rows.Next() {
		var c focus.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// queryTasks runs a task query and scans the result list.
func (r *TaskRepository) queryTasks(ctx context.Context, query string, args ...interface{}) ([]*focus.Task, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*focus.Task
	for rows.Next() {
		t, err := r.scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// scanTask scans a single task row.
func (r *TaskRepository) scanTask(row pgx.Row) (*focus.Task, error) {
	var t focus.Task
	var priority int
	var status string

	err := row.Scan(
		&t.ID,
		&t.Seq,
		&t.UserID,
		&t.Title,
		&t.Category,
		&t.EstimatedMinutes,
		&priority,
		&status,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}

	t.Priority = focus.Priority(priority)
	t.Status = focus.TaskStatus(status)
	return &t, nil
}
