// Package focus contains the study-focus domain model: personal tasks and
// recorded study sessions, plus the XP award rules tied to them.
package focus

import (
	"strings"
	"time"

	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/internal/domain/user"

	"github.com/google/uuid"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	// StatusPending is the initial state of every task.
	StatusPending TaskStatus = "pending"
	// StatusInProgress marks a task the owner has started.
	StatusInProgress TaskStatus = "in_progress"
	// StatusCompleted is terminal and triggers the XP award.
	StatusCompleted TaskStatus = "completed"
)

// IsValid checks that the status is one of the known values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority is the 1..3 urgency scale (3 is highest).
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// IsValid checks that the priority is within the 1..3 scale.
func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// TaskCompletionXP is awarded to the owner when a task is completed.
const TaskCompletionXP user.XP = 50

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: TASK
// ══════════════════════════════════════════════════════════════════════════════

// Task is a personal to-do item on the focus board. Tasks are never
// deleted; completed ones age out of the board view instead.
type Task struct {
	// ID is the unique identifier (UUID in string form).
	ID string

	// Seq is a storage-assigned monotone sequence number used for
	// creation-order sorting. Zero until persisted.
	Seq int64

	// UserID is the owning account. Start/Complete are scoped by it.
	UserID string

	// Title is the short task description.
	Title string

	// Category groups tasks for the analytics breakdown.
	Category string

	// EstimatedMinutes is the owner's effort estimate.
	EstimatedMinutes int

	// Priority on the 1..3 scale.
	Priority Priority

	// Status is the current lifecycle state.
	Status TaskStatus

	// CreatedAt is when the task was created.
	CreatedAt time.Time
}

// DefaultCategory is used when a task is created without one.
const DefaultCategory = "General"

// NewTask creates a pending task for the given owner.
func NewTask(userID, title, category string, estimatedMinutes int, priority Priority) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.WrapError("focus", "NewTask", shared.ErrEmptyValue, "task title is required", nil)
	}
	if userID == "" {
		return nil, shared.WrapError("focus", "NewTask", shared.ErrEmptyValue, "task owner is required", nil)
	}
	if !priority.IsValid() {
		priority = PriorityMedium
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}
	if estimatedMinutes < 0 {
		estimatedMinutes = 0
	}

	return &Task{
		ID:               uuid.NewString(),
		UserID:           userID,
		Title:            title,
		Category:         category,
		EstimatedMinutes: estimatedMinutes,
		Priority:         priority,
		Status:           StatusPending,
		CreatedAt:        time.Now().UTC(),
	}, nil
}

// IsCompleted reports whether the task is in the terminal state.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// Board is the grouped task view: open work first, then a bounded tail of
// recently completed tasks.
type Board struct {
	// Pending and InProgress are ordered priority descending, then newest
	// first within the same priority.
	Pending    []*Task
	InProgress []*Task

	// Completed holds at most CompletedBoardLimit tasks, newest first.
	Completed []*Task
}

// CompletedBoardLimit bounds the completed column of the board.
const CompletedBoardLimit = 10
