// Package command contains write operations (CQRS - Commands).
// Every handler runs its storage work inside one transaction scope.
package command

import (
	"context"
	"fmt"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/focus"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD TASK COMMAND
// Creates a pending task on the caller's focus board.
// ══════════════════════════════════════════════════════════════════════════════

// AddTaskCommand contains the data to create a task.
type AddTaskCommand struct {
	// UserID is the authenticated owner. Set by the transport layer from
	// the request identity, never from the request body.
	UserID string

	// Title is the task description.
	Title string

	// Category groups the task for analytics. Defaults to "General".
	Category string

	// EstimatedMinutes is the owner's effort estimate.
	EstimatedMinutes int

	// Priority on the 1..3 scale. Defaults to medium.
	Priority int
}

// Validate validates the command.
func (c AddTaskCommand) Validate() error {
	var errs shared.ValidationErrors
	if c.UserID == "" {
		errs = append(errs, shared.FieldError{Field: "user_id", Message: "authentication required"})
	}
	if c.Title == "" {
		errs = append(errs, shared.FieldError{Field: "title", Message: "title is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AddTaskResult contains the created task.
type AddTaskResult struct {
	Task *focus.Task
}

// AddTaskHandler handles the AddTaskCommand.
type AddTaskHandler struct {
	runner scope.Runner
	log    *logger.Logger
}

// NewAddTaskHandler creates a new AddTaskHandler.
func NewAddTaskHandler(runner scope.Runner, log *logger.Logger) *AddTaskHandler {
	return &AddTaskHandler{runner: runner, log: log}
}

// Handle executes the add task command.
func (h *AddTaskHandler) Handle(ctx context.Context, cmd AddTaskCommand) (*AddTaskResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	task, err := focus.NewTask(cmd.UserID, cmd.Title, cmd.Category, cmd.EstimatedMinutes, focus.Priority(cmd.Priority))
	if err != nil {
		return nil, fmt.Errorf("add_task: %w", err)
	}

	result, err := scope.Run(ctx, h.runner, h.log, scope.OpAddTask, func(ctx context.Context, s scope.Store) (*AddTaskResult, error) {
		if err := s.Tasks().Create(ctx, task); err != nil {
			return nil, err
		}
		return &AddTaskResult{Task: task}, nil
	})
	if err != nil {
		return nil, err
	}

	h.log.Info("task created",
		logger.UserID(cmd.UserID),
		logger.TaskID(task.ID),
	)

	return result, nil
}
