package command

import (
	"context"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// START TASK COMMAND
// Moves a task to in_progress. The update is scoped by task id AND owner;
// when nothing matches (unknown id or someone else's task) the command
// succeeds with Applied=false rather than failing. That keeps the board
// endpoint simple and leaks nothing about other users' task ids.
// ══════════════════════════════════════════════════════════════════════════════

// StartTaskCommand contains the data to start a task.
type StartTaskCommand struct {
	// UserID is the authenticated caller.
	UserID string

	// TaskID is the task to start.
	TaskID string
}

// Validate validates the command.
func (c StartTaskCommand) Validate() error {
	var errs shared.ValidationErrors
	if c.UserID == "" {
		errs = append(errs, shared.FieldError{Field: "user_id", Message: "authentication required"})
	}
	if c.TaskID == "" {
		errs = append(errs, shared.FieldError{Field: "task_id", Message: "task id is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// StartTaskResult reports whether the transition happened.
type StartTaskResult struct {
	Applied bool
}

// StartTaskHandler handles the StartTaskCommand.
type StartTaskHandler struct {
	runner scope.Runner
	log    *logger.Logger
}

// NewStartTaskHandler creates a new StartTaskHandler.
func NewStartTaskHandler(runner scope.Runner, log *logger.Logger) *StartTaskHandler {
	return &StartTaskHandler{runner: runner, log: log}
}

// Handle executes the start task command.
func (h *StartTaskHandler) Handle(ctx context.Context, cmd StartTaskCommand) (*StartTaskResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	result, err := scope.Run(ctx, h.runner, h.log, scope.OpStartTask, func(ctx context.Context, s scope.Store) (*StartTaskResult, error) {
		applied, err := s.Tasks().Start(ctx, cmd.TaskID, cmd.UserID)
		if err != nil {
			return nil, err
		}
		return &StartTaskResult{Applied: applied}, nil
	})
	if err != nil {
		return nil, err
	}

	if !result.Applied {
		h.log.Warn("start task matched no rows",
			logger.UserID(cmd.UserID),
			logger.TaskID(cmd.TaskID),
		)
	}

	return result, nil
}
