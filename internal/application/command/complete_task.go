package command

import (
	"context"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/focus"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMPLETE TASK COMMAND
// Marks a task completed and awards the owner 50 XP in the same
// transaction scope: either both the status change and the XP award
// persist, or neither does.
//
// The status update is unconditional by default, so completing an
// already-completed task awards again. IdempotentCompletion switches the
// update to skip completed rows, making repeats a no-op.
// ══════════════════════════════════════════════════════════════════════════════

// CompleteTaskCommand contains the data to complete a task.
type CompleteTaskCommand struct {
	// UserID is the authenticated caller.
	UserID string

	// TaskID is the task to complete.
	TaskID string
}

// Validate validates the command.
func (c CompleteTaskCommand) Validate() error {
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

// CompleteTaskResult reports the transition and the XP state after it.
type CompleteTaskResult struct {
	// Applied is false when the update matched no rows: unknown task,
	// someone else's task, or (with idempotent completion) a repeat.
	Applied bool

	// XPAwarded is the amount granted; zero when not applied.
	XPAwarded int

	// NewXP and NewLevel are the owner's values after the award. Only
	// meaningful when Applied is true.
	NewXP    int
	NewLevel int
}

// CompleteTaskHandler handles the CompleteTaskCommand.
type CompleteTaskHandler struct {
	runner     scope.Runner
	publisher  shared.EventPublisher
	log        *logger.Logger
	idempotent bool
}

// NewCompleteTaskHandler creates a new CompleteTaskHandler. idempotent
// enables the repeat-completion guard.
func NewCompleteTaskHandler(runner scope.Runner, publisher shared.EventPublisher, log *logger.Logger, idempotent bool) *CompleteTaskHandler {
	return &CompleteTaskHandler{
		runner:     runner,
		publisher:  publisher,
		log:        log,
		idempotent: idempotent,
	}
}

// Handle executes the complete task command.
func (h *CompleteTaskHandler) Handle(ctx context.Context, cmd CompleteTaskCommand) (*CompleteTaskResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	result, err := scope.Run(ctx, h.runner, h.log, scope.OpCompleteTask, func(ctx context.Context, s scope.Store) (*CompleteTaskResult, error) {
		applied, err := s.Tasks().Complete(ctx, cmd.TaskID, cmd.UserID, h.idempotent)
		if err != nil {
			return nil, err
		}
		if !applied {
			return &CompleteTaskResult{Applied: false}, nil
		}

		award, err := s.Users().AddXP(ctx, cmd.UserID, focus.TaskCompletionXP)
		if err != nil {
			return nil, err
		}

		return &CompleteTaskResult{
			Applied:   true,
			XPAwarded: award.Delta.Int(),
			NewXP:     award.NewXP.Int(),
			NewLevel:  award.NewLevel.Int(),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if !result.Applied {
		h.log.Warn("complete task matched no rows",
			logger.UserID(cmd.UserID),
			logger.TaskID(cmd.TaskID),
		)
		return result, nil
	}

	h.log.Info("task completed",
		logger.UserID(cmd.UserID),
		logger.TaskID(cmd.TaskID),
		logger.XPAmount(result.XPAwarded),
	)
	if h.publisher != nil {
		h.publisher.Publish(shared.NewTaskCompletedEvent(cmd.TaskID, cmd.UserID, result.XPAwarded))
	}

	return result, nil
}
