package query

import (
	"context"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/focus"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET TASK BOARD QUERY
// The grouped task view: open work ordered by priority then recency,
// plus a bounded tail of recently completed tasks.
// ══════════════════════════════════════════════════════════════════════════════

// GetTaskBoardQuery identifies whose board to load.
type GetTaskBoardQuery struct {
	// UserID is the authenticated caller.
	UserID string
}

// Validate validates the query.
func (q GetTaskBoardQuery) Validate() error {
	if q.UserID == "" {
		return shared.ValidationErrors{{Field: "user_id", Message: "authentication required"}}
	}
	return nil
}

// GetTaskBoardHandler handles the GetTaskBoardQuery.
type GetTaskBoardHandler struct {
	runner scope.Runner
	log    *logger.Logger
}

// NewGetTaskBoardHandler creates a new GetTaskBoardHandler.
func NewGetTaskBoardHandler(runner scope.Runner, log *logger.Logger) *GetTaskBoardHandler {
	return &GetTaskBoardHandler{runner: runner, log: log}
}

// Handle executes the task board query.
func (h *GetTaskBoardHandler) Handle(ctx context.Context, q GetTaskBoardQuery) (*focus.Board, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	return scope.Run(ctx, h.runner, h.log, scope.OpGetTaskBoard, func(ctx context.Context, s scope.Store) (*focus.Board, error) {
		return s.Tasks().Board(ctx, q.UserID)
	})
}
