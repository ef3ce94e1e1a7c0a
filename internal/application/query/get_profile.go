package query

import (
	"context"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/internal/domain/user"
	"github.com/apex-hub/apex-campus-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET PROFILE QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetProfileQuery identifies whose profile to load.
type GetProfileQuery struct {
	// UserID is the authenticated caller.
	UserID string
}

// Validate validates the query.
func (q GetProfileQuery) Validate() error {
	if q.UserID == "" {
		return shared.ValidationErrors{{Field: "user_id", Message: "authentication required"}}
	}
	return nil
}

// GetProfileHandler handles the GetProfileQuery.
type GetProfileHandler struct {
	runner scope.Runner
	log    *logger.Logger
}

// NewGetProfileHandler creates a new GetProfileHandler.
func NewGetProfileHandler(runner scope.Runner, log *logger.Logger) *GetProfileHandler {
	return &GetProfileHandler{runner: runner, log: log}
}

// Handle executes the profile query.
func (h *GetProfileHandler) Handle(ctx context.Context, q GetProfileQuery) (*user.User, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	return scope.Run(ctx, h.runner, h.log, scope.OpGetProfile, func(ctx context.Context, s scope.Store) (*user.User, error) {
		return s.Users().GetByID(ctx, q.UserID)
	})
}
