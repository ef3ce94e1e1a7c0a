package command

import (
	"context"
	"strings"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/internal/domain/user"
	"github.com/apex-hub/apex-campus-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE PROFILE COMMAND
// Replaces the caller's mutable profile fields. Callers can only ever
// edit their own profile; the target id comes from the request identity.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateProfileCommand contains the profile form data.
type UpdateProfileCommand struct {
	// UserID is the authenticated caller.
	UserID string

	FirstName   string
	LastName    string
	PhoneNumber string
	Bio         string
	Branch      string
}

// Validate validates the command.
func (c UpdateProfileCommand) Validate() error {
	var errs shared.ValidationErrors
	if c.UserID == "" {
		errs = append(errs, shared.FieldError{Field: "user_id", Message: "authentication required"})
	}
	if strings.TrimSpace(c.FirstName) == "" {
		errs = append(errs, shared.FieldError{Field: "first_name", Message: "first name is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateProfileResult contains the refreshed account.
type UpdateProfileResult struct {
	User *user.User
}

// UpdateProfileHandler handles the UpdateProfileCommand.
type UpdateProfileHandler struct {
	runner scope.Runner
	log    *logger.Logger
}

// NewUpdateProfileHandler creates a new UpdateProfileHandler.
func NewUpdateProfileHandler(runner scope.Runner, log *logger.Logger) *UpdateProfileHandler {
	return &UpdateProfileHandler{runner: runner, log: log}
}

// Handle executes the update profile command.
func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (*UpdateProfileResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	update := user.ProfileUpdate{
		FirstName:   strings.TrimSpace(cmd.FirstName),
		LastName:    strings.TrimSpace(cmd.LastName),
		PhoneNumber: strings.TrimSpace(cmd.PhoneNumber),
		Bio:         strings.TrimSpace(cmd.Bio),
		Branch:      strings.TrimSpace(cmd.Branch),
	}

	result, err := scope.Run(ctx, h.runner, h.log, scope.OpUpdateProfile, func(ctx context.Context, s scope.Store) (*UpdateProfileResult, error) {
		if err := s.Users().UpdateProfile(ctx, cmd.UserID, update); err != nil {
			return nil, err
		}
		refreshed, err := s.Users().GetByID(ctx, cmd.UserID)
		if err != nil {
			return nil, err
		}
		return &UpdateProfileResult{User: refreshed}, nil
	})
	if err != nil {
		return nil, err
	}

	h.log.Info("profile updated", logger.UserID(cmd.UserID))
	return result, nil
}
