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
// LOGIN USER COMMAND
// Verifies credentials. Unknown email and wrong password produce the
// same error so the login form cannot be used to probe for accounts.
// Token issuance lives in the transport layer, not here.
// ══════════════════════════════════════════════════════════════════════════════

// LoginUserCommand contains the login form data.
type LoginUserCommand struct {
	Email    string
	Password string
}

// Validate validates the command.
func (c LoginUserCommand) Validate() error {
	var errs shared.ValidationErrors
	if strings.TrimSpace(c.Email) == "" {
		errs = append(errs, shared.FieldError{Field: "email", Message: "email is required"})
	}
	if c.Password == "" {
		errs = append(errs, shared.FieldError{Field: "password", Message: "password is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LoginUserResult contains the authenticated account.
type LoginUserResult struct {
	User *user.User
}

// LoginUserHandler handles the LoginUserCommand.
type LoginUserHandler struct {
	runner scope.Runner
	log    *logger.Logger
}

// NewLoginUserHandler creates a new LoginUserHandler.
func NewLoginUserHandler(runner scope.Runner, log *logger.Logger) *LoginUserHandler {
	return &LoginUserHandler{runner: runner, log: log}
}

// Handle executes the login command.
func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*LoginUserResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	normalized := strings.ToLower(strings.TrimSpace(cmd.Email))

	account, err := scope.Run(ctx, h.runner, h.log, scope.OpLoginUser, func(ctx context.Context, s scope.Store) (*user.User, error) {
		u, err := s.Users().GetByEmail(ctx, normalized)
		if err != nil {
			if shared.IsNotFound(err) {
				return nil, user.ErrBadCredentials
			}
			return nil, err
		}
		return u, nil
	})
	if err != nil {
		return nil, err
	}

	if !account.CheckPassword(cmd.Password) {
		h.log.Warn("login failed", logger.Email(normalized))
		return nil, user.ErrBadCredentials
	}

	return &LoginUserResult{User: account}, nil
}
