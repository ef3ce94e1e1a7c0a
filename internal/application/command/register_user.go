package command

import (
	"context"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/internal/domain/user"
	"github.com/apex-hub/apex-campus-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTER USER COMMAND
// Creates a member account. Email format, password strength and the
// duplicate-email check all fail before or inside one scope; the bcrypt
// hash is computed outside the transaction.
// ══════════════════════════════════════════════════════════════════════════════

// RegisterUserCommand contains the registration form data.
type RegisterUserCommand struct {
	FirstName       string
	LastName        string
	Email           string
	PhoneNumber     string
	Branch          string
	Password        string
	ConfirmPassword string
}

// Validate validates the command.
func (c RegisterUserCommand) Validate() error {
	var errs shared.ValidationErrors
	if c.FirstName == "" {
		errs = append(errs, shared.FieldError{Field: "first_name", Message: "first name is required"})
	}
	if _, err := shared.NewEmail(c.Email); err != nil {
		errs = append(errs, shared.FieldError{Field: "email", Message: "a valid email is required"})
	}
	if msg, ok := user.CheckPasswordStrength(c.Password); !ok {
		errs = append(errs, shared.FieldError{Field: "password", Message: msg})
	}
	if c.Password != c.ConfirmPassword {
		errs = append(errs, shared.FieldError{Field: "confirm_password", Message: "passwords do not match"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RegisterUserResult contains the created account.
type RegisterUserResult struct {
	User *user.User
}

// RegisterUserHandler handles the RegisterUserCommand.
type RegisterUserHandler struct {
	runner    scope.Runner
	publisher shared.EventPublisher
	log       *logger.Logger
}

// NewRegisterUserHandler creates a new RegisterUserHandler.
func NewRegisterUserHandler(runner scope.Runner, publisher shared.EventPublisher, log *logger.Logger) *RegisterUserHandler {
	return &RegisterUserHandler{runner: runner, publisher: publisher, log: log}
}

// Handle executes the register user command.
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*RegisterUserResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	email, err := shared.NewEmail(cmd.Email)
	if err != nil {
		return nil, err
	}

	account, err := user.NewUser(email, cmd.FirstName, cmd.LastName, cmd.PhoneNumber, cmd.Branch, cmd.Password)
	if err != nil {
		return nil, err
	}

	result, err := scope.Run(ctx, h.runner, h.log, scope.OpRegisterUser, func(ctx context.Context, s scope.Store) (*RegisterUserResult, error) {
		if err := s.Users().Create(ctx, account); err != nil {
			return nil, err
		}
		return &RegisterUserResult{User: account}, nil
	})
	if err != nil {
		return nil, err
	}

	h.log.Info("user registered",
		logger.UserID(account.ID),
		logger.Email(account.Email.String()),
	)
	if h.publisher != nil {
		h.publisher.Publish(shared.NewUserRegisteredEvent(account.ID, account.Email.String()))
	}

	return result, nil
}
