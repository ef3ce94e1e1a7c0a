package command

import (
	"context"
	"time"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/community"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/internal/domain/user"
	"github.com/apex-hub/apex-campus-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADMIN GATE
// ══════════════════════════════════════════════════════════════════════════════

// AdminChecker reports whether an email is on the configured admin
// allow-list. The allow-list supplements the stored role so the first
// admins can be bootstrapped from config alone.
type AdminChecker func(email string) bool

// isAdmin combines the stored role with the allow-list.
func isAdmin(u *user.User, check AdminChecker) bool {
	if u.Role == user.RoleAdmin {
		return true
	}
	return check != nil && check(u.Email.String())
}

// ══════════════════════════════════════════════════════════════════════════════
// PUBLISH EVENT COMMAND
// Publishes a campus event announcement. Admin only.
// ══════════════════════════════════════════════════════════════════════════════

// PublishEventCommand contains the event form data.
type PublishEventCommand struct {
	// UserID is the authenticated caller.
	UserID string

	Title       string
	Description string
	Location    string
	StartsAt    time.Time
}

// Validate validates the command.
func (c PublishEventCommand) Validate() error {
	var errs shared.ValidationErrors
	if c.UserID == "" {
		errs = append(errs, shared.FieldError{Field: "user_id", Message: "authentication required"})
	}
	if c.Title == "" {
		errs = append(errs, shared.FieldError{Field: "title", Message: "title is required"})
	}
	if c.StartsAt.IsZero() {
		errs = append(errs, shared.FieldError{Field: "starts_at", Message: "start time is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PublishEventResult contains the published event.
type PublishEventResult struct {
	Event *community.Event
}

// PublishEventHandler handles the PublishEventCommand.
type PublishEventHandler struct {
	runner    scope.Runner
	publisher shared.EventPublisher
	log       *logger.Logger
	admins    AdminChecker
}

// NewPublishEventHandler creates a new PublishEventHandler.
func NewPublishEventHandler(runner scope.Runner, publisher shared.EventPublisher, log *logger.Logger, admins AdminChecker) *PublishEventHandler {
	return &PublishEventHandler{runner: runner, publisher: publisher, log: log, admins: admins}
}

// Handle executes the publish event command.
func (h *PublishEventHandler) Handle(ctx context.Context, cmd PublishEventCommand) (*PublishEventResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	result, err := scope.Run(ctx, h.runner, h.log, scope.OpPublishEvent, func(ctx context.Context, s scope.Store) (*PublishEventResult, error) {
		actor, err := s.Users().GetByID(ctx, cmd.UserID)
		if err != nil {
			return nil, err
		}
		if !isAdmin(actor, h.admins) {
			return nil, shared.NewDomainError("community", "PublishEvent", shared.ErrForbidden, "only admins can publish events")
		}

		event, err := community.NewEvent(cmd.Title, cmd.Description, cmd.Location, cmd.StartsAt, actor.ID)
		if err != nil {
			return nil, err
		}
		if err := s.Events().Create(ctx, event); err != nil {
			return nil, err
		}

		return &PublishEventResult{Event: event}, nil
	})
	if err != nil {
		return nil, err
	}

	h.log.Info("event published", logger.UserID(cmd.UserID), logger.String("event_id", result.Event.ID))
	if h.publisher != nil {
		h.publisher.Publish(shared.NewBaseEvent(shared.EventEventPublished, result.Event.ID))
	}

	return result, nil
}
