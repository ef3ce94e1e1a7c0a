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
// RECORD SESSION COMMAND
// Appends a completed study session and awards 10 XP per minute in the
// same transaction scope. The completion timestamp is server-assigned;
// the client reports only the duration and timer mode.
// ══════════════════════════════════════════════════════════════════════════════

// RecordSessionCommand contains the data to record a study session.
type RecordSessionCommand struct {
	// UserID is the authenticated caller.
	UserID string

	// DurationMinutes is the client-reported session length.
	DurationMinutes int

	// Mode is the timer preset label.
	Mode string
}

// Validate validates the command.
func (c RecordSessionCommand) Validate() error {
	var errs shared.ValidationErrors
	if c.UserID == "" {
		errs = append(errs, shared.FieldError{Field: "user_id", Message: "authentication required"})
	}
	if c.DurationMinutes <= 0 {
		errs = append(errs, shared.FieldError{Field: "duration_minutes", Message: "duration must be positive"})
	} else if c.DurationMinutes > focus.MaxSessionMinutes {
		errs = append(errs, shared.FieldError{
			Field:   "duration_minutes",
			Message: fmt.Sprintf("duration cannot exceed %d minutes", focus.MaxSessionMinutes),
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RecordSessionResult contains the recorded session and the XP state.
type RecordSessionResult struct {
	Session  *focus.StudySession
	XPGained int
	NewXP    int
	NewLevel int
}

// RecordSessionHandler handles the RecordSessionCommand.
type RecordSessionHandler struct {
	runner    scope.Runner
	publisher shared.EventPublisher
	log       *logger.Logger
}

// NewRecordSessionHandler creates a new RecordSessionHandler.
func NewRecordSessionHandler(runner scope.Runner, publisher shared.EventPublisher, log *logger.Logger) *RecordSessionHandler {
	return &RecordSessionHandler{runner: runner, publisher: publisher, log: log}
}

// Handle executes the record session command.
func (h *RecordSessionHandler) Handle(ctx context.Context, cmd RecordSessionCommand) (*RecordSessionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	session, err := focus.NewStudySession(cmd.UserID, cmd.DurationMinutes, focus.SessionMode(cmd.Mode))
	if err != nil {
		return nil, err
	}

	result, err := scope.Run(ctx, h.runner, h.log, scope.OpRecordSession, func(ctx context.Context, s scope.Store) (*RecordSessionResult, error) {
		if err := s.Sessions().Create(ctx, session); err != nil {
			return nil, err
		}

		award, err := s.Users().AddXP(ctx, cmd.UserID, session.XP())
		if err != nil {
			return nil, err
		}

		return &RecordSessionResult{
			Session:  session,
			XPGained: award.Delta.Int(),
			NewXP:    award.NewXP.Int(),
			NewLevel: award.NewLevel.Int(),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	h.log.Info("study session recorded",
		logger.UserID(cmd.UserID),
		logger.SessionID(session.ID),
		logger.Int("duration_minutes", session.DurationMinutes),
		logger.XPAmount(result.XPGained),
	)
	if h.publisher != nil {
		h.publisher.Publish(shared.NewSessionRecordedEvent(session.ID, cmd.UserID, session.DurationMinutes, result.XPGained))
	}

	return result, nil
}
