package focus

import (
	"time"

	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/internal/domain/user"

	"github.com/google/uuid"
)

// SessionMode labels how the session was run (timer preset name from the
// client). Free-form; stored for analytics display only.
type SessionMode string

// DefaultSessionMode is used when the client sends no mode.
const DefaultSessionMode SessionMode = "focus"

// SessionXPPerMinute is awarded per recorded study minute.
const SessionXPPerMinute = 10

// MaxSessionMinutes caps a single recorded session at 24 hours.
const MaxSessionMinutes = 1440

// SessionXP returns the XP awarded for a session of the given length.
func SessionXP(minutes int) user.XP {
	if minutes <= 0 {
		return 0
	}
	return user.XP(minutes * SessionXPPerMinute)
}

// StudySession is one append-only record of completed focus time. Sessions
// are never edited or removed after recording.
type StudySession struct {
	// ID is the unique identifier (UUID in string form).
	ID string

	// UserID is the account that ran the session.
	UserID string

	// DurationMinutes is the client-reported length, validated to
	// 1..MaxSessionMinutes.
	DurationMinutes int

	// Mode is the timer preset label.
	Mode SessionMode

	// CompletedAt is server-assigned at record time. The client clock is
	// never trusted for it.
	CompletedAt time.Time
}

// NewStudySession validates and creates a session record with a
// server-assigned completion timestamp.
func NewStudySession(userID string, durationMinutes int, mode SessionMode) (*StudySession, error) {
	if userID == "" {
		return nil, shared.WrapError("focus", "NewStudySession", shared.ErrEmptyValue, "session owner is required", nil)
	}
	if durationMinutes <= 0 {
		return nil, shared.WrapError("focus", "NewStudySession", shared.ErrInvalidInput, "session duration must be positive", nil)
	}
	if durationMinutes > MaxSessionMinutes {
		return nil, shared.WrapError("focus", "NewStudySession", shared.ErrInvalidInput, "session duration exceeds 24 hours", nil)
	}
	if mode == "" {
		mode = DefaultSessionMode
	}

	return &StudySession{
		ID:              uuid.NewString(),
		UserID:          userID,
		DurationMinutes: durationMinutes,
		Mode:            mode,
		CompletedAt:     time.Now().UTC(),
	}, nil
}

// XP returns the award this session earns its owner.
func (s *StudySession) XP() user.XP {
	return SessionXP(s.DurationMinutes)
}
