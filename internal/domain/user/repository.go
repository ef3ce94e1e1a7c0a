package user

import (
	"context"
)

// ProfileUpdate carries the mutable profile fields. Zero-value fields are
// written as-is; callers send the full desired profile, matching the
// edit-profile form semantics.
type ProfileUpdate struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Bio         string
	Branch      string
}

// XPAward is the result of an AddXP mutation.
type XPAward struct {
	// Delta is the amount that was added.
	Delta XP

	// NewXP and NewLevel are the post-mutation values.
	NewXP    XP
	NewLevel Level
}

// LeaderboardEntry is one row of the top-N ranking view.
type LeaderboardEntry struct {
	UserID      string
	DisplayName string
	XP          int
	Level       int
	Rank        int
}

// Repository persists user accounts. Implementations are bound to one
// transaction scope; every method participates in the calling scope's
// unit of work.
type Repository interface {
	// Create inserts a new account. Returns ErrEmailTaken on duplicate email.
	Create(ctx context.Context, u *User) error

	// GetByID returns an account by internal ID.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail returns an account by normalized email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// UpdateProfile replaces the mutable profile fields.
	UpdateProfile(ctx context.Context, id string, p ProfileUpdate) error

	// AddXP atomically increments xp by delta and recomputes level in the
	// same statement. Delta must be positive; XP never decreases.
	AddXP(ctx context.Context, id string, delta XP) (XPAward, error)

	// TopByXP returns the top-N ranking ordered by xp descending with id
	// ascending as the deterministic tie-break.
	TopByXP(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}
