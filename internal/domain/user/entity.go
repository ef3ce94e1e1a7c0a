// Package user contains the account domain model for Apex Campus Hub.
// This is core business logic - there are no infrastructure dependencies here.
package user

import (
	"strings"
	"time"
	"unicode"

	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// XP represents a user's experience points. XP is monotonically
// non-decreasing: the only mutations are the task-completion and
// session-recorded awards.
type XP int

// IsValid checks that XP is non-negative.
func (x XP) IsValid() bool {
	return x >= 0
}

// Add returns the XP increased by delta.
func (x XP) Add(delta XP) XP {
	return x + delta
}

// Int returns the underlying int value.
func (x XP) Int() int {
	return int(x)
}

// Level represents the tier derived from XP.
type Level int

// XPPerLevel is the width of one level band.
const XPPerLevel = 1000

// CalculateLevel derives the level from XP. New accounts start at level 1;
// every full thousand XP advances one level. The stored level column is
// recomputed with this formula on every XP mutation so it never goes stale.
func CalculateLevel(xp XP) Level {
	if xp < 0 {
		return 1
	}
	return Level(1 + int(xp)/XPPerLevel)
}

// Int returns the underlying int value.
func (l Level) Int() int {
	return int(l)
}

// Role represents the account role within the hub.
type Role string

const (
	// RoleMember is the default role for self-registered accounts.
	RoleMember Role = "member"
	// RoleAdmin marks accounts allowed to publish events and articles.
	RoleAdmin Role = "admin"
)

// IsValid checks that the role is one of the known values.
func (r Role) IsValid() bool {
	return r == RoleMember || r == RoleAdmin
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: USER
// ══════════════════════════════════════════════════════════════════════════════

// User is the account entity. It owns the xp/level progression state that
// the focus subsystem mutates.
type User struct {
	// ID is the internal unique identifier (UUID in string form).
	ID string

	// Email is the normalized login email, unique across accounts.
	Email shared.Email

	// PasswordHash is the bcrypt hash of the account password.
	PasswordHash string

	// FirstName and LastName form the display identity.
	FirstName string
	LastName  string

	// PhoneNumber is optional contact info.
	PhoneNumber string

	// Branch is the campus branch / field of study.
	Branch string

	// Bio is a free-text profile description.
	Bio string

	// Role within the hub.
	Role Role

	// XP is the current experience points.
	XP XP

	// Level is the stored tier derived from XP (see CalculateLevel).
	Level Level

	// CreatedAt is when the account was created.
	CreatedAt time.Time

	// UpdatedAt is when the account was last modified.
	UpdatedAt time.Time
}

// DisplayName returns "First Last" for presentation.
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// NewUser creates a member account with zero XP at level 1.
func NewUser(email shared.Email, firstName, lastName, phone, branch, password string) (*User, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return nil, shared.WrapError("user", "NewUser", shared.ErrEmptyValue, "first name is required", nil)
	}
	if !email.IsValid() {
		return nil, shared.WrapError("user", "NewUser", shared.ErrInvalidFormat, "invalid email", nil)
	}
	if msg, ok := CheckPasswordStrength(password); !ok {
		return nil, shared.WrapError("user", "NewUser", shared.ErrValidation, msg, nil)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, shared.WrapError("user", "NewUser", shared.ErrInvalidInput, "failed to hash password", err)
	}

	now := time.Now().UTC()
	return &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		PhoneNumber:  strings.TrimSpace(phone),
		Branch:       strings.TrimSpace(branch),
		Role:         RoleMember,
		XP:           0,
		Level:        CalculateLevel(0),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// PASSWORDS
// ══════════════════════════════════════════════════════════════════════════════

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// CheckPasswordStrength validates password strength: at least 8 characters
// with one uppercase letter, one lowercase letter, and one digit.
func CheckPasswordStrength(password string) (string, bool) {
	if len(password) < 8 {
		return "password must be at least 8 characters long", false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		return "password must contain an uppercase letter", false
	}
	if !hasLower {
		return "password must contain a lowercase letter", false
	}
	if !hasDigit {
		return "password must contain a digit", false
	}
	return "", true
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrUserNotFound is returned when no account matches the lookup.
	ErrUserNotFound = shared.NewDomainError("user", "Find", shared.ErrNotFound, "user not found")

	// ErrEmailTaken is returned when registering with an email already in use.
	ErrEmailTaken = shared.NewDomainError("user", "Register", shared.ErrAlreadyExists, "email already registered")

	// ErrBadCredentials is returned when login email/password do not match.
	ErrBadCredentials = shared.NewDomainError("user", "Login", shared.ErrUnauthenticated, "email or password is not correct")
)
