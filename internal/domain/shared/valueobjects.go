package shared

import (
	"regexp"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// Email
// ═══════════════════════════════════════════════════════════════════════════

// emailPattern is a pragmatic email shape check, not a full RFC 5322 parser.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email represents a normalized email address.
type Email string

// NewEmail validates and normalizes an email address.
func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", WrapError("shared", "NewEmail", ErrEmptyValue, "email is required", nil)
	}
	if !emailPattern.MatchString(normalized) {
		return "", WrapError("shared", "NewEmail", ErrInvalidFormat, "malformed email address", nil)
	}
	return Email(normalized), nil
}

// String returns the string representation.
func (e Email) String() string {
	return string(e)
}

// IsValid checks the email shape.
func (e Email) IsValid() bool {
	return emailPattern.MatchString(string(e))
}

// ═══════════════════════════════════════════════════════════════════════════
// Pagination
// ═══════════════════════════════════════════════════════════════════════════

// Pagination bounds list queries.
type Pagination struct {
	Limit  int
	Offset int
}

// Normalize clamps the pagination to sane bounds.
func (p Pagination) Normalize(defaultLimit, maxLimit int) Pagination {
	out := p
	if out.Limit <= 0 {
		out.Limit = defaultLimit
	}
	if out.Limit > maxLimit {
		out.Limit = maxLimit
	}
	if out.Offset < 0 {
		out.Offset = 0
	}
	return out
}
