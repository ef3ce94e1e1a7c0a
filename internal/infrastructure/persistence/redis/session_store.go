package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ══════════════════════════════════════════════════════════════════════════════
// SESSION STORE
// ══════════════════════════════════════════════════════════════════════════════

// ErrSessionNotFound is returned when a token does not map to a session.
var ErrSessionNotFound = errors.New("session: not found or expired")

// SessionStore maps opaque auth tokens to user IDs with a TTL. The token
// is the only thing the client holds; everything else lives server-side,
// so logout and expiry are immediate.
type SessionStore struct {
	cache *Cache
	ttl   time.Duration
}

// NewSessionStore creates a SessionStore with the given TTL.
// A non-positive TTL falls back to TTLSession.
func NewSessionStore(cache *Cache, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = TTLSession
	}
	return &SessionStore{cache: cache, ttl: ttl}
}

// Issue creates a new session for the user and returns the opaque token.
func (s *SessionStore) Issue(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", errors.New("session: user id is required")
	}

	token := uuid.NewString()
	if err := s.cache.SetString(ctx, SessionKey(token), userID, s.ttl); err != nil {
		return "", fmt.Errorf("session: failed to store: %w", err)
	}

	return token, nil
}

// Resolve returns the user ID for a token and slides its expiry.
func (s *SessionStore) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrSessionNotFound
	}

	userID, err := s.cache.GetString(ctx, SessionKey(token))
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("session: failed to resolve: %w", err)
	}

	// Sliding expiration: active users stay logged in.
	_ = s.cache.Expire(ctx, SessionKey(token), s.ttl)

	return userID, nil
}

// Revoke deletes a session. Revoking an unknown token is not an error.
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.cache.Delete(ctx, SessionKey(token))
}

// TTL returns the configured session lifetime.
func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}
