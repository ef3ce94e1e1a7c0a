package eventhandler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
)

type fakeInvalidator struct {
	calls int
	err   error
}

func (f *fakeInvalidator) Invalidate(ctx context.Context) error {
	f.calls++
	return f.err
}

func discardSlog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOnTaskCompleted_InvalidatesLeaderboard(t *testing.T) {
	cache := &fakeInvalidator{}
	h := NewOnTaskCompletedHandler(cache, discardSlog())

	err := h.Handle(shared.NewTaskCompletedEvent("task-1", "user-1", 50))
	require.NoError(t, err)
	assert.Equal(t, 1, cache.calls)
}

func TestOnTaskCompleted_SkipsZeroAward(t *testing.T) {
	cache := &fakeInvalidator{}
	h := NewOnTaskCompletedHandler(cache, discardSlog())

	err := h.Handle(shared.NewTaskCompletedEvent("task-1", "user-1", 0))
	require.NoError(t, err)
	assert.Zero(t, cache.calls, "no XP means the ranking cannot have moved")
}

func TestOnTaskCompleted_InvalidationFailureIsSwallowed(t *testing.T) {
	cache := &fakeInvalidator{err: errors.New("redis: connection refused")}
	h := NewOnTaskCompletedHandler(cache, discardSlog())

	err := h.Handle(shared.NewTaskCompletedEvent("task-1", "user-1", 50))
	assert.NoError(t, err, "stale for at most the cache TTL, not worth failing over")
}

func TestOnTaskCompleted_IgnoresForeignEventType(t *testing.T) {
	cache := &fakeInvalidator{}
	h := NewOnTaskCompletedHandler(cache, discardSlog())

	err := h.Handle(shared.NewBaseEvent(shared.EventListingResolved, "listing-1"))
	require.NoError(t, err)
	assert.Zero(t, cache.calls)
}

func TestOnSessionRecorded_InvalidatesLeaderboard(t *testing.T) {
	cache := &fakeInvalidator{}
	h := NewOnSessionRecordedHandler(cache, discardSlog())

	err := h.Handle(shared.NewSessionRecordedEvent("session-1", "user-1", 25, 250))
	require.NoError(t, err)
	assert.Equal(t, 1, cache.calls)
}

func TestHandlerNames(t *testing.T) {
	assert.Equal(t, "on_task_completed", NewOnTaskCompletedHandler(nil, discardSlog()).Name())
	assert.Equal(t, "on_session_recorded", NewOnSessionRecordedHandler(nil, discardSlog()).Name())
}
