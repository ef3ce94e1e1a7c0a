package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope/scopetest"
	"github.com/apex-hub/apex-campus-hub/internal/domain/focus"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
)

func TestRecordSession(t *testing.T) {
	runner := scopetest.NewRunner()
	owner := seedUser(t, runner, "dana@apex.edu", "Secret123")

	pub := &capturePublisher{}
	handler := NewRecordSessionHandler(runner, pub, testLogger())

	result, err := handler.Handle(context.Background(), RecordSessionCommand{
		UserID:          owner.ID,
		DurationMinutes: 30,
		Mode:            "focus",
	})
	require.NoError(t, err)

	assert.Equal(t, 300, result.XPGained, "10 XP per minute")
	assert.Equal(t, 300, result.NewXP)
	assert.Equal(t, 1, result.NewLevel)
	require.NotNil(t, result.Session)
	assert.Equal(t, 30, result.Session.DurationMinutes)

	assert.Equal(t, 300, runner.Store.UsersRepo.Accounts[owner.ID].XP.Int())

	require.Len(t, pub.events, 1)
	recorded, ok := pub.events[0].(shared.SessionRecordedEvent)
	require.True(t, ok)
	assert.Equal(t, owner.ID, recorded.UserID)
	assert.Equal(t, 300, recorded.XPAwarded)
}

func TestRecordSession_DefaultMode(t *testing.T) {
	runner := scopetest.NewRunner()
	owner := seedUser(t, runner, "dana@apex.edu", "Secret123")

	handler := NewRecordSessionHandler(runner, nil, testLogger())

	result, err := handler.Handle(context.Background(), RecordSessionCommand{
		UserID:          owner.ID,
		DurationMinutes: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, focus.DefaultSessionMode, result.Session.Mode)
}

func TestRecordSession_DurationValidation(t *testing.T) {
	handler := NewRecordSessionHandler(scopetest.NewRunner(), nil, testLogger())

	for _, minutes := range []int{0, -5, focus.MaxSessionMinutes + 1} {
		_, err := handler.Handle(context.Background(), RecordSessionCommand{
			UserID:          "user-1",
			DurationMinutes: minutes,
		})
		require.Error(t, err, "minutes=%d", minutes)

		var ve shared.ValidationErrors
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "duration_minutes", ve[0].Field)
	}
}

func TestRecordSession_RollsBackWhenAwardFails(t *testing.T) {
	runner := scopetest.NewRunner()
	handler := NewRecordSessionHandler(runner, nil, testLogger())

	_, err := handler.Handle(context.Background(), RecordSessionCommand{
		UserID:          "ghost-user",
		DurationMinutes: 30,
	})
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))

	assert.Empty(t, runner.Store.SessionsRepo.Sessions, "session insert must not outlive the failed award")
}
