package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionXP(t *testing.T) {
	assert.Equal(t, 10, SessionXP(1).Int())
	assert.Equal(t, 250, SessionXP(25).Int())
	assert.Equal(t, 300, SessionXP(30).Int())
}

func TestNewStudySession(t *testing.T) {
	s, err := NewStudySession("owner-1", 25, "")
	require.NoError(t, err)

	assert.Equal(t, DefaultSessionMode, s.Mode, "empty mode falls back to focus")
	assert.Equal(t, 25, s.DurationMinutes)
	assert.Equal(t, 250, s.XP().Int())
	assert.False(t, s.CompletedAt.IsZero(), "completion timestamp is server-assigned")
}

func TestNewStudySession_DurationBounds(t *testing.T) {
	_, err := NewStudySession("owner-1", 0, "focus")
	assert.Error(t, err, "zero duration")

	_, err = NewStudySession("owner-1", -10, "focus")
	assert.Error(t, err, "negative duration")

	_, err = NewStudySession("owner-1", MaxSessionMinutes+1, "focus")
	assert.Error(t, err, "over the daily cap")

	s, err := NewStudySession("owner-1", MaxSessionMinutes, "focus")
	require.NoError(t, err)
	assert.Equal(t, MaxSessionMinutes, s.DurationMinutes)
}
