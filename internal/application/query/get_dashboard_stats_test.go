package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope/scopetest"
	"github.com/apex-hub/apex-campus-hub/internal/domain/focus"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
)

func TestGetDashboardStats(t *testing.T) {
	runner := scopetest.NewRunner()
	owner := seedUser(t, runner, "dana@apex.edu", 1250)

	// Two sessions today, one yesterday. Only today's minutes count.
	seedSession(t, runner, owner.ID, 25)
	seedSession(t, runner, owner.ID, 30)
	old := seedSession(t, runner, owner.ID, 90)
	old.CompletedAt = time.Now().AddDate(0, 0, -1)

	seedTask(t, runner, owner.ID, "Pending one", "Math", focus.StatusPending)
	seedTask(t, runner, owner.ID, "Pending two", "Math", focus.StatusPending)
	seedTask(t, runner, owner.ID, "Running", "Math", focus.StatusInProgress)
	seedTask(t, runner, owner.ID, "Done", "Math", focus.StatusCompleted)

	handler := NewGetDashboardStatsHandler(runner, testLogger(), time.UTC)

	stats, err := handler.Handle(context.Background(), GetDashboardStatsQuery{UserID: owner.ID})
	require.NoError(t, err)

	assert.Equal(t, "Dana Serikova", stats.Name)
	assert.Equal(t, 1250, stats.XP)
	assert.Equal(t, 2, stats.Level)
	assert.Equal(t, 55, stats.TodayMinutes, "yesterday's session is excluded")
	assert.Equal(t, 2, stats.PendingTasks)
	assert.Equal(t, 1, stats.InProgressTasks)
	assert.Equal(t, 1, stats.CompletedTasks)
	assert.Equal(t, 3, stats.TotalSessions)
}

func TestGetDashboardStats_UnknownUser(t *testing.T) {
	handler := NewGetDashboardStatsHandler(scopetest.NewRunner(), testLogger(), time.UTC)

	_, err := handler.Handle(context.Background(), GetDashboardStatsQuery{UserID: "no-such-user"})
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}

func TestGetDashboardStats_RequiresUser(t *testing.T) {
	handler := NewGetDashboardStatsHandler(scopetest.NewRunner(), testLogger(), nil)

	_, err := handler.Handle(context.Background(), GetDashboardStatsQuery{})
	require.Error(t, err)

	var ve shared.ValidationErrors
	assert.ErrorAs(t, err, &ve)
}
