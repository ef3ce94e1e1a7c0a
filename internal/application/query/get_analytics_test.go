package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope/scopetest"
	"github.com/apex-hub/apex-campus-hub/internal/domain/focus"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
)

func TestGetAnalytics(t *testing.T) {
	runner := scopetest.NewRunner()
	owner := seedUser(t, runner, "dana@apex.edu", 0)

	seedSession(t, runner, owner.ID, 60)
	seedSession(t, runner, owner.ID, 65)

	seedTask(t, runner, owner.ID, "Integrals", "Math", focus.StatusCompleted)
	seedTask(t, runner, owner.ID, "Derivatives", "Math", focus.StatusCompleted)
	seedTask(t, runner, owner.ID, "Essay draft", "Writing", focus.StatusCompleted)
	seedTask(t, runner, owner.ID, "Not done yet", "Math", focus.StatusPending)

	handler := NewGetAnalyticsHandler(runner, testLogger())

	result, err := handler.Handle(context.Background(), GetAnalyticsQuery{UserID: owner.ID})
	require.NoError(t, err)

	assert.Equal(t, 125, result.TotalMinutes)
	assert.Equal(t, 2.1, result.TotalHours, "125 minutes rounds to 2.1 hours")
	assert.Equal(t, 2, result.TotalSessions)

	require.Len(t, result.CategoryCounts, 2)
	assert.Equal(t, focus.CategoryCount{Category: "Math", Count: 2}, result.CategoryCounts[0], "largest bucket first")
	assert.Equal(t, focus.CategoryCount{Category: "Writing", Count: 1}, result.CategoryCounts[1])
}

func TestGetAnalytics_EmptyGetsSyntheticBucket(t *testing.T) {
	runner := scopetest.NewRunner()
	owner := seedUser(t, runner, "dana@apex.edu", 0)

	handler := NewGetAnalyticsHandler(runner, testLogger())

	result, err := handler.Handle(context.Background(), GetAnalyticsQuery{UserID: owner.ID})
	require.NoError(t, err)

	assert.Zero(t, result.TotalMinutes)
	assert.Zero(t, result.TotalHours)
	require.Len(t, result.CategoryCounts, 1, "charts always have something to draw")
	assert.Equal(t, focus.CategoryCount{Category: focus.DefaultCategory, Count: 1}, result.CategoryCounts[0])
}

func TestGetAnalytics_RequiresUser(t *testing.T) {
	handler := NewGetAnalyticsHandler(scopetest.NewRunner(), testLogger())

	_, err := handler.Handle(context.Background(), GetAnalyticsQuery{})
	require.Error(t, err)

	var ve shared.ValidationErrors
	assert.ErrorAs(t, err, &ve)
}

func TestRoundHours(t *testing.T) {
	assert.Equal(t, 0.0, RoundHours(0))
	assert.Equal(t, 0.5, RoundHours(30))
	assert.Equal(t, 1.0, RoundHours(60))
	assert.Equal(t, 2.1, RoundHours(125))
	assert.Equal(t, 2.1, RoundHours(126))
}
