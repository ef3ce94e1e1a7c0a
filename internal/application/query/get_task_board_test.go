package query

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope/scopetest"
	"github.com/apex-hub/apex-campus-hub/internal/domain/focus"
)

func TestGetTaskBoard(t *testing.T) {
	runner := scopetest.NewRunner()
	owner := seedUser(t, runner, "dana@apex.edu", 0)
	other := seedUser(t, runner, "erlan@apex.edu", 0)

	seedTask(t, runner, owner.ID, "Low prio", "Math", focus.StatusPending).Priority = focus.PriorityLow
	seedTask(t, runner, owner.ID, "High prio", "Math", focus.StatusPending).Priority = focus.PriorityHigh
	seedTask(t, runner, owner.ID, "Running", "Math", focus.StatusInProgress)
	seedTask(t, runner, owner.ID, "Done", "Math", focus.StatusCompleted)
	seedTask(t, runner, other.ID, "Not mine", "Math", focus.StatusPending)

	handler := NewGetTaskBoardHandler(runner, testLogger())

	board, err := handler.Handle(context.Background(), GetTaskBoardQuery{UserID: owner.ID})
	require.NoError(t, err)

	require.Len(t, board.Pending, 2, "other users' tasks never appear")
	assert.Equal(t, "High prio", board.Pending[0].Title, "higher priority first")
	assert.Equal(t, "Low prio", board.Pending[1].Title)
	require.Len(t, board.InProgress, 1)
	require.Len(t, board.Completed, 1)
}

func TestGetTaskBoard_CompletedIsBounded(t *testing.T) {
	runner := scopetest.NewRunner()
	owner := seedUser(t, runner, "dana@apex.edu", 0)

	for i := 0; i < focus.CompletedBoardLimit+5; i++ {
		seedTask(t, runner, owner.ID, fmt.Sprintf("Done %d", i), "Math", focus.StatusCompleted)
	}

	handler := NewGetTaskBoardHandler(runner, testLogger())

	board, err := handler.Handle(context.Background(), GetTaskBoardQuery{UserID: owner.ID})
	require.NoError(t, err)

	require.Len(t, board.Completed, focus.CompletedBoardLimit)
	assert.Equal(t, "Done 14", board.Completed[0].Title, "newest completion first")
}

func TestGetTaskBoard_EmptyBoard(t *testing.T) {
	runner := scopetest.NewRunner()
	owner := seedUser(t, runner, "dana@apex.edu", 0)

	handler := NewGetTaskBoardHandler(runner, testLogger())

	board, err := handler.Handle(context.Background(), GetTaskBoardQuery{UserID: owner.ID})
	require.NoError(t, err)

	assert.NotNil(t, board.Pending, "columns are empty slices, not nil")
	assert.NotNil(t, board.InProgress)
	assert.NotNil(t, board.Completed)
}
