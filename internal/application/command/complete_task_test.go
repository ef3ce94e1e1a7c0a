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

func TestCompleteTask_AwardsXP(t *testing.T) {
	runner := scopetest.NewRunner()
	owner := seedUser(t, runner, "dana@apex.edu", "Secret123")
	task := seedTask(t, runner, owner.ID, "Read chapter 4")

	pub := &capturePublisher{}
	handler := NewCompleteTaskHandler(runner, pub, testLogger(), false)

	result, err := handler.Handle(context.Background(), CompleteTaskCommand{UserID: owner.ID, TaskID: task.ID})
	require.NoError(t, err)

	assert.True(t, result.Applied)
	assert.Equal(t, 50, result.XPAwarded)
	assert.Equal(t, 50, result.NewXP)
	assert.Equal(t, 1, result.NewLevel)

	stored := runner.Store.TasksRepo.Tasks[task.ID]
	assert.Equal(t, focus.StatusCompleted, stored.Status)

	require.Len(t, pub.events, 1)
	completed, ok := pub.events[0].(shared.TaskCompletedEvent)
	require.True(t, ok)
	assert.Equal(t, owner.ID, completed.UserID)
	assert.Equal(t, 50, completed.XPAwarded)
}

func TestCompleteTask_RepeatAwardsAgainByDefault(t *testing.T) {
	runner := scopetest.NewRunner()
	owner := seedUser(t, runner, "dana@apex.edu", "Secret123")
	task := seedTask(t, runner, owner.ID, "Read chapter 4")

	handler := NewCompleteTaskHandler(runner, nil, testLogger(), false)

	for i := 0; i < 2; i++ {
		result, err := handler.Handle(context.Background(), CompleteTaskCommand{UserID: owner.ID, TaskID: task.ID})
		require.NoError(t, err)
		assert.True(t, result.Applied)
	}

	account := runner.Store.UsersRepo.Accounts[owner.ID]
	assert.Equal(t, 100, account.XP.Int(), "both completions award")
}

func TestCompleteTask_IdempotentGuard(t *testing.T) {
	runner := scopetest.NewRunner()
	owner := seedUser(t, runner, "dana@apex.edu", "Secret123")
	task := seedTask(t, runner, owner.ID, "Read chapter 4")

	pub := &capturePublisher{}
	handler := NewCompleteTaskHandler(runner, pub, testLogger(), true)

	first, err := handler.Handle(context.Background(), CompleteTaskCommand{UserID: owner.ID, TaskID: task.ID})
	require.NoError(t, err)
	assert.True(t, first.Applied)

	second, err := handler.Handle(context.Background(), CompleteTaskCommand{UserID: owner.ID, TaskID: task.ID})
	require.NoError(t, err)
	assert.False(t, second.Applied, "repeat completion is a no-op")
	assert.Zero(t, second.XPAwarded)

	account := runner.Store.UsersRepo.Accounts[owner.ID]
	assert.Equal(t, 50, account.XP.Int(), "only the first completion awards")
	assert.Len(t, pub.events, 1, "no event for the no-op repeat")
}

func TestCompleteTask_NotOwnerIsSilentNoOp(t *testing.T) {
	runner := scopetest.NewRunner()
	owner := seedUser(t, runner, "dana@apex.edu", "Secret123")
	stranger := seedUser(t, runner, "erlan@apex.edu", "Secret123")
	task := seedTask(t, runner, owner.ID, "Read chapter 4")

	handler := NewCompleteTaskHandler(runner, nil, testLogger(), false)

	result, err := handler.Handle(context.Background(), CompleteTaskCommand{UserID: stranger.ID, TaskID: task.ID})
	require.NoError(t, err, "foreign task is not an error")
	assert.False(t, result.Applied)

	assert.Equal(t, focus.StatusPending, runner.Store.TasksRepo.Tasks[task.ID].Status)
	assert.Zero(t, runner.Store.UsersRepo.Accounts[stranger.ID].XP.Int())
	assert.Zero(t, runner.Store.UsersRepo.Accounts[owner.ID].XP.Int())
}

func TestCompleteTask_RollsBackWhenAwardFails(t *testing.T) {
	runner := scopetest.NewRunner()
	// Task owned by an account that does not exist: the completion
	// applies but the XP award fails, so the whole scope rolls back.
	task := seedTask(t, runner, "ghost-user", "Orphaned task")

	handler := NewCompleteTaskHandler(runner, nil, testLogger(), false)

	_, err := handler.Handle(context.Background(), CompleteTaskCommand{UserID: "ghost-user", TaskID: task.ID})
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))

	assert.Equal(t, focus.StatusPending, runner.Store.TasksRepo.Tasks[task.ID].Status,
		"status change must not outlive the failed award")
}

func TestCompleteTask_Validation(t *testing.T) {
	handler := NewCompleteTaskHandler(scopetest.NewRunner(), nil, testLogger(), false)

	_, err := handler.Handle(context.Background(), CompleteTaskCommand{})
	require.Error(t, err)

	var ve shared.ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve, 2)
}
