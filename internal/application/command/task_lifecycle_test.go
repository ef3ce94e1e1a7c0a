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

func TestAddTask(t *testing.T) {
	runner := scopetest.NewRunner()
	owner := seedUser(t, runner, "dana@apex.edu", "Secret123")

	handler := NewAddTaskHandler(runner, testLogger())

	result, err := handler.Handle(context.Background(), AddTaskCommand{
		UserID:           owner.ID,
		Title:            "Read chapter 4",
		Category:         "Math",
		EstimatedMinutes: 45,
		Priority:         3,
	})
	require.NoError(t, err)

	task := result.Task
	assert.Equal(t, focus.StatusPending, task.Status)
	assert.Equal(t, focus.PriorityHigh, task.Priority)
	assert.Contains(t, runner.Store.TasksRepo.Tasks, task.ID)
}

func TestAddTask_Defaults(t *testing.T) {
	runner := scopetest.NewRunner()
	owner := seedUser(t, runner, "dana@apex.edu", "Secret123")

	handler := NewAddTaskHandler(runner, testLogger())

	result, err := handler.Handle(context.Background(), AddTaskCommand{
		UserID: owner.ID,
		Title:  "Quick note",
	})
	require.NoError(t, err)
	assert.Equal(t, focus.DefaultCategory, result.Task.Category)
	assert.Equal(t, focus.PriorityMedium, result.Task.Priority)
}

func TestAddTask_Validation(t *testing.T) {
	handler := NewAddTaskHandler(scopetest.NewRunner(), testLogger())

	_, err := handler.Handle(context.Background(), AddTaskCommand{UserID: "user-1"})
	require.Error(t, err)

	var ve shared.ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve[0].Field)
}

func TestStartTask(t *testing.T) {
	runner := scopetest.NewRunner()
	owner := seedUser(t, runner, "dana@apex.edu", "Secret123")
	task := seedTask(t, runner, owner.ID, "Read chapter 4")

	handler := NewStartTaskHandler(runner, testLogger())

	result, err := handler.Handle(context.Background(), StartTaskCommand{UserID: owner.ID, TaskID: task.ID})
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, focus.StatusInProgress, runner.Store.TasksRepo.Tasks[task.ID].Status)
}

func TestStartTask_NotOwner(t *testing.T) {
	runner := scopetest.NewRunner()
	owner := seedUser(t, runner, "dana@apex.edu", "Secret123")
	stranger := seedUser(t, runner, "erlan@apex.edu", "Secret123")
	task := seedTask(t, runner, owner.ID, "Read chapter 4")

	handler := NewStartTaskHandler(runner, testLogger())

	result, err := handler.Handle(context.Background(), StartTaskCommand{UserID: stranger.ID, TaskID: task.ID})
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Equal(t, focus.StatusPending, runner.Store.TasksRepo.Tasks[task.ID].Status)
}

func TestStartTask_UnknownTask(t *testing.T) {
	runner := scopetest.NewRunner()
	owner := seedUser(t, runner, "dana@apex.edu", "Secret123")

	handler := NewStartTaskHandler(runner, testLogger())

	result, err := handler.Handle(context.Background(), StartTaskCommand{UserID: owner.ID, TaskID: "no-such-task"})
	require.NoError(t, err)
	assert.False(t, result.Applied)
}
