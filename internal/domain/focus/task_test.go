package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask_Defaults(t *testing.T) {
	task, err := NewTask("owner-1", "Read chapter 4", "", 0, 0)
	require.NoError(t, err)

	assert.Equal(t, DefaultCategory, task.Category, "empty category falls back to General")
	assert.Equal(t, PriorityMedium, task.Priority, "invalid priority falls back to Medium")
	assert.Equal(t, StatusPending, task.Status)
	assert.NotEmpty(t, task.ID)
	assert.Zero(t, task.Seq, "seq is assigned by storage")
}

func TestNewTask_Validation(t *testing.T) {
	_, err := NewTask("owner-1", "   ", "Math", 30, 2)
	assert.Error(t, err, "blank title")

	_, err = NewTask("", "Read chapter 4", "Math", 30, 2)
	assert.Error(t, err, "missing owner")
}

func TestNewTask_KeepsValidPriority(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		task, err := NewTask("owner-1", "Task", "Math", 10, p)
		require.NoError(t, err)
		assert.Equal(t, p, task.Priority)
	}

	task, err := NewTask("owner-1", "Task", "Math", 10, 7)
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, task.Priority)
}
