package query

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope/scopetest"
	"github.com/apex-hub/apex-campus-hub/internal/domain/focus"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/internal/domain/user"
	"github.com/apex-hub/apex-campus-hub/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Output: io.Discard, Level: logger.LevelError})
}

// seedUser creates an account with the given XP directly in the fake store.
func seedUser(t *testing.T, r *scopetest.Runner, email string, xp int) *user.User {
	t.Helper()

	addr, err := shared.NewEmail(email)
	require.NoError(t, err)
	u, err := user.NewUser(addr, "Dana", "Serikova", "", "CS", "Secret123")
	require.NoError(t, err)
	require.NoError(t, r.Store.UsersRepo.Create(context.Background(), u))

	if xp > 0 {
		_, err = r.Store.UsersRepo.AddXP(context.Background(), u.ID, user.XP(xp))
		require.NoError(t, err)
	}
	return r.Store.UsersRepo.Accounts[u.ID]
}

// seedTask creates a task in the given status.
func seedTask(t *testing.T, r *scopetest.Runner, userID, title, category string, status focus.TaskStatus) *focus.Task {
	t.Helper()

	task, err := focus.NewTask(userID, title, category, 30, focus.PriorityMedium)
	require.NoError(t, err)
	require.NoError(t, r.Store.TasksRepo.Create(context.Background(), task))

	stored := r.Store.TasksRepo.Tasks[task.ID]
	stored.Status = status
	return stored
}

// seedSession records a completed study session.
func seedSession(t *testing.T, r *scopetest.Runner, userID string, minutes int) *focus.StudySession {
	t.Helper()

	s, err := focus.NewStudySession(userID, minutes, "focus")
	require.NoError(t, err)
	require.NoError(t, r.Store.SessionsRepo.Create(context.Background(), s))
	return r.Store.SessionsRepo.Sessions[len(r.Store.SessionsRepo.Sessions)-1]
}
