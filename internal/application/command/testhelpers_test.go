package command

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

// capturePublisher records published events for assertions.
type capturePublisher struct {
	events []shared.Event
}

func (p *capturePublisher) Publish(event shared.Event) {
	p.events = append(p.events, event)
}

// seedUser creates an account directly in the fake store.
func seedUser(t *testing.T, r *scopetest.Runner, email, password string) *user.User {
	t.Helper()

	addr, err := shared.NewEmail(email)
	require.NoError(t, err)
	u, err := user.NewUser(addr, "Dana", "Serikova", "", "CS", password)
	require.NoError(t, err)
	require.NoError(t, r.Store.UsersRepo.Create(context.Background(), u))
	return u
}

// seedTask creates a pending task owned by userID.
func seedTask(t *testing.T, r *scopetest.Runner, userID, title string) *focus.Task {
	t.Helper()

	task, err := focus.NewTask(userID, title, "Math", 30, focus.PriorityMedium)
	require.NoError(t, err)
	require.NoError(t, r.Store.TasksRepo.Create(context.Background(), task))
	return task
}
