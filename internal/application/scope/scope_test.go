package scope_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/application/scope/scopetest"
	"github.com/apex-hub/apex-campus-hub/internal/domain/focus"
	"github.com/apex-hub/apex-campus-hub/internal/domain/shared"
	"github.com/apex-hub/apex-campus-hub/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Output: io.Discard, Level: logger.LevelError})
}

func TestRun_ReturnsResult(t *testing.T) {
	runner := scopetest.NewRunner()

	got, err := scope.Run(context.Background(), runner, testLogger(), scope.OpGetProfile,
		func(ctx context.Context, s scope.Store) (int, error) {
			return 42, nil
		})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, []string{scope.OpGetProfile}, runner.Ops)
}

func TestRun_DomainErrorPassesThrough(t *testing.T) {
	runner := scopetest.NewRunner()
	denied := shared.NewDomainError("community", "ResolveListing", shared.ErrForbidden, "not yours")

	_, err := scope.Run(context.Background(), runner, testLogger(), scope.OpResolveListing,
		func(ctx context.Context, s scope.Store) (int, error) {
			return 0, denied
		})
	require.Error(t, err)
	assert.True(t, shared.IsForbidden(err), "domain kinds survive the scope untouched")
	assert.False(t, scope.IsScopeFailure(err))
}

func TestRun_ValidationErrorsPassThrough(t *testing.T) {
	runner := scopetest.NewRunner()
	invalid := shared.ValidationErrors{{Field: "title", Message: "title is required"}}

	_, err := scope.Run(context.Background(), runner, testLogger(), scope.OpAddTask,
		func(ctx context.Context, s scope.Store) (int, error) {
			return 0, invalid
		})
	require.Error(t, err)

	var ve shared.ValidationErrors
	assert.ErrorAs(t, err, &ve)
	assert.False(t, scope.IsScopeFailure(err))
}

func TestRun_InfrastructureErrorIsMasked(t *testing.T) {
	runner := scopetest.NewRunner()
	driverErr := errors.New(`pq: connection refused (host="10.0.0.3")`)

	_, err := scope.Run(context.Background(), runner, testLogger(), scope.OpGetTaskBoard,
		func(ctx context.Context, s scope.Store) (int, error) {
			return 0, driverErr
		})
	require.Error(t, err)
	assert.True(t, scope.IsScopeFailure(err))
	assert.NotContains(t, err.Error(), "10.0.0.3", "driver details never reach the caller")
}

func TestRun_ScopeOpenFailure(t *testing.T) {
	runner := scopetest.NewRunner()
	runner.Err = errors.New("pool exhausted")

	_, err := scope.Run(context.Background(), runner, testLogger(), scope.OpHome,
		func(ctx context.Context, s scope.Store) (int, error) {
			t.Fatal("fn must not run when the scope cannot open")
			return 0, nil
		})
	require.Error(t, err)
	assert.True(t, scope.IsScopeFailure(err))
}

func TestExec(t *testing.T) {
	runner := scopetest.NewRunner()

	err := scope.Exec(context.Background(), runner, testLogger(), scope.OpStartTask,
		func(ctx context.Context, s scope.Store) error {
			return nil
		})
	assert.NoError(t, err)

	err = scope.Exec(context.Background(), runner, testLogger(), scope.OpStartTask,
		func(ctx context.Context, s scope.Store) error {
			return errors.New("disk full")
		})
	assert.True(t, scope.IsScopeFailure(err))
}

func TestRunner_RollsBackOnError(t *testing.T) {
	runner := scopetest.NewRunner()

	task, err := focus.NewTask("user-1", "Throwaway", "", 0, 0)
	require.NoError(t, err)

	err = runner.RunInScope(context.Background(), scope.OpAddTask, func(s scope.Store) error {
		if err := s.Tasks().Create(context.Background(), task); err != nil {
			return err
		}
		return errors.New("forced failure after a write")
	})
	require.Error(t, err)
	assert.Empty(t, runner.Store.TasksRepo.Tasks, "writes inside a failed scope are rolled back")
}
