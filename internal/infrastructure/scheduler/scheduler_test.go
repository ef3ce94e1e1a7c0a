package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler() *Scheduler {
	return NewScheduler(Config{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestIntervalSchedule(t *testing.T) {
	s := NewIntervalSchedule(5 * time.Minute)

	at := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, at.Add(5*time.Minute), s.Next(at))
	assert.Equal(t, "@every 5m0s", s.String())
}

func TestDailySchedule(t *testing.T) {
	s := NewDailySchedule(6, 30)

	// Before today's slot: fires later today.
	morning := time.Date(2025, 3, 14, 5, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 14, 6, 30, 0, 0, time.UTC), s.Next(morning))

	// After today's slot: rolls over to tomorrow.
	evening := time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 15, 6, 30, 0, 0, time.UTC), s.Next(evening))

	// Exactly at the slot: the next occurrence is tomorrow's.
	exact := time.Date(2025, 3, 14, 6, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 15, 6, 30, 0, 0, time.UTC), s.Next(exact))

	assert.Equal(t, "@daily 06:30", s.String())
}

func TestScheduler_Register(t *testing.T) {
	s := newTestScheduler()

	job := NewFuncJob("warm_cache", func(ctx context.Context) error { return nil })
	require.NoError(t, s.Register(job, NewIntervalSchedule(time.Minute)))

	assert.ErrorIs(t, s.Register(job, NewIntervalSchedule(time.Minute)), ErrJobAlreadyExists)
	assert.ErrorIs(t, s.Register(nil, NewIntervalSchedule(time.Minute)), ErrNilJob)
	assert.ErrorIs(t, s.Register(job, nil), ErrNilSchedule)

	jobs := s.ListJobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "warm_cache", jobs[0].Name)
	assert.Equal(t, "@every 1m0s", jobs[0].Schedule)
	assert.False(t, jobs[0].NextRun.IsZero())
}

func TestScheduler_Lifecycle(t *testing.T) {
	s := newTestScheduler()

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	assert.ErrorIs(t, s.Start(context.Background()), ErrSchedulerAlreadyRunning)

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	assert.ErrorIs(t, s.Stop(), ErrSchedulerNotRunning)
}

func TestScheduler_RunsDueJob(t *testing.T) {
	s := newTestScheduler()

	ran := make(chan struct{}, 1)
	job := NewFuncJob("ping", func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	// A tiny interval so the one-second tick finds the job due.
	require.NoError(t, s.Register(job, NewIntervalSchedule(10*time.Millisecond)))
	require.NoError(t, s.Start(context.Background()))
	defer func() { _ = s.Stop() }()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}

	jobs := s.ListJobs()
	require.Len(t, jobs, 1)
	assert.GreaterOrEqual(t, jobs[0].RunCount, int64(1))
	assert.Zero(t, jobs[0].FailCount)
}
