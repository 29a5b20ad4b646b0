package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"channel_ranker/internal/domain"
)

type stubRunner struct {
	calls    atomic.Int32
	deadline atomic.Bool
	mode     atomic.Value
	err      error
	release  chan struct{}
}

func (r *stubRunner) Run(ctx context.Context, mode domain.Mode) (*domain.RunStats, error) {
	r.calls.Add(1)
	if r.release != nil {
		<-r.release
	}
	r.mode.Store(mode)
	_, ok := ctx.Deadline()
	r.deadline.Store(ok)
	if r.err != nil {
		return nil, r.err
	}
	return &domain.RunStats{Mode: mode, Succeeded: 1}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestRunOnce_AppliesTimeoutAndMode(t *testing.T) {
	runner := &stubRunner{}
	s := NewScheduler(runner, Config{Schedule: "0 2 * * *", Mode: domain.ModeFull, RunTimeout: time.Hour}, testLogger())

	stats := s.RunOnce(context.Background())

	require.NotNil(t, stats)
	assert.Equal(t, 1, stats.Succeeded)
	assert.Equal(t, domain.ModeFull, runner.mode.Load())
	assert.True(t, runner.deadline.Load())
}

func TestRunOnce_Failure(t *testing.T) {
	runner := &stubRunner{err: errors.New("list channels: connection refused")}
	s := NewScheduler(runner, Config{Schedule: "0 2 * * *", Mode: domain.ModeIncremental}, testLogger())

	assert.Nil(t, s.RunOnce(context.Background()))
	assert.False(t, runner.deadline.Load())
}

func TestStart_RunsOnStartAndStopsOnCancel(t *testing.T) {
	runner := &stubRunner{}
	s := NewScheduler(runner, Config{
		Schedule:   "0 2 * * *",
		Mode:       domain.ModeIncremental,
		RunOnStart: true,
	}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	require.Eventually(t, func() bool { return runner.calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestStart_InvalidSchedule(t *testing.T) {
	s := NewScheduler(&stubRunner{}, Config{Schedule: "every day"}, testLogger())

	err := s.Start(context.Background())

	assert.ErrorContains(t, err, "parse schedule")
}

func TestStart_StartupRunBlocksOverlappingFiring(t *testing.T) {
	runner := &stubRunner{release: make(chan struct{})}
	s := NewScheduler(runner, Config{
		Schedule:   "0 2 * * *",
		Mode:       domain.ModeIncremental,
		RunOnStart: true,
	}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	require.Eventually(t, func() bool { return runner.calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	// a scheduled firing while the start-up run is in progress
	s.job.Run()
	assert.Equal(t, int32(1), runner.calls.Load())

	cancel()
	select {
	case <-done:
		t.Fatal("scheduler stopped before the start-up run finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(runner.release)
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.Equal(t, int32(1), runner.calls.Load())
}
