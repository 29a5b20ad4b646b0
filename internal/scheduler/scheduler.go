package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"channel_ranker/internal/domain"
)

// Runner defines the interface for collection runs.
type Runner interface {
	Run(ctx context.Context, mode domain.Mode) (*domain.RunStats, error)
}

type Config struct {
	Schedule   string
	Mode       domain.Mode
	RunTimeout time.Duration
	RunOnStart bool
}

type Scheduler struct {
	runner     Runner
	config     Config
	cron       *cron.Cron
	cronLogger slogAdapter
	job        cron.Job
	logger     *slog.Logger
}

// NewScheduler schedules runs on a standard five-field cron expression
// evaluated in UTC. A run still in progress when the next one fires causes
// that firing to be skipped.
func NewScheduler(runner Runner, cfg Config, logger *slog.Logger) *Scheduler {
	logger = logger.With("component", "scheduler")
	cronLogger := slogAdapter{logger: logger}

	return &Scheduler{
		runner: runner,
		config: cfg,
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLogger),
		),
		cronLogger: cronLogger,
		logger:     logger,
	}
}

// Start blocks until ctx is cancelled, then waits for running jobs to stop.
// The start-up run shares the scheduled job's overlap guard, so a firing
// during it is skipped.
func (s *Scheduler) Start(ctx context.Context) error {
	schedule, err := cron.ParseStandard(s.config.Schedule)
	if err != nil {
		return fmt.Errorf("parse schedule %q: %w", s.config.Schedule, err)
	}

	s.job = cron.NewChain(cron.Recover(s.cronLogger), cron.SkipIfStillRunning(s.cronLogger)).
		Then(cron.FuncJob(func() { s.RunOnce(ctx) }))
	s.cron.Schedule(schedule, s.job)

	s.logger.Info("scheduler started", "schedule", s.config.Schedule, "mode", s.config.Mode)

	var startup sync.WaitGroup
	if s.config.RunOnStart {
		startup.Add(1)
		go func() {
			defer startup.Done()
			s.job.Run()
		}()
	}

	s.cron.Start()

	<-ctx.Done()
	s.logger.Info("scheduler stopping")
	<-s.cron.Stop().Done()
	startup.Wait()
	s.logger.Info("scheduler stopped")
	return ctx.Err()
}

// RunOnce performs a single run bounded by the configured run timeout.
func (s *Scheduler) RunOnce(ctx context.Context) *domain.RunStats {
	runCtx := ctx
	if s.config.RunTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.config.RunTimeout)
		defer cancel()
	}

	stats, err := s.runner.Run(runCtx, s.config.Mode)
	if err != nil {
		s.logger.Error("run failed", "error", err)
		return nil
	}
	return stats
}

// slogAdapter satisfies cron.Logger.
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Info(msg string, keysAndValues ...any) {
	a.logger.Debug(msg, keysAndValues...)
}

func (a slogAdapter) Error(err error, msg string, keysAndValues ...any) {
	a.logger.Error(msg, append(keysAndValues, "error", err)...)
}
