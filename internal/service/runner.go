package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"channel_ranker/internal/config"
	"channel_ranker/internal/domain"
)

// Runner collects every tracked channel with bounded parallelism against a
// shared quota budget.
type Runner struct {
	collector ChannelCollector
	channels  ChannelStore
	budget    Budget
	metrics   Recorder
	logger    *slog.Logger
	config    config.CollectionConfig
}

func NewRunner(
	collector ChannelCollector,
	channels ChannelStore,
	budget Budget,
	metrics Recorder,
	logger *slog.Logger,
	cfg config.CollectionConfig,
) *Runner {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &Runner{
		collector: collector,
		channels:  channels,
		budget:    budget,
		metrics:   metrics,
		logger:    logger.With("component", "runner"),
		config:    cfg,
	}
}

// Run collects all stored channels plus configured seeds not stored yet.
// Channels that cannot start because the context ended or the quota budget
// ran low are deferred to the next run rather than failed.
func (r *Runner) Run(ctx context.Context, mode domain.Mode) (*domain.RunStats, error) {
	startTime := time.Now()
	r.budget.Reset()

	refs, err := r.channelRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}

	r.logger.Info("starting run",
		"mode", mode,
		"channels", len(refs),
		"parallelism", r.config.Parallelism,
	)

	outcomes := make([]domain.ChannelOutcome, len(refs))

	var g errgroup.Group
	g.SetLimit(max(1, r.config.Parallelism))
	for i, ref := range refs {
		g.Go(func() error {
			outcomes[i] = r.collectOne(ctx, ref, mode)
			return nil
		})
	}
	_ = g.Wait()

	stats := &domain.RunStats{
		Mode:     mode,
		Channels: len(refs),
		Deferred: []string{},
		Outcomes: outcomes,
	}
	for _, o := range outcomes {
		switch o.Outcome {
		case domain.OutcomeSucceeded:
			stats.Succeeded++
			stats.VideosAdded += o.Result.VideosAdded
			stats.VideosUpdated += o.Result.VideosUpdated
			stats.FetchErrors += o.Result.Errors
		case domain.OutcomeBusy:
			stats.Busy++
		case domain.OutcomeNotFound:
			stats.NotFound++
		case domain.OutcomeDeferred:
			stats.Deferred = append(stats.Deferred, o.Ref)
		default:
			stats.Failed++
		}
	}
	stats.QuotaUsed = r.budget.Used()
	stats.Duration = time.Since(startTime)
	r.metrics.SetQuotaUsed(stats.QuotaUsed)

	r.logger.Info("run completed",
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"busy", stats.Busy,
		"not_found", stats.NotFound,
		"deferred", len(stats.Deferred),
		"quota_used", stats.QuotaUsed,
		"duration", stats.Duration,
	)

	return stats, nil
}

func (r *Runner) collectOne(ctx context.Context, ref string, mode domain.Mode) domain.ChannelOutcome {
	if err := ctx.Err(); err != nil {
		return domain.ChannelOutcome{Ref: ref, Outcome: domain.OutcomeDeferred, Error: err.Error()}
	}
	if !r.budget.Covers(r.config.MinUnitsPerChannel) {
		return domain.ChannelOutcome{Ref: ref, Outcome: domain.OutcomeDeferred, Error: domain.ErrQuotaExhausted.Error()}
	}

	result, err := r.collector.Collect(ctx, ref, mode)
	if err != nil {
		outcome := outcomeOf(err)
		r.logger.Warn("channel not collected", "ref", ref, "outcome", outcome, "error", err)
		return domain.ChannelOutcome{Ref: ref, Outcome: outcome, Error: err.Error()}
	}
	return domain.ChannelOutcome{Ref: ref, Outcome: domain.OutcomeSucceeded, Result: result}
}

// channelRefs orders stored channels least recently collected first, then
// appends configured seeds that do not match a stored ID or handle.
func (r *Runner) channelRefs(ctx context.Context) ([]string, error) {
	stored, err := r.channels.List(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(stored)*2)
	refs := make([]string, 0, len(stored)+len(r.config.Channels))
	for _, ch := range stored {
		refs = append(refs, ch.ID)
		known[ch.ID] = struct{}{}
		if ch.Handle != "" {
			known[handleKey(ch.Handle)] = struct{}{}
		}
	}

	for _, seed := range r.config.Channels {
		seed = strings.TrimSpace(seed)
		if seed == "" {
			continue
		}
		if _, ok := known[seed]; ok {
			continue
		}
		if _, ok := known[handleKey(seed)]; ok {
			continue
		}
		known[seed] = struct{}{}
		refs = append(refs, seed)
	}
	return refs, nil
}

func handleKey(s string) string {
	return "@" + strings.ToLower(strings.TrimPrefix(s, "@"))
}
