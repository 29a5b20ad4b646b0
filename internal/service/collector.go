package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"channel_ranker/internal/config"
	"channel_ranker/internal/domain"
)

// Collector runs one collection cycle for one channel: list uploads, refresh
// the planned statistics and write the day's snapshot.
type Collector struct {
	source    Source
	channels  ChannelStore
	videos    VideoStore
	snapshots SnapshotStore
	states    CollectionStateStore
	leases    LeaseStore
	publisher Publisher
	cache     RankingCache
	metrics   Recorder
	logger    *slog.Logger
	config    config.CollectionConfig
	holder    string
	now       func() time.Time
}

func NewCollector(
	source Source,
	channels ChannelStore,
	videos VideoStore,
	snapshots SnapshotStore,
	states CollectionStateStore,
	leases LeaseStore,
	publisher Publisher,
	cache RankingCache,
	metrics Recorder,
	logger *slog.Logger,
	cfg config.CollectionConfig,
	holder string,
) *Collector {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &Collector{
		source:    source,
		channels:  channels,
		videos:    videos,
		snapshots: snapshots,
		states:    states,
		leases:    leases,
		publisher: publisher,
		cache:     cache,
		metrics:   metrics,
		logger:    logger.With("component", "collector"),
		config:    cfg,
		holder:    holder,
		now:       time.Now,
	}
}

// Collect resolves ref and runs one cycle for it. A channel already being
// collected fails fast with domain.ErrCollectionBusy.
func (c *Collector) Collect(ctx context.Context, ref string, mode domain.Mode) (*domain.CollectionResult, error) {
	startTime := c.now().UTC()

	ch, err := c.source.ResolveChannel(ctx, ref)
	if err != nil {
		c.metrics.ObserveCollection(mode, outcomeOf(err), time.Since(startTime))
		return nil, fmt.Errorf("resolve channel: %w", err)
	}

	logger := c.logger.With("channel_id", ch.ID, "mode", mode)

	release, err := c.acquire(ctx, ch.ID, c.now().UTC())
	if err != nil {
		c.metrics.ObserveCollection(mode, outcomeOf(err), time.Since(startTime))
		return nil, err
	}
	defer release()

	cycleCtx, stop := c.holdLease(ctx, ch.ID, logger)
	result, err := c.collect(cycleCtx, ch, mode, startTime, logger)
	lost := errors.Is(context.Cause(cycleCtx), domain.ErrLeaseLost)
	stop()

	if err != nil && lost {
		err = fmt.Errorf("%w: %w", domain.ErrLeaseLost, err)
	}
	c.metrics.ObserveCollection(mode, outcomeOf(err), time.Since(startTime))
	if err != nil {
		// after losing the lease the state belongs to the new holder
		if !lost {
			c.recordFailure(ctx, ch.ID, err, logger)
		}
		return nil, err
	}
	return result, nil
}

// DeleteChannel removes a channel with everything it owns. It takes the
// channel lease first so a running collection is never cut in half.
func (c *Collector) DeleteChannel(ctx context.Context, channelID string) (*domain.DeleteResult, error) {
	release, err := c.acquire(ctx, channelID, c.now().UTC())
	if err != nil {
		return nil, err
	}
	defer release()

	result, err := c.channels.Delete(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("delete channel: %w", err)
	}

	c.invalidateCache(ctx)
	c.logger.Info("channel deleted",
		"channel_id", channelID,
		"videos", result.Videos,
		"channel_snapshots", result.ChannelSnapshots,
		"video_snapshots", result.VideoSnapshots,
	)
	return result, nil
}

func (c *Collector) acquire(ctx context.Context, channelID string, now time.Time) (func(), error) {
	ok, err := c.leases.TryAcquire(ctx, channelID, c.holder, now, c.config.LeaseTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire lease: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("channel %s: %w", channelID, domain.ErrCollectionBusy)
	}

	return func() {
		if err := c.leases.Release(context.WithoutCancel(ctx), channelID, c.holder); err != nil {
			c.logger.Warn("failed to release lease", "channel_id", channelID, "error", err)
		}
	}, nil
}

// holdLease renews the channel lease every third of its TTL while a cycle
// runs. The returned context is cancelled with domain.ErrLeaseLost once the
// lease is taken over or could not be renewed before it lapses. stop ends the
// renewals and waits for them.
func (c *Collector) holdLease(ctx context.Context, channelID string, logger *slog.Logger) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(ctx)

	ttl := c.config.LeaseTTL
	interval := ttl / 3
	if interval <= 0 {
		return ctx, func() { cancel(nil) }
	}

	done := make(chan struct{})
	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		renewed := time.Now()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			ok, err := c.leases.Renew(ctx, channelID, c.holder, c.now().UTC(), ttl)
			switch {
			case ctx.Err() != nil:
				return
			case err != nil:
				logger.Warn("failed to renew lease", "error", err)
				if time.Since(renewed)+interval < ttl {
					continue
				}
			case ok:
				renewed = time.Now()
				continue
			}

			logger.Warn("collection lease lost, aborting cycle")
			cancel(domain.ErrLeaseLost)
			return
		}
	}()

	return ctx, func() {
		cancel(nil)
		<-done
	}
}

func (c *Collector) collect(ctx context.Context, ch *domain.Channel, mode domain.Mode, startTime time.Time, logger *slog.Logger) (*domain.CollectionResult, error) {
	logger.Info("starting collection", "title", ch.Title)

	if err := c.channels.Upsert(ctx, ch); err != nil {
		return nil, fmt.Errorf("upsert channel: %w", err)
	}

	state, err := c.states.Get(ctx, ch.ID)
	if err != nil {
		return nil, fmt.Errorf("get collection state: %w", err)
	}

	var since time.Time
	if mode == domain.ModeIncremental {
		since = state.LastCollectedAt
	}

	listed, err := c.listVideos(ctx, ch, since)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	stored, err := c.videos.ListByChannel(ctx, ch.ID)
	if err != nil {
		return nil, fmt.Errorf("list stored videos: %w", err)
	}

	plan := planRefresh(mode, listed, stored, startTime, c.config.RecencyWindow(), c.config.RotationFraction)
	ids := plan.IDs()

	logger.Debug("refresh planned",
		"listed", len(listed),
		"stored", len(stored),
		"new", len(plan.New),
		"pending", len(plan.Pending),
		"broadcasts", len(plan.Broadcasts),
		"recent", len(plan.Recent),
		"rotated", len(plan.Rotated),
	)

	added, err := c.videos.UpsertMetadata(ctx, listed, startTime)
	if err != nil {
		return nil, fmt.Errorf("upsert videos: %w", err)
	}

	stats, err := c.source.FetchStatistics(ctx, ids, staleBroadcasts(listed, stored))
	if err != nil {
		return nil, fmt.Errorf("fetch statistics: %w", err)
	}

	if len(stats.Refreshed) > 0 {
		for i := range stats.Refreshed {
			stats.Refreshed[i].ChannelID = ch.ID
		}
		if _, err := c.videos.UpsertMetadata(ctx, stats.Refreshed, startTime); err != nil {
			return nil, fmt.Errorf("refresh broadcast metadata: %w", err)
		}
	}

	// only planned ids count; anything else upstream returned is ignored
	counts := make(map[string]int64, len(ids))
	for _, id := range ids {
		if views, ok := stats.Views[id]; ok {
			counts[id] = views
		}
	}

	updated, err := c.videos.UpdateViewCounts(ctx, counts, c.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update view counts: %w", err)
	}

	result := &domain.CollectionResult{
		ChannelID:     ch.ID,
		Title:         ch.Title,
		Mode:          mode,
		VideosListed:  len(listed),
		VideosAdded:   added,
		VideosUpdated: updated,
		Errors:        len(ids) - len(counts),
		Recent:        len(plan.Recent),
		Rotated:       len(plan.Rotated),
	}

	reported, err := c.source.FetchChannelStatistics(ctx, ch.ID)
	if err != nil {
		if errors.Is(err, domain.ErrQuotaExhausted) {
			return nil, fmt.Errorf("fetch channel statistics: %w", err)
		}
		logger.Warn("channel statistics unavailable", "error", err)
		reported = nil
	}

	// a cancelled cycle leaves the previous snapshots untouched
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("collection interrupted: %w", err)
	}

	snap, err := c.snapshots.WriteSnapshot(ctx, ch.ID, startTime, reported)
	if err != nil {
		return nil, fmt.Errorf("write snapshot: %w", err)
	}
	result.SnapshotDate = snap.SnapshotDate
	result.TotalViews = snap.TotalViews

	state.ChannelID = ch.ID
	state.LastCollectedAt = startTime
	state.LastMode = mode
	state.TotalCollections++
	state.LastError = ""
	if err := c.states.Update(ctx, state); err != nil {
		return nil, fmt.Errorf("update collection state: %w", err)
	}

	if c.publisher != nil {
		if err := c.publisher.PublishSnapshot(ctx, snap, result); err != nil {
			logger.Warn("failed to publish snapshot", "error", err)
		}
	}
	c.invalidateCache(ctx)

	c.metrics.AddVideosRefreshed(updated)
	c.metrics.AddFetchErrors(result.Errors)

	result.Duration = time.Since(startTime)

	logger.Info("collection completed",
		"listed", result.VideosListed,
		"added", result.VideosAdded,
		"updated", result.VideosUpdated,
		"errors", result.Errors,
		"total_views", result.TotalViews,
		"diff_percent", snap.DiffPercent,
		"duration", result.Duration,
	)

	return result, nil
}

func (c *Collector) listVideos(ctx context.Context, ch *domain.Channel, since time.Time) ([]domain.Video, error) {
	var videos []domain.Video
	pageToken := ""
	for {
		page, err := c.source.ListVideos(ctx, ch, since, pageToken)
		if err != nil {
			return nil, err
		}
		videos = append(videos, page.Videos...)

		if page.NextPageToken == "" || page.NextPageToken == pageToken {
			return videos, nil
		}
		pageToken = page.NextPageToken
	}
}

func (c *Collector) invalidateCache(ctx context.Context) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Invalidate(ctx); err != nil {
		c.logger.Warn("failed to invalidate ranking cache", "error", err)
	}
}

func (c *Collector) recordFailure(ctx context.Context, channelID string, cause error, logger *slog.Logger) {
	logger.Error("collection failed", "error", cause)

	ctx = context.WithoutCancel(ctx)
	state, err := c.states.Get(ctx, channelID)
	if err != nil {
		logger.Warn("failed to read collection state", "error", err)
		return
	}
	if state.LastCollectedAt.IsZero() {
		// no completed collection to annotate
		return
	}
	state.LastError = cause.Error()
	if err := c.states.Update(ctx, state); err != nil {
		logger.Warn("failed to record collection error", "error", err)
	}
}

func outcomeOf(err error) domain.Outcome {
	switch {
	case err == nil:
		return domain.OutcomeSucceeded
	case errors.Is(err, domain.ErrCollectionBusy), errors.Is(err, domain.ErrLeaseLost):
		return domain.OutcomeBusy
	case errors.Is(err, domain.ErrNotFound):
		return domain.OutcomeNotFound
	case errors.Is(err, domain.ErrQuotaExhausted),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return domain.OutcomeDeferred
	}
	return domain.OutcomeFailed
}
