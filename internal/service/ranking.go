package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"channel_ranker/internal/domain"
)

var (
	errNoSnapshotFromStart = errors.New("no snapshot on or after start")
	errNoSnapshotUntilEnd  = errors.New("no snapshot on or before end")
	errStartAfterEnd       = errors.New("start snapshot after end snapshot")
)

const (
	DefaultGlobalLimit = 100
	MaxGlobalLimit     = 500
	topVideosLimit     = 10
)

type RankingService struct {
	channels  ChannelStore
	videos    VideoStore
	snapshots SnapshotStore
	cache     RankingCache
	logger    *slog.Logger
}

func NewRankingService(channels ChannelStore, videos VideoStore, snapshots SnapshotStore, cache RankingCache, logger *slog.Logger) *RankingService {
	return &RankingService{
		channels:  channels,
		videos:    videos,
		snapshots: snapshots,
		cache:     cache,
		logger:    logger.With("component", "ranking"),
	}
}

// PeriodDelta ranks channels by view growth between the snapshots bounding
// [start, end]. Channels without a usable pair are listed as excluded, never
// ranked with a zero delta.
func (s *RankingService) PeriodDelta(ctx context.Context, start, end time.Time) (*domain.DeltaRanking, error) {
	start, end = domain.DateOf(start), domain.DateOf(end)
	if err := checkPeriod(start, end); err != nil {
		return nil, err
	}

	// The write below is pinned to the generation this read observed, so a
	// ranking computed across a snapshot commit is never served afterwards.
	cacheable := false
	var generation int64
	if s.cache != nil {
		cached, gen, err := s.cache.GetDelta(ctx, start, end)
		switch {
		case err != nil:
			s.logger.Warn("ranking cache read failed", "error", err)
		case cached != nil:
			return cached, nil
		default:
			cacheable, generation = true, gen
		}
	}

	channels, err := s.channels.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}

	ranking := &domain.DeltaRanking{
		Start:    start,
		End:      end,
		Entries:  []domain.ChannelDelta{},
		Excluded: []domain.Exclusion{},
	}

	for _, ch := range channels {
		states, err := s.snapshots.SnapshotStates(ctx, ch.ID)
		if err != nil {
			return nil, fmt.Errorf("snapshot states of %s: %w", ch.ID, err)
		}

		from, to, err := selectPair(states, start, end)
		if err != nil {
			ranking.Excluded = append(ranking.Excluded, domain.Exclusion{
				ChannelID: ch.ID,
				Title:     ch.Title,
				Reason:    err.Error(),
			})
			continue
		}

		entry := domain.ChannelDelta{
			ChannelID:  ch.ID,
			Title:      ch.Title,
			StartDate:  from.Date,
			EndDate:    to.Date,
			StartViews: from.TotalViews,
			EndViews:   to.TotalViews,
			DeltaViews: to.TotalViews - from.TotalViews,
		}
		if from.TotalViews > 0 {
			entry.Percent = float64(entry.DeltaViews) / float64(from.TotalViews) * 100
		}
		ranking.Entries = append(ranking.Entries, entry)
	}

	slices.SortFunc(ranking.Entries, func(a, b domain.ChannelDelta) int {
		if c := cmp.Compare(b.DeltaViews, a.DeltaViews); c != 0 {
			return c
		}
		return cmp.Compare(a.ChannelID, b.ChannelID)
	})

	if cacheable {
		if err := s.cache.SetDelta(ctx, generation, ranking); err != nil {
			s.logger.Warn("ranking cache write failed", "error", err)
		}
	}

	return ranking, nil
}

// GlobalRanking ranks channels by their last-known total views. A zero limit
// means DefaultGlobalLimit; larger limits are capped at MaxGlobalLimit.
func (s *RankingService) GlobalRanking(ctx context.Context, limit, offset int, search string) (*domain.GlobalRanking, error) {
	if limit < 0 || offset < 0 {
		return nil, fmt.Errorf("limit %d offset %d: %w", limit, offset, domain.ErrInvalidArgument)
	}
	if limit == 0 {
		limit = DefaultGlobalLimit
	}
	limit = min(limit, MaxGlobalLimit)
	search = strings.TrimSpace(search)

	entries, err := s.videos.GlobalRanking(ctx, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("global ranking: %w", err)
	}
	if entries == nil {
		entries = []domain.GlobalRankingEntry{}
	}

	return &domain.GlobalRanking{
		Query:   search,
		Limit:   limit,
		Offset:  offset,
		Entries: entries,
	}, nil
}

// ChannelDetails returns a stored channel with its totals and most viewed
// uploads.
func (s *RankingService) ChannelDetails(ctx context.Context, channelID string) (*domain.ChannelDetails, error) {
	ch, err := s.channels.Get(ctx, channelID)
	if err != nil {
		return nil, err
	}

	totals, err := s.videos.ChannelTotals(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("channel totals: %w", err)
	}

	top, err := s.videos.TopVideos(ctx, channelID, false, topVideosLimit)
	if err != nil {
		return nil, fmt.Errorf("top videos: %w", err)
	}

	shorts, err := s.videos.TopVideos(ctx, channelID, true, 1)
	if err != nil {
		return nil, fmt.Errorf("top short: %w", err)
	}

	details := &domain.ChannelDetails{
		Channel:   *ch,
		Totals:    *totals,
		TopVideos: top,
	}
	if details.TopVideos == nil {
		details.TopVideos = []domain.Video{}
	}
	if len(top) > 0 {
		details.TopVideo = &top[0]
	}
	if len(shorts) > 0 {
		details.TopShort = &shorts[0]
	}
	return details, nil
}

// selectPair picks the earliest observed date on or after start and the
// latest on or before end. A partial snapshot at either boundary excludes the
// channel; partial dates are never skipped in favour of a neighbour.
func selectPair(states []domain.SnapshotState, start, end time.Time) (from, to domain.SnapshotState, err error) {
	fromIdx, toIdx := -1, -1
	for i, st := range states {
		if fromIdx < 0 && !st.Date.Before(start) {
			fromIdx = i
		}
		if !st.Date.After(end) {
			toIdx = i
		}
	}

	switch {
	case fromIdx < 0:
		return from, to, errNoSnapshotFromStart
	case toIdx < 0:
		return from, to, errNoSnapshotUntilEnd
	}

	from, to = states[fromIdx], states[toIdx]
	switch {
	case from.Date.After(to.Date):
		return from, to, errStartAfterEnd
	case !from.Complete():
		return from, to, fmt.Errorf("%w at start boundary %s", domain.ErrPartialSnapshot, domain.FormatDate(from.Date))
	case !to.Complete():
		return from, to, fmt.Errorf("%w at end boundary %s", domain.ErrPartialSnapshot, domain.FormatDate(to.Date))
	}
	return from, to, nil
}

// ContentPeriodAggregate sums current views of videos published inside
// [start, end]. It reflects production in the period, not growth.
func (s *RankingService) ContentPeriodAggregate(ctx context.Context, start, end time.Time) (*domain.ContentRanking, error) {
	start, end = domain.DateOf(start), domain.DateOf(end)
	if err := checkPeriod(start, end); err != nil {
		return nil, err
	}

	rows, err := s.snapshots.ContentAggregates(ctx, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("content aggregates: %w", err)
	}

	for i := range rows {
		enrichContent(&rows[i])
	}
	slices.SortFunc(rows, func(a, b domain.ContentAggregate) int {
		if c := cmp.Compare(b.WeightedViews, a.WeightedViews); c != 0 {
			return c
		}
		return cmp.Compare(a.ChannelID, b.ChannelID)
	})

	if rows == nil {
		rows = []domain.ContentAggregate{}
	}
	return &domain.ContentRanking{Start: start, End: end, Entries: rows}, nil
}

func enrichContent(a *domain.ContentAggregate) {
	a.WeightedViews = float64(a.LongViews) + domain.ShortsWeight*float64(a.ShortsViews)
	if n := a.ShortsCount + a.LongCount; n > 0 {
		a.AvgPerVideo = float64(a.TotalViews) / float64(n)
	}
	if a.ShortsCount > 0 {
		a.AvgShorts = float64(a.ShortsViews) / float64(a.ShortsCount)
	}
	if a.LongCount > 0 {
		a.AvgLong = float64(a.LongViews) / float64(a.LongCount)
	}
	a.BelowCutoff = a.TotalViews < domain.EditorialCutoff
}

// GrowthSeries returns the complete snapshots of a channel inside the window,
// normalized to the first point.
func (s *RankingService) GrowthSeries(ctx context.Context, channelID string, from, to time.Time) ([]domain.SeriesPoint, error) {
	from, to = domain.DateOf(from), domain.DateOf(to)
	if err := checkPeriod(from, to); err != nil {
		return nil, err
	}

	if _, err := s.channels.Get(ctx, channelID); err != nil {
		return nil, err
	}

	points, err := s.snapshots.Series(ctx, channelID, from, to)
	if err != nil {
		return nil, fmt.Errorf("series of %s: %w", channelID, err)
	}
	return NormalizeSeries(points), nil
}

// NormalizeSeries returns a copy of points with Normalized set relative to
// the first point. The input is left untouched.
func NormalizeSeries(points []domain.SeriesPoint) []domain.SeriesPoint {
	out := make([]domain.SeriesPoint, len(points))
	copy(out, points)
	if len(out) == 0 {
		return out
	}
	base := out[0].TotalViews
	for i := range out {
		out[i].Normalized = out[i].TotalViews - base
	}
	return out
}

func (s *RankingService) SnapshotCoverage(ctx context.Context) ([]domain.CoverageDay, error) {
	days, err := s.snapshots.Coverage(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot coverage: %w", err)
	}
	if days == nil {
		days = []domain.CoverageDay{}
	}
	return days, nil
}

func checkPeriod(start, end time.Time) error {
	if start.After(end) {
		return fmt.Errorf("start %s after end %s: %w",
			domain.FormatDate(start), domain.FormatDate(end), domain.ErrInvalidPeriod)
	}
	return nil
}
