package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"channel_ranker/internal/domain"
)

// AuditService compares stored totals with the channel total reported
// upstream. It only reads.
type AuditService struct {
	source    Source
	channels  ChannelStore
	videos    VideoStore
	snapshots SnapshotStore
	logger    *slog.Logger
	now       func() time.Time
}

func NewAuditService(source Source, channels ChannelStore, videos VideoStore, snapshots SnapshotStore, logger *slog.Logger) *AuditService {
	return &AuditService{
		source:    source,
		channels:  channels,
		videos:    videos,
		snapshots: snapshots,
		logger:    logger.With("component", "audit"),
		now:       time.Now,
	}
}

// Audit reports the divergence between the stored sum of video views and
// the reported channel total, plus the snapshot diff persisted for date.
// A zero date means today.
func (s *AuditService) Audit(ctx context.Context, ref string, date time.Time) (*domain.AuditReport, error) {
	if date.IsZero() {
		date = s.now()
	}
	date = domain.DateOf(date)

	resolved, err := s.source.ResolveChannel(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("resolve channel: %w", err)
	}

	ch, err := s.channels.Get(ctx, resolved.ID)
	if err != nil {
		return nil, fmt.Errorf("stored channel: %w", err)
	}

	reported, err := s.source.FetchChannelStatistics(ctx, ch.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch channel statistics: %w", err)
	}

	totals, err := s.videos.ChannelTotals(ctx, ch.ID)
	if err != nil {
		return nil, fmt.Errorf("channel totals: %w", err)
	}

	report := &domain.AuditReport{
		ChannelID:        ch.ID,
		Title:            ch.Title,
		Date:             date,
		ReportedViews:    reported.ViewCount,
		StoredViews:      totals.TotalViews,
		DiffPercent:      domain.DiffPercent(totals.TotalViews, &reported.ViewCount),
		VideoCountAPI:    reported.VideoCount,
		VideoCountStored: totals.VideoCount,
	}
	if reported.VideoCount > 0 {
		report.VideoCoverage = float64(totals.VideoCount) / float64(reported.VideoCount) * 100
	}
	report.Verdict = domain.ClassifyDivergence(report.DiffPercent)

	snap, err := s.snapshots.ChannelSnapshot(ctx, ch.ID, date)
	switch {
	case err == nil:
		report.SnapshotDiffPercent = snap.DiffPercent
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("snapshot on %s: %w", domain.FormatDate(date), err)
	}

	s.logger.Info("audit completed",
		"channel_id", ch.ID,
		"reported", report.ReportedViews,
		"stored", report.StoredViews,
		"diff_percent", report.DiffPercent,
		"verdict", report.Verdict,
	)

	return report, nil
}
