package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"channel_ranker/internal/domain"
)

type SnapshotStore struct {
	db *sqlx.DB
	tm *TransactionManager
}

func NewSnapshotStore(db *sqlx.DB) *SnapshotStore {
	return &SnapshotStore{db: db, tm: NewTransactionManager(db)}
}

// videosCompleteExpr is true when every video first seen on or before
// d.snapshot_date has a video snapshot on that date.
const videosCompleteExpr = `NOT EXISTS (
	SELECT 1 FROM videos v
	WHERE v.channel_id = $1
		AND v.first_seen_on <= d.snapshot_date
		AND NOT EXISTS (
			SELECT 1 FROM video_snapshots vs
			WHERE vs.video_id = v.video_id AND vs.snapshot_date = d.snapshot_date
		)
)`

// WriteSnapshot records one video snapshot per owned video from its current
// count, then the channel snapshot aggregated from exactly those rows. The
// whole write commits atomically and rewriting a date overwrites it.
func (s *SnapshotStore) WriteSnapshot(ctx context.Context, channelID string, date time.Time, reported *domain.ChannelStatistics) (*domain.ChannelSnapshot, error) {
	day := domain.FormatDate(date)
	var snap domain.ChannelSnapshot

	err := s.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, s.db)

		_, err := exec.ExecContext(txCtx, `
			INSERT INTO video_snapshots (video_id, snapshot_date, view_count)
			SELECT video_id, $2::date, last_view_count
			FROM videos
			WHERE channel_id = $1
			ON CONFLICT (video_id, snapshot_date) DO UPDATE SET
				view_count = EXCLUDED.view_count`,
			channelID, day,
		)
		if err != nil {
			return fmt.Errorf("write video snapshots: %w", err)
		}

		var totals domain.ChannelTotals
		err = sqlx.GetContext(txCtx, exec, &totals, `
			SELECT
				$1::text AS channel_id,
				COALESCE(SUM(vs.view_count), 0) AS total_views,
				COALESCE(SUM(vs.view_count) FILTER (WHERE v.is_short), 0) AS shorts_views,
				COALESCE(SUM(vs.view_count) FILTER (WHERE NOT v.is_short), 0) AS long_views,
				COUNT(*) AS video_count,
				COUNT(*) FILTER (WHERE v.is_short) AS shorts_count
			FROM video_snapshots vs
			JOIN videos v ON v.video_id = vs.video_id
			WHERE v.channel_id = $1 AND vs.snapshot_date = $2::date`,
			channelID, day,
		)
		if err != nil {
			return fmt.Errorf("aggregate video snapshots: %w", err)
		}

		var reportedViews, reportedVideos *int64
		if reported != nil {
			reportedViews = &reported.ViewCount
			reportedVideos = &reported.VideoCount
		}

		err = sqlx.GetContext(txCtx, exec, &snap, `
			INSERT INTO channel_snapshots (
				channel_id, snapshot_date, total_views, shorts_views, long_views,
				video_count, shorts_count, reported_channel_views, reported_video_count, diff_percent
			) VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (channel_id, snapshot_date) DO UPDATE SET
				total_views = EXCLUDED.total_views,
				shorts_views = EXCLUDED.shorts_views,
				long_views = EXCLUDED.long_views,
				video_count = EXCLUDED.video_count,
				shorts_count = EXCLUDED.shorts_count,
				reported_channel_views = EXCLUDED.reported_channel_views,
				reported_video_count = EXCLUDED.reported_video_count,
				diff_percent = EXCLUDED.diff_percent,
				created_at = now()
			RETURNING channel_id, snapshot_date, total_views, shorts_views, long_views, video_count,
				shorts_count, reported_channel_views, reported_video_count, diff_percent, created_at`,
			channelID,
			day,
			totals.TotalViews,
			totals.ShortsViews,
			totals.LongViews,
			totals.VideoCount,
			totals.ShortsCount,
			reportedViews,
			reportedVideos,
			domain.DiffPercent(totals.TotalViews, reportedViews),
		)
		if err != nil {
			return fmt.Errorf("write channel snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	snap.SnapshotDate = domain.DateOf(snap.SnapshotDate)
	return &snap, nil
}

// SnapshotStates lists every date observed for the channel at either
// granularity, oldest first.
func (s *SnapshotStore) SnapshotStates(ctx context.Context, channelID string) ([]domain.SnapshotState, error) {
	query := `
		WITH d AS (
			SELECT snapshot_date FROM channel_snapshots WHERE channel_id = $1
			UNION
			SELECT vs.snapshot_date
			FROM video_snapshots vs
			JOIN videos v ON v.video_id = vs.video_id
			WHERE v.channel_id = $1
		)
		SELECT
			d.snapshot_date,
			cs.channel_id IS NOT NULL AS has_channel_row,
			` + videosCompleteExpr + ` AS videos_complete,
			COALESCE(cs.total_views, 0) AS total_views
		FROM d
		LEFT JOIN channel_snapshots cs ON cs.channel_id = $1 AND cs.snapshot_date = d.snapshot_date
		ORDER BY d.snapshot_date`

	var states []domain.SnapshotState
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &states, query, channelID); err != nil {
		return nil, err
	}
	for i := range states {
		states[i].Date = domain.DateOf(states[i].Date)
	}
	return states, nil
}

func (s *SnapshotStore) ChannelSnapshot(ctx context.Context, channelID string, date time.Time) (*domain.ChannelSnapshot, error) {
	query := `
		SELECT channel_id, snapshot_date, total_views, shorts_views, long_views, video_count,
			shorts_count, reported_channel_views, reported_video_count, diff_percent, created_at
		FROM channel_snapshots
		WHERE channel_id = $1 AND snapshot_date = $2::date`

	var snap domain.ChannelSnapshot
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &snap, query, channelID, domain.FormatDate(date))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("snapshot %s on %s: %w", channelID, domain.FormatDate(date), domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	snap.SnapshotDate = domain.DateOf(snap.SnapshotDate)
	return &snap, nil
}

// Series returns the complete channel snapshots inside [from, to].
func (s *SnapshotStore) Series(ctx context.Context, channelID string, from, to time.Time) ([]domain.SeriesPoint, error) {
	query := `
		SELECT d.snapshot_date, d.total_views
		FROM channel_snapshots d
		WHERE d.channel_id = $1
			AND d.snapshot_date BETWEEN $2::date AND $3::date
			AND ` + videosCompleteExpr + `
		ORDER BY d.snapshot_date`

	var points []domain.SeriesPoint
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &points, query,
		channelID, domain.FormatDate(from), domain.FormatDate(to))
	if err != nil {
		return nil, err
	}
	for i := range points {
		points[i].Date = domain.DateOf(points[i].Date)
	}
	return points, nil
}

func (s *SnapshotStore) Coverage(ctx context.Context) ([]domain.CoverageDay, error) {
	query := `
		SELECT
			snapshot_date,
			COALESCE(v.videos, 0) AS videos,
			COALESCE(c.channels, 0) AS channels
		FROM (
			SELECT snapshot_date, COUNT(DISTINCT video_id) AS videos
			FROM video_snapshots GROUP BY snapshot_date
		) v
		FULL OUTER JOIN (
			SELECT snapshot_date, COUNT(DISTINCT channel_id) AS channels
			FROM channel_snapshots GROUP BY snapshot_date
		) c USING (snapshot_date)
		ORDER BY snapshot_date`

	var days []domain.CoverageDay
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &days, query); err != nil {
		return nil, err
	}
	for i := range days {
		days[i].Date = domain.DateOf(days[i].Date)
	}
	return days, nil
}

// ContentAggregates sums current view counts of videos published in
// [start, endExclusive), per channel.
func (s *SnapshotStore) ContentAggregates(ctx context.Context, start, endExclusive time.Time) ([]domain.ContentAggregate, error) {
	query := `
		SELECT
			c.channel_id,
			c.title,
			COALESCE(SUM(v.last_view_count) FILTER (WHERE v.is_short), 0) AS shorts_views,
			COALESCE(SUM(v.last_view_count) FILTER (WHERE NOT v.is_short), 0) AS long_views,
			COALESCE(SUM(v.last_view_count), 0) AS total_views,
			COUNT(*) FILTER (WHERE v.is_short) AS shorts_count,
			COUNT(*) FILTER (WHERE NOT v.is_short) AS long_count
		FROM channels c
		JOIN videos v ON v.channel_id = c.channel_id
		WHERE v.published_at >= $1 AND v.published_at < $2
		GROUP BY c.channel_id, c.title
		ORDER BY total_views DESC, c.channel_id`

	var rows []domain.ContentAggregate
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, start, endExclusive); err != nil {
		return nil, err
	}
	return rows, nil
}
