package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"channel_ranker/internal/domain"
)

type VideoStore struct {
	db *sqlx.DB
	tm *TransactionManager
}

func NewVideoStore(db *sqlx.DB) *VideoStore {
	return &VideoStore{db: db, tm: NewTransactionManager(db)}
}

type videoRow struct {
	domain.Video
	FetchedAt sql.NullTime `db:"last_fetched_at"`
}

// UpsertMetadata inserts or refreshes video metadata and returns how many
// videos were new. View counts are never touched here; new videos start at
// zero and unfetched, first seen on seenOn.
func (s *VideoStore) UpsertMetadata(ctx context.Context, videos []domain.Video, seenOn time.Time) (int, error) {
	if len(videos) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO videos (
			video_id, channel_id, title, duration_seconds, is_short, liveness, published_at, first_seen_on
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8::date)
		ON CONFLICT (video_id) DO UPDATE SET
			title = EXCLUDED.title,
			duration_seconds = EXCLUDED.duration_seconds,
			is_short = EXCLUDED.is_short,
			liveness = EXCLUDED.liveness,
			published_at = EXCLUDED.published_at
		RETURNING (xmax = 0) AS inserted`

	added := 0
	err := s.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, s.db)
		for i := range videos {
			v := &videos[i]
			var inserted bool
			err := exec.QueryRowxContext(txCtx, query,
				v.ID,
				v.ChannelID,
				v.Title,
				v.DurationSeconds,
				domain.ClassifyShort(v.DurationSeconds, v.Liveness),
				string(v.Liveness),
				v.PublishedAt,
				domain.FormatDate(seenOn),
			).Scan(&inserted)
			if err != nil {
				return err
			}
			if inserted {
				added++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// UpdateViewCounts is the only path that changes last_view_count.
func (s *VideoStore) UpdateViewCounts(ctx context.Context, counts map[string]int64, fetchedAt time.Time) (int, error) {
	if len(counts) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(counts))
	views := make([]int64, 0, len(counts))
	for id, n := range counts {
		ids = append(ids, id)
		views = append(views, n)
	}

	query := `
		UPDATE videos v SET
			last_view_count = u.views,
			last_fetched_at = $3
		FROM unnest($1::text[], $2::bigint[]) AS u(video_id, views)
		WHERE v.video_id = u.video_id`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, pq.Array(ids), pq.Array(views), fetchedAt)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *VideoStore) ListByChannel(ctx context.Context, channelID string) ([]domain.Video, error) {
	query := `
		SELECT video_id, channel_id, title, duration_seconds, is_short, liveness,
			published_at, last_view_count, last_fetched_at, first_seen_on
		FROM videos
		WHERE channel_id = $1
		ORDER BY published_at DESC, video_id`

	var rows []videoRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, channelID); err != nil {
		return nil, err
	}

	videos := make([]domain.Video, len(rows))
	for i, r := range rows {
		videos[i] = r.Video
		if r.FetchedAt.Valid {
			videos[i].LastFetchedAt = r.FetchedAt.Time
		}
	}
	return videos, nil
}

func (s *VideoStore) ChannelTotals(ctx context.Context, channelID string) (*domain.ChannelTotals, error) {
	query := `
		SELECT
			$1::text AS channel_id,
			COALESCE(SUM(last_view_count), 0) AS total_views,
			COALESCE(SUM(last_view_count) FILTER (WHERE is_short), 0) AS shorts_views,
			COALESCE(SUM(last_view_count) FILTER (WHERE NOT is_short), 0) AS long_views,
			COUNT(*) AS video_count,
			COUNT(*) FILTER (WHERE is_short) AS shorts_count
		FROM videos
		WHERE channel_id = $1`

	var totals domain.ChannelTotals
	if err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &totals, query, channelID); err != nil {
		return nil, err
	}
	return &totals, nil
}

// TopVideos returns the channel's most viewed videos, Shorts only when
// shortsOnly is set.
func (s *VideoStore) TopVideos(ctx context.Context, channelID string, shortsOnly bool, limit int) ([]domain.Video, error) {
	query := `
		SELECT video_id, channel_id, title, duration_seconds, is_short, liveness,
			published_at, last_view_count, last_fetched_at, first_seen_on
		FROM videos
		WHERE channel_id = $1 AND (is_short OR NOT $2)
		ORDER BY last_view_count DESC, video_id
		LIMIT $3`

	var rows []videoRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, channelID, shortsOnly, limit); err != nil {
		return nil, err
	}

	videos := make([]domain.Video, len(rows))
	for i, r := range rows {
		videos[i] = r.Video
		if r.FetchedAt.Valid {
			videos[i].LastFetchedAt = r.FetchedAt.Time
		}
	}
	return videos, nil
}

// GlobalRanking ranks channels by the sum of their videos' last-known views.
// A non-empty search keeps channels whose title or handle contains it, case
// insensitively. Channels without videos are not ranked.
func (s *VideoStore) GlobalRanking(ctx context.Context, search string, limit, offset int) ([]domain.GlobalRankingEntry, error) {
	query := `
		SELECT
			c.channel_id,
			c.title,
			c.handle,
			SUM(v.last_view_count) AS total_views,
			COALESCE(SUM(v.last_view_count) FILTER (WHERE v.is_short), 0) AS shorts_views,
			COALESCE(SUM(v.last_view_count) FILTER (WHERE NOT v.is_short), 0) AS long_views,
			COUNT(*) AS video_count,
			COUNT(*) FILTER (WHERE v.is_short) AS shorts_count,
			COUNT(*) FILTER (WHERE NOT v.is_short) AS long_count,
			MAX(v.last_fetched_at) AS last_update
		FROM channels c
		JOIN videos v ON v.channel_id = c.channel_id
		WHERE c.title ILIKE $1 OR c.handle ILIKE $1
		GROUP BY c.channel_id, c.title, c.handle
		ORDER BY total_views DESC, c.channel_id
		LIMIT $2 OFFSET $3`

	var entries []domain.GlobalRankingEntry
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &entries, query, containsPattern(search), limit, offset)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Rank = offset + i + 1
	}
	return entries, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}
