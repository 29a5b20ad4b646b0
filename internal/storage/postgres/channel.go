package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"channel_ranker/internal/domain"
)

type ChannelStore struct {
	db *sqlx.DB
	tm *TransactionManager
}

func NewChannelStore(db *sqlx.DB) *ChannelStore {
	return &ChannelStore{db: db, tm: NewTransactionManager(db)}
}

// Upsert stores channel metadata. Empty handle or playlist values never
// overwrite known ones.
func (s *ChannelStore) Upsert(ctx context.Context, ch *domain.Channel) error {
	query := `
		INSERT INTO channels (channel_id, title, handle, uploads_playlist_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (channel_id) DO UPDATE SET
			title = EXCLUDED.title,
			handle = COALESCE(NULLIF(EXCLUDED.handle, ''), channels.handle),
			uploads_playlist_id = COALESCE(NULLIF(EXCLUDED.uploads_playlist_id, ''), channels.uploads_playlist_id),
			updated_at = now()
		RETURNING created_at, updated_at`

	row := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		ch.ID,
		ch.Title,
		ch.Handle,
		ch.UploadsPlaylistID,
	)
	return row.Scan(&ch.CreatedAt, &ch.UpdatedAt)
}

func (s *ChannelStore) Get(ctx context.Context, channelID string) (*domain.Channel, error) {
	var ch domain.Channel
	query := `
		SELECT channel_id, title, handle, uploads_playlist_id, created_at, updated_at
		FROM channels
		WHERE channel_id = $1`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &ch, query, channelID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("channel %s: %w", channelID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// List returns every stored channel, least recently collected first.
func (s *ChannelStore) List(ctx context.Context) ([]domain.Channel, error) {
	query := `
		SELECT c.channel_id, c.title, c.handle, c.uploads_playlist_id, c.created_at, c.updated_at
		FROM channels c
		LEFT JOIN collection_state cs ON cs.channel_id = c.channel_id
		ORDER BY cs.last_collected_at ASC NULLS FIRST, c.channel_id`

	var channels []domain.Channel
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &channels, query); err != nil {
		return nil, err
	}
	return channels, nil
}

// Delete removes a channel and everything it owns in one transaction.
func (s *ChannelStore) Delete(ctx context.Context, channelID string) (*domain.DeleteResult, error) {
	result := &domain.DeleteResult{ChannelID: channelID}

	err := s.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, s.db)

		var exists bool
		if err := sqlx.GetContext(txCtx, exec, &exists,
			"SELECT EXISTS (SELECT 1 FROM channels WHERE channel_id = $1)", channelID); err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("channel %s: %w", channelID, domain.ErrNotFound)
		}

		steps := []struct {
			query string
			count *int64
		}{
			{`DELETE FROM video_snapshots vs USING videos v
				WHERE vs.video_id = v.video_id AND v.channel_id = $1`, &result.VideoSnapshots},
			{`DELETE FROM channel_snapshots WHERE channel_id = $1`, &result.ChannelSnapshots},
			{`DELETE FROM videos WHERE channel_id = $1`, &result.Videos},
			{`DELETE FROM collection_state WHERE channel_id = $1`, nil},
			{`DELETE FROM channel_leases WHERE channel_id = $1`, nil},
			{`DELETE FROM channels WHERE channel_id = $1`, nil},
		}

		for _, step := range steps {
			res, err := exec.ExecContext(txCtx, step.query, channelID)
			if err != nil {
				return err
			}
			if step.count != nil {
				n, err := res.RowsAffected()
				if err != nil {
					return err
				}
				*step.count = n
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
