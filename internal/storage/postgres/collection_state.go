package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"channel_ranker/internal/domain"
)

type CollectionStateStore struct {
	db *sqlx.DB
}

func NewCollectionStateStore(db *sqlx.DB) *CollectionStateStore {
	return &CollectionStateStore{db: db}
}

func (s *CollectionStateStore) Get(ctx context.Context, channelID string) (*domain.CollectionState, error) {
	var state domain.CollectionState
	query := `
		SELECT channel_id, last_collected_at, last_mode, total_collections, last_error
		FROM collection_state
		WHERE channel_id = $1`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &state, query, channelID)
	if errors.Is(err, sql.ErrNoRows) {
		// Never collected
		return &domain.CollectionState{ChannelID: channelID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *CollectionStateStore) Update(ctx context.Context, state *domain.CollectionState) error {
	query := `
		INSERT INTO collection_state (channel_id, last_collected_at, last_mode, total_collections, last_error)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (channel_id) DO UPDATE SET
			last_collected_at = EXCLUDED.last_collected_at,
			last_mode = EXCLUDED.last_mode,
			total_collections = EXCLUDED.total_collections,
			last_error = EXCLUDED.last_error`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		state.ChannelID,
		state.LastCollectedAt,
		string(state.LastMode),
		state.TotalCollections,
		state.LastError,
	)
	return err
}
