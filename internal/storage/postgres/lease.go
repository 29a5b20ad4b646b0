package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// LeaseStore grants per-channel collection leases. An expired lease is
// taken over by the next caller, so a crashed holder cannot block a channel.
type LeaseStore struct {
	db *sqlx.DB
}

func NewLeaseStore(db *sqlx.DB) *LeaseStore {
	return &LeaseStore{db: db}
}

func (s *LeaseStore) TryAcquire(ctx context.Context, channelID, holder string, now time.Time, ttl time.Duration) (bool, error) {
	query := `
		INSERT INTO channel_leases (channel_id, holder, acquired_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (channel_id) DO UPDATE SET
			holder = EXCLUDED.holder,
			acquired_at = EXCLUDED.acquired_at,
			expires_at = EXCLUDED.expires_at
		WHERE channel_leases.expires_at < EXCLUDED.acquired_at
		RETURNING holder`

	var got string
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query, channelID, holder, now, now.Add(ttl)).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return got == holder, nil
}

// Renew extends a lease still held by holder. It reports false once the lease
// was released or taken over by someone else.
func (s *LeaseStore) Renew(ctx context.Context, channelID, holder string, now time.Time, ttl time.Duration) (bool, error) {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"UPDATE channel_leases SET expires_at = $3 WHERE channel_id = $1 AND holder = $2",
		channelID, holder, now.Add(ttl),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *LeaseStore) Release(ctx context.Context, channelID, holder string) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM channel_leases WHERE channel_id = $1 AND holder = $2",
		channelID, holder,
	)
	return err
}
