package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"channel_ranker/internal/domain"
)

const generationKey = "ranking:generation"

// RankingCache keeps delta rankings in Redis. Keys embed a generation counter
// so a single INCR invalidates every cached period. With a nil client every
// operation is a no-op and reads always miss.
type RankingCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New connects to redisURL. An empty URL, a bad URL or a failed ping returns
// a disabled cache rather than an error.
func New(ctx context.Context, redisURL string, ttl time.Duration, logger *slog.Logger) *RankingCache {
	logger = logger.With("component", "cache")

	if redisURL == "" {
		logger.Info("redis not configured, ranking cache disabled")
		return &RankingCache{ttl: ttl, logger: logger}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn("invalid redis url, ranking cache disabled", "error", err)
		return &RankingCache{ttl: ttl, logger: logger}
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, ranking cache disabled", "error", err)
		_ = rdb.Close()
		return &RankingCache{ttl: ttl, logger: logger}
	}

	logger.Info("redis connected, ranking cache enabled")
	return NewWithClient(rdb, ttl, logger)
}

func NewWithClient(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *RankingCache {
	return &RankingCache{rdb: rdb, ttl: ttl, logger: logger}
}

func (c *RankingCache) Enabled() bool {
	return c.rdb != nil
}

// Ping reports cache health. A disabled cache is always healthy.
func (c *RankingCache) Ping(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// GetDelta returns the cached ranking for the period, or nil on a miss,
// together with the generation the lookup was made under. A ranking computed
// after a miss must be stored with SetDelta under that same generation.
func (c *RankingCache) GetDelta(ctx context.Context, start, end time.Time) (*domain.DeltaRanking, int64, error) {
	if c.rdb == nil {
		return nil, 0, nil
	}

	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, err
	}

	data, err := c.rdb.Get(ctx, deltaKey(gen, start, end)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, nil
	}
	if err != nil {
		return nil, gen, fmt.Errorf("get delta ranking: %w", err)
	}

	var ranking domain.DeltaRanking
	if err := json.Unmarshal(data, &ranking); err != nil {
		return nil, gen, fmt.Errorf("decode delta ranking: %w", err)
	}
	return &ranking, gen, nil
}

// SetDelta stores ranking under generation gen. When an invalidation has
// happened since gen was read the entry lands under a retired generation and
// is never served.
func (c *RankingCache) SetDelta(ctx context.Context, gen int64, ranking *domain.DeltaRanking) error {
	if c.rdb == nil {
		return nil
	}

	data, err := json.Marshal(ranking)
	if err != nil {
		return fmt.Errorf("encode delta ranking: %w", err)
	}
	return c.rdb.Set(ctx, deltaKey(gen, ranking.Start, ranking.End), data, c.ttl).Err()
}

// Invalidate drops every cached ranking by moving to a new generation.
// Entries of older generations expire with their TTL.
func (c *RankingCache) Invalidate(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Incr(ctx, generationKey).Err()
}

func (c *RankingCache) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *RankingCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get cache generation: %w", err)
	}
	return gen, nil
}

func deltaKey(gen int64, start, end time.Time) string {
	return fmt.Sprintf("ranking:delta:%d:%s:%s", gen, domain.FormatDate(start), domain.FormatDate(end))
}
