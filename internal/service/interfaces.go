package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"channel_ranker/internal/domain"
)

type ChannelStore interface {
	Upsert(ctx context.Context, ch *domain.Channel) error
	Get(ctx context.Context, channelID string) (*domain.Channel, error)
	List(ctx context.Context) ([]domain.Channel, error)
	Delete(ctx context.Context, channelID string) (*domain.DeleteResult, error)
}

type VideoStore interface {
	UpsertMetadata(ctx context.Context, videos []domain.Video, seenOn time.Time) (int, error)
	UpdateViewCounts(ctx context.Context, counts map[string]int64, fetchedAt time.Time) (int, error)
	ListByChannel(ctx context.Context, channelID string) ([]domain.Video, error)
	ChannelTotals(ctx context.Context, channelID string) (*domain.ChannelTotals, error)
	TopVideos(ctx context.Context, channelID string, shortsOnly bool, limit int) ([]domain.Video, error)
	GlobalRanking(ctx context.Context, search string, limit, offset int) ([]domain.GlobalRankingEntry, error)
}

type SnapshotStore interface {
	WriteSnapshot(ctx context.Context, channelID string, date time.Time, reported *domain.ChannelStatistics) (*domain.ChannelSnapshot, error)
	SnapshotStates(ctx context.Context, channelID string) ([]domain.SnapshotState, error)
	ChannelSnapshot(ctx context.Context, channelID string, date time.Time) (*domain.ChannelSnapshot, error)
	Series(ctx context.Context, channelID string, from, to time.Time) ([]domain.SeriesPoint, error)
	Coverage(ctx context.Context) ([]domain.CoverageDay, error)
	ContentAggregates(ctx context.Context, start, endExclusive time.Time) ([]domain.ContentAggregate, error)
}

type CollectionStateStore interface {
	Get(ctx context.Context, channelID string) (*domain.CollectionState, error)
	Update(ctx context.Context, state *domain.CollectionState) error
}

type LeaseStore interface {
	TryAcquire(ctx context.Context, channelID, holder string, now time.Time, ttl time.Duration) (bool, error)
	Renew(ctx context.Context, channelID, holder string, now time.Time, ttl time.Duration) (bool, error)
	Release(ctx context.Context, channelID, holder string) error
}

type Source interface {
	ResolveChannel(ctx context.Context, ref string) (*domain.Channel, error)
	ListVideos(ctx context.Context, ch *domain.Channel, since time.Time, pageToken string) (*domain.VideoPage, error)
	FetchStatistics(ctx context.Context, ids []string, withMetadata map[string]bool) (*domain.VideoStatistics, error)
	FetchChannelStatistics(ctx context.Context, channelID string) (*domain.ChannelStatistics, error)
}

type Publisher interface {
	PublishSnapshot(ctx context.Context, snap *domain.ChannelSnapshot, result *domain.CollectionResult) error
	Close() error
}

// RankingCache stores delta rankings. Get returns nil on a miss.
type RankingCache interface {
	GetDelta(ctx context.Context, start, end time.Time) (*domain.DeltaRanking, int64, error)
	SetDelta(ctx context.Context, generation int64, ranking *domain.DeltaRanking) error
	Invalidate(ctx context.Context) error
}

type Budget interface {
	Reset()
	Covers(units int64) bool
	Used() int64
}

type ChannelCollector interface {
	Collect(ctx context.Context, ref string, mode domain.Mode) (*domain.CollectionResult, error)
}

type Recorder interface {
	ObserveCollection(mode domain.Mode, outcome domain.Outcome, d time.Duration)
	AddVideosRefreshed(n int)
	AddFetchErrors(n int)
	SetQuotaUsed(units int64)
}

type nopRecorder struct{}

func (nopRecorder) ObserveCollection(domain.Mode, domain.Outcome, time.Duration) {}
func (nopRecorder) AddVideosRefreshed(int)                                      {}
func (nopRecorder) AddFetchErrors(int)                                          {}
func (nopRecorder) SetQuotaUsed(int64)                                          {}
