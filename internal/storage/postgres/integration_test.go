//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"channel_ranker/internal/domain"
	"channel_ranker/migrations"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB

	channels  *ChannelStore
	videos    *VideoStore
	snapshots *SnapshotStore
	states    *CollectionStateStore
	leases    *LeaseStore
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := Connect(s.ctx, connStr)
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(Migrate(db, migrations.FS))

	s.channels = NewChannelStore(db)
	s.videos = NewVideoStore(db)
	s.snapshots = NewSnapshotStore(db)
	s.states = NewCollectionStateStore(db)
	s.leases = NewLeaseStore(db)
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM video_snapshots")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM channel_snapshots")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM videos")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM collection_state")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM channel_leases")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM channels")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func day(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (s *PostgresIntegrationSuite) seedChannel(id string, videos ...domain.Video) {
	s.Require().NoError(s.channels.Upsert(s.ctx, &domain.Channel{ID: id, Title: "Channel " + id}))
	for i := range videos {
		videos[i].ChannelID = id
		if videos[i].Liveness == "" {
			videos[i].Liveness = domain.LivenessNone
		}
	}
	_, err := s.videos.UpsertMetadata(s.ctx, videos, day("2024-01-01"))
	s.Require().NoError(err)
}

func (s *PostgresIntegrationSuite) setViews(counts map[string]int64) {
	_, err := s.videos.UpdateViewCounts(s.ctx, counts, time.Now())
	s.Require().NoError(err)
}

func (s *PostgresIntegrationSuite) TestChannelStore_UpsertKeepsKnownHandle() {
	ch := &domain.Channel{ID: "UC1", Title: "First", Handle: "@first", UploadsPlaylistID: "UU1"}
	s.Require().NoError(s.channels.Upsert(s.ctx, ch))
	s.False(ch.CreatedAt.IsZero())

	s.Require().NoError(s.channels.Upsert(s.ctx, &domain.Channel{ID: "UC1", Title: "Renamed"}))

	got, err := s.channels.Get(s.ctx, "UC1")
	s.Require().NoError(err)
	s.Equal("Renamed", got.Title)
	s.Equal("@first", got.Handle)
	s.Equal("UU1", got.UploadsPlaylistID)

	_, err = s.channels.Get(s.ctx, "UCmissing")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestVideoStore_MetadataNeverTouchesViews() {
	published := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	s.seedChannel("UC1",
		domain.Video{ID: "v1", Title: "Short", DurationSeconds: 30, PublishedAt: published},
		domain.Video{ID: "v2", Title: "Long", DurationSeconds: 600, PublishedAt: published},
	)
	s.setViews(map[string]int64{"v1": 100, "v2": 200})

	added, err := s.videos.UpsertMetadata(s.ctx, []domain.Video{
		{ID: "v1", ChannelID: "UC1", Title: "Short renamed", DurationSeconds: 30, Liveness: domain.LivenessNone, PublishedAt: published},
		{ID: "v3", ChannelID: "UC1", Title: "New", DurationSeconds: 90, Liveness: domain.LivenessNone, PublishedAt: published},
	}, day("2024-01-03"))
	s.Require().NoError(err)
	s.Equal(1, added)

	videos, err := s.videos.ListByChannel(s.ctx, "UC1")
	s.Require().NoError(err)
	s.Len(videos, 3)

	byID := make(map[string]domain.Video)
	for _, v := range videos {
		byID[v.ID] = v
	}
	s.Equal(int64(100), byID["v1"].LastViewCount)
	s.Equal("Short renamed", byID["v1"].Title)
	s.True(byID["v1"].IsShort)
	v1 := byID["v1"]
	s.True(v1.Fetched())
	s.Equal(int64(0), byID["v3"].LastViewCount)
	v3 := byID["v3"]
	s.False(v3.Fetched())
	s.True(day("2024-01-03").Equal(domain.DateOf(byID["v3"].FirstSeenOn)))

	totals, err := s.videos.ChannelTotals(s.ctx, "UC1")
	s.Require().NoError(err)
	s.Equal(int64(300), totals.TotalViews)
	s.Equal(int64(100), totals.ShortsViews)
	s.Equal(int64(3), totals.VideoCount)
	s.Equal(int64(1), totals.ShortsCount)
}

func (s *PostgresIntegrationSuite) TestVideoStore_GlobalRankingAndTopVideos() {
	s.seedChannel("UC1",
		domain.Video{ID: "a1", DurationSeconds: 30, PublishedAt: time.Now()},
		domain.Video{ID: "a2", DurationSeconds: 600, PublishedAt: time.Now()},
		domain.Video{ID: "a3", DurationSeconds: 900, PublishedAt: time.Now()},
	)
	s.seedChannel("UC2", domain.Video{ID: "b1", DurationSeconds: 600, PublishedAt: time.Now()})
	s.Require().NoError(s.channels.Upsert(s.ctx, &domain.Channel{ID: "UC3", Title: "No uploads"}))
	s.setViews(map[string]int64{"a1": 500, "a2": 100, "a3": 300, "b1": 5000})

	entries, err := s.videos.GlobalRanking(s.ctx, "", 10, 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 2, "channels without videos are not ranked")
	s.Equal("UC2", entries[0].ChannelID)
	s.Equal(1, entries[0].Rank)
	s.Equal(int64(5000), entries[0].TotalViews)
	s.NotNil(entries[0].LastUpdate)
	s.Equal("UC1", entries[1].ChannelID)
	s.Equal(int64(900), entries[1].TotalViews)
	s.Equal(int64(500), entries[1].ShortsViews)
	s.Equal(int64(400), entries[1].LongViews)
	s.Equal(int64(1), entries[1].ShortsCount)
	s.Equal(int64(2), entries[1].LongCount)

	page, err := s.videos.GlobalRanking(s.ctx, "", 1, 1)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal("UC1", page[0].ChannelID)
	s.Equal(2, page[0].Rank)

	found, err := s.videos.GlobalRanking(s.ctx, "channel uc1", 10, 0)
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal("UC1", found[0].ChannelID)

	none, err := s.videos.GlobalRanking(s.ctx, "100%", 10, 0)
	s.Require().NoError(err)
	s.Empty(none)

	top, err := s.videos.TopVideos(s.ctx, "UC1", false, 2)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal("a1", top[0].ID)
	s.Equal("a3", top[1].ID)

	shorts, err := s.videos.TopVideos(s.ctx, "UC1", true, 1)
	s.Require().NoError(err)
	s.Require().Len(shorts, 1)
	s.Equal("a1", shorts[0].ID)
	s.True(shorts[0].IsShort)
}

func (s *PostgresIntegrationSuite) TestSnapshotStore_WriteSnapshotIsIdempotent() {
	s.seedChannel("UC1",
		domain.Video{ID: "v1", DurationSeconds: 30, PublishedAt: time.Now()},
		domain.Video{ID: "v2", DurationSeconds: 600, PublishedAt: time.Now()},
	)
	s.setViews(map[string]int64{"v1": 100, "v2": 900})

	reported := &domain.ChannelStatistics{ChannelID: "UC1", ViewCount: 1010, VideoCount: 2}
	first, err := s.snapshots.WriteSnapshot(s.ctx, "UC1", day("2024-01-05"), reported)
	s.Require().NoError(err)
	s.Equal(int64(1000), first.TotalViews)
	s.Equal(int64(100), first.ShortsViews)
	s.Equal(int64(900), first.LongViews)
	s.Require().NotNil(first.DiffPercent)
	s.InDelta(0.990, *first.DiffPercent, 0.001)

	coverageOnce, err := s.snapshots.Coverage(s.ctx)
	s.Require().NoError(err)

	second, err := s.snapshots.WriteSnapshot(s.ctx, "UC1", day("2024-01-05"), reported)
	s.Require().NoError(err)
	s.Equal(first.TotalViews, second.TotalViews)

	coverageTwice, err := s.snapshots.Coverage(s.ctx)
	s.Require().NoError(err)
	s.Equal(coverageOnce, coverageTwice)
	s.Require().Len(coverageTwice, 1)

	var rows int
	s.Require().NoError(s.db.GetContext(s.ctx, &rows, "SELECT COUNT(*) FROM video_snapshots"))
	s.Equal(2, rows)
	s.Require().NoError(s.db.GetContext(s.ctx, &rows, "SELECT COUNT(*) FROM channel_snapshots"))
	s.Equal(1, rows)

	noReport, err := s.snapshots.WriteSnapshot(s.ctx, "UC1", day("2024-01-06"), nil)
	s.Require().NoError(err)
	s.Nil(noReport.ReportedChannelViews)
	s.Nil(noReport.DiffPercent)
}

func (s *PostgresIntegrationSuite) TestSnapshotStore_StatesDetectPartialDates() {
	s.seedChannel("UC1",
		domain.Video{ID: "v1", DurationSeconds: 600, PublishedAt: time.Now()},
		domain.Video{ID: "v2", DurationSeconds: 600, PublishedAt: time.Now()},
	)
	s.setViews(map[string]int64{"v1": 10, "v2": 20})

	_, err := s.snapshots.WriteSnapshot(s.ctx, "UC1", day("2024-01-02"), nil)
	s.Require().NoError(err)

	// a video snapshot without its channel row
	_, err = s.db.ExecContext(s.ctx,
		"INSERT INTO video_snapshots (video_id, snapshot_date, view_count) VALUES ('v1', '2024-01-03', 11)")
	s.Require().NoError(err)

	// a channel row with a missing video snapshot
	_, err = s.snapshots.WriteSnapshot(s.ctx, "UC1", day("2024-01-04"), nil)
	s.Require().NoError(err)
	_, err = s.db.ExecContext(s.ctx,
		"DELETE FROM video_snapshots WHERE video_id = 'v2' AND snapshot_date = '2024-01-04'")
	s.Require().NoError(err)

	states, err := s.snapshots.SnapshotStates(s.ctx, "UC1")
	s.Require().NoError(err)
	s.Require().Len(states, 3)

	s.True(states[0].Date.Equal(day("2024-01-02")))
	s.True(states[0].Complete())
	s.Equal(int64(30), states[0].TotalViews)

	s.True(states[1].Date.Equal(day("2024-01-03")))
	s.False(states[1].HasChannelRow)
	s.False(states[1].Complete())

	s.True(states[2].Date.Equal(day("2024-01-04")))
	s.True(states[2].HasChannelRow)
	s.False(states[2].VideosComplete)

	series, err := s.snapshots.Series(s.ctx, "UC1", day("2024-01-01"), day("2024-01-31"))
	s.Require().NoError(err)
	s.Require().Len(series, 1)
	s.True(series[0].Date.Equal(day("2024-01-02")))
}

func (s *PostgresIntegrationSuite) TestSnapshotStore_VideosFirstSeenLaterDoNotBreakOlderDates() {
	s.seedChannel("UC1", domain.Video{ID: "v1", DurationSeconds: 600, PublishedAt: time.Now()})
	s.setViews(map[string]int64{"v1": 10})
	_, err := s.snapshots.WriteSnapshot(s.ctx, "UC1", day("2024-01-02"), nil)
	s.Require().NoError(err)

	_, err = s.videos.UpsertMetadata(s.ctx, []domain.Video{
		{ID: "v2", ChannelID: "UC1", DurationSeconds: 600, Liveness: domain.LivenessNone, PublishedAt: time.Now()},
	}, day("2024-01-05"))
	s.Require().NoError(err)

	states, err := s.snapshots.SnapshotStates(s.ctx, "UC1")
	s.Require().NoError(err)
	s.Require().Len(states, 1)
	s.True(states[0].Complete())
}

func (s *PostgresIntegrationSuite) TestSnapshotStore_CoverageAndContent() {
	published := time.Date(2024, 1, 3, 15, 0, 0, 0, time.UTC)
	s.seedChannel("UC1",
		domain.Video{ID: "v1", DurationSeconds: 30, PublishedAt: published},
		domain.Video{ID: "v2", DurationSeconds: 600, PublishedAt: published},
		domain.Video{ID: "v3", DurationSeconds: 600, PublishedAt: published.AddDate(0, 1, 0)},
	)
	s.seedChannel("UC2", domain.Video{ID: "w1", DurationSeconds: 600, PublishedAt: published})
	s.setViews(map[string]int64{"v1": 400, "v2": 1000, "v3": 5, "w1": 7})

	_, err := s.snapshots.WriteSnapshot(s.ctx, "UC1", day("2024-01-05"), nil)
	s.Require().NoError(err)

	coverage, err := s.snapshots.Coverage(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(coverage, 1)
	s.Equal(int64(3), coverage[0].Videos)
	s.Equal(int64(1), coverage[0].Channels)

	content, err := s.snapshots.ContentAggregates(s.ctx, day("2024-01-03"), day("2024-01-04"))
	s.Require().NoError(err)
	s.Require().Len(content, 2)
	s.Equal("UC1", content[0].ChannelID)
	s.Equal(int64(1400), content[0].TotalViews)
	s.Equal(int64(400), content[0].ShortsViews)
	s.Equal(int64(1), content[0].LongCount)
}

func (s *PostgresIntegrationSuite) TestChannelStore_DeleteCascades() {
	s.seedChannel("UC1",
		domain.Video{ID: "v1", DurationSeconds: 600, PublishedAt: time.Now()},
		domain.Video{ID: "v2", DurationSeconds: 600, PublishedAt: time.Now()},
	)
	s.seedChannel("UC2", domain.Video{ID: "w1", DurationSeconds: 600, PublishedAt: time.Now()})
	for _, d := range []string{"2024-01-01", "2024-01-02"} {
		_, err := s.snapshots.WriteSnapshot(s.ctx, "UC1", day(d), nil)
		s.Require().NoError(err)
	}
	_, err := s.snapshots.WriteSnapshot(s.ctx, "UC2", day("2024-01-01"), nil)
	s.Require().NoError(err)
	s.Require().NoError(s.states.Update(s.ctx, &domain.CollectionState{
		ChannelID: "UC1", LastCollectedAt: time.Now(), LastMode: domain.ModeFull, TotalCollections: 1,
	}))

	result, err := s.channels.Delete(s.ctx, "UC1")
	s.Require().NoError(err)
	s.Equal(int64(2), result.Videos)
	s.Equal(int64(2), result.ChannelSnapshots)
	s.Equal(int64(4), result.VideoSnapshots)

	var orphans int
	s.Require().NoError(s.db.GetContext(s.ctx, &orphans, `
		SELECT COUNT(*) FROM video_snapshots vs
		LEFT JOIN videos v ON v.video_id = vs.video_id
		WHERE v.video_id IS NULL OR v.channel_id = 'UC1'`))
	s.Zero(orphans)

	remaining, err := s.channels.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(remaining, 1)
	s.Equal("UC2", remaining[0].ID)

	_, err = s.channels.Delete(s.ctx, "UC1")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestCollectionStateStore_GetUpdate() {
	s.seedChannel("UC1")

	state, err := s.states.Get(s.ctx, "UC1")
	s.Require().NoError(err)
	s.True(state.LastCollectedAt.IsZero())

	now := time.Now().UTC().Truncate(time.Microsecond)
	state.LastCollectedAt = now
	state.LastMode = domain.ModeIncremental
	state.TotalCollections = 3
	s.Require().NoError(s.states.Update(s.ctx, state))

	got, err := s.states.Get(s.ctx, "UC1")
	s.Require().NoError(err)
	s.True(now.Equal(got.LastCollectedAt))
	s.Equal(domain.ModeIncremental, got.LastMode)
	s.Equal(int64(3), got.TotalCollections)
}

func (s *PostgresIntegrationSuite) TestLeaseStore_ExclusiveUntilExpiry() {
	now := time.Now().UTC()

	ok, err := s.leases.TryAcquire(s.ctx, "UC1", "a", now, time.Minute)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.leases.TryAcquire(s.ctx, "UC1", "b", now.Add(30*time.Second), time.Minute)
	s.Require().NoError(err)
	s.False(ok)

	ok, err = s.leases.TryAcquire(s.ctx, "UC1", "b", now.Add(2*time.Minute), time.Minute)
	s.Require().NoError(err)
	s.True(ok, "expired lease is taken over")

	// release by a stale holder is a no-op
	s.Require().NoError(s.leases.Release(s.ctx, "UC1", "a"))
	ok, err = s.leases.TryAcquire(s.ctx, "UC1", "c", now.Add(2*time.Minute), time.Minute)
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(s.leases.Release(s.ctx, "UC1", "b"))
	ok, err = s.leases.TryAcquire(s.ctx, "UC1", "c", now.Add(2*time.Minute), time.Minute)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *PostgresIntegrationSuite) TestLeaseStore_RenewKeepsHolderUntilTakenOver() {
	now := time.Now().UTC()

	ok, err := s.leases.TryAcquire(s.ctx, "UC1", "a", now, time.Minute)
	s.Require().NoError(err)
	s.Require().True(ok)

	ok, err = s.leases.Renew(s.ctx, "UC1", "a", now.Add(50*time.Second), time.Minute)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.leases.TryAcquire(s.ctx, "UC1", "b", now.Add(90*time.Second), time.Minute)
	s.Require().NoError(err)
	s.False(ok, "renewed lease is still held")

	ok, err = s.leases.TryAcquire(s.ctx, "UC1", "b", now.Add(3*time.Minute), time.Minute)
	s.Require().NoError(err)
	s.Require().True(ok)

	ok, err = s.leases.Renew(s.ctx, "UC1", "a", now.Add(3*time.Minute), time.Minute)
	s.Require().NoError(err)
	s.False(ok, "lease taken over by another holder")
}

func (s *PostgresIntegrationSuite) TestTransactionManager_RollsBackSnapshotOnError() {
	s.seedChannel("UC1", domain.Video{ID: "v1", DurationSeconds: 600, PublishedAt: time.Now()})
	tm := NewTransactionManager(s.db)

	err := tm.WithTransaction(s.ctx, func(txCtx context.Context) error {
		if _, err := s.snapshots.WriteSnapshot(txCtx, "UC1", day("2024-01-05"), nil); err != nil {
			return err
		}
		return context.Canceled
	})
	s.ErrorIs(err, context.Canceled)

	var rows int
	s.Require().NoError(s.db.GetContext(s.ctx, &rows, "SELECT COUNT(*) FROM video_snapshots"))
	s.Zero(rows)
	s.Require().NoError(s.db.GetContext(s.ctx, &rows, "SELECT COUNT(*) FROM channel_snapshots"))
	s.Zero(rows)
}
