//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"channel_ranker/internal/domain"
)

type RedisIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container testcontainers.Container
	cache     *RankingCache
}

func (s *RedisIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	endpoint, err := container.Endpoint(s.ctx, "")
	s.Require().NoError(err)

	s.cache = New(s.ctx, "redis://"+endpoint+"/0", time.Minute, testLogger())
	s.Require().True(s.cache.Enabled())
}

func (s *RedisIntegrationSuite) TearDownSuite() {
	if s.cache != nil {
		_ = s.cache.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestRedisIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RedisIntegrationSuite))
}

func (s *RedisIntegrationSuite) TestSetGetInvalidate() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	ranking := &domain.DeltaRanking{
		Start:   start,
		End:     end,
		Entries: []domain.ChannelDelta{{ChannelID: "UC1", DeltaViews: 500}},
		Excluded: []domain.Exclusion{
			{ChannelID: "UC2", Reason: "no snapshot on or after start"},
		},
	}

	miss, gen, err := s.cache.GetDelta(s.ctx, start, end)
	s.Require().NoError(err)
	s.Nil(miss)

	s.Require().NoError(s.cache.SetDelta(s.ctx, gen, ranking))

	hit, _, err := s.cache.GetDelta(s.ctx, start, end)
	s.Require().NoError(err)
	s.Require().NotNil(hit)
	s.Equal(int64(500), hit.Entries[0].DeltaViews)
	s.Equal("UC2", hit.Excluded[0].ChannelID)

	s.Require().NoError(s.cache.Invalidate(s.ctx))

	gone, _, err := s.cache.GetDelta(s.ctx, start, end)
	s.Require().NoError(err)
	s.Nil(gone)
}

func (s *RedisIntegrationSuite) TestSetDeltaAfterInvalidateIsNotServed() {
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	stale := &domain.DeltaRanking{
		Start:   start,
		End:     end,
		Entries: []domain.ChannelDelta{{ChannelID: "UC1", DeltaViews: 10}},
	}

	miss, gen, err := s.cache.GetDelta(s.ctx, start, end)
	s.Require().NoError(err)
	s.Require().Nil(miss)

	// A snapshot commit lands while the ranking is being computed.
	s.Require().NoError(s.cache.Invalidate(s.ctx))
	s.Require().NoError(s.cache.SetDelta(s.ctx, gen, stale))

	after, newGen, err := s.cache.GetDelta(s.ctx, start, end)
	s.Require().NoError(err)
	s.Nil(after)
	s.Greater(newGen, gen)
}
