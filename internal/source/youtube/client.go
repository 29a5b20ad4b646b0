package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"channel_ranker/internal/domain"
	"channel_ranker/internal/quota"
)

const batchSize = 50

// Config holds YouTube Data API client configuration.
type Config struct {
	APIKey         string
	Endpoint       string
	Timeout        time.Duration
	RatePerSecond  float64
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Client adapts the YouTube Data API to the collector. Every request is
// charged against the shared quota budget and paced by a rate limiter.
type Client struct {
	service        *youtube.Service
	callOpts       []googleapi.CallOption
	budget         *quota.Budget
	limiter        *rate.Limiter
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

func NewClient(ctx context.Context, cfg Config, budget *quota.Budget, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	clientOpts := []option.ClientOption{
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(cfg.Endpoint))
	}
	clientOpts = append(clientOpts, opts...)

	service, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var callOpts []googleapi.CallOption
	if cfg.APIKey != "" {
		callOpts = append(callOpts, googleapi.QueryParameter("key", cfg.APIKey))
	}

	return &Client{
		service:        service,
		callOpts:       callOpts,
		budget:         budget,
		limiter:        rate.NewLimiter(limit, 1),
		maxAttempts:    maxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("source", "youtube"),
	}, nil
}

// ResolveChannel turns a channel reference into channel metadata.
func (c *Client) ResolveChannel(ctx context.Context, ref string) (*domain.Channel, error) {
	parsed, err := ParseChannelRef(ref)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", ref, errors.Join(domain.ErrNotFound, err))
	}

	resp, err := call(ctx, c, "channels.list", func() (*youtube.ChannelListResponse, error) {
		req := c.service.Channels.List([]string{"snippet", "contentDetails"}).Context(ctx)
		switch parsed.Kind {
		case RefHandle:
			req = req.ForHandle(parsed.Value)
		case RefUsername:
			req = req.ForUsername(parsed.Value)
		default:
			req = req.Id(parsed.Value)
		}
		return req.Do(c.callOpts...)
	})
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", parsed, err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("resolve %s: %w", parsed, domain.ErrNotFound)
	}

	item := resp.Items[0]
	ch := &domain.Channel{ID: item.Id}
	if item.Snippet != nil {
		ch.Title = item.Snippet.Title
		ch.Handle = item.Snippet.CustomUrl
	}
	if item.ContentDetails != nil && item.ContentDetails.RelatedPlaylists != nil {
		ch.UploadsPlaylistID = item.ContentDetails.RelatedPlaylists.Uploads
	}
	if ch.UploadsPlaylistID == "" && strings.HasPrefix(ch.ID, "UC") {
		ch.UploadsPlaylistID = "UU" + strings.TrimPrefix(ch.ID, "UC")
	}
	return ch, nil
}

// ListVideos returns one page of the channel's uploads with metadata. With a
// non-zero since, listing stops at the first upload added before it.
func (c *Client) ListVideos(ctx context.Context, ch *domain.Channel, since time.Time, pageToken string) (*domain.VideoPage, error) {
	playlistID := ch.UploadsPlaylistID
	if playlistID == "" {
		return nil, fmt.Errorf("channel %s has no uploads playlist: %w", ch.ID, domain.ErrNotFound)
	}

	items, err := call(ctx, c, "playlistItems.list", func() (*youtube.PlaylistItemListResponse, error) {
		req := c.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(batchSize).
			Context(ctx)
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}
		return req.Do(c.callOpts...)
	})
	if err != nil {
		return nil, fmt.Errorf("list uploads of %s: %w", ch.ID, err)
	}

	page := &domain.VideoPage{NextPageToken: items.NextPageToken}
	ids := make([]string, 0, len(items.Items))
	for _, item := range items.Items {
		if item.Snippet == nil || item.Snippet.ResourceId == nil {
			continue
		}
		if !since.IsZero() {
			if added, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil && added.Before(since) {
				page.NextPageToken = ""
				break
			}
		}
		ids = append(ids, item.Snippet.ResourceId.VideoId)
	}

	if len(ids) == 0 {
		return page, nil
	}

	videos, err := call(ctx, c, "videos.list", func() (*youtube.VideoListResponse, error) {
		return c.service.Videos.List([]string{"snippet", "contentDetails", "liveStreamingDetails"}).
			Id(strings.Join(ids, ",")).
			Context(ctx).
			Do(c.callOpts...)
	})
	if err != nil {
		return nil, fmt.Errorf("video metadata of %s: %w", ch.ID, err)
	}

	for _, item := range videos.Items {
		v, ok := c.transform(ch.ID, item)
		if ok {
			page.Videos = append(page.Videos, v)
		}
	}
	return page, nil
}

// FetchStatistics returns current view counts in batches. Batches holding an
// id of withMetadata also request snippet and live details, and the refreshed
// metadata of those ids is returned alongside the counts at no extra cost.
// Ids missing from Views were not returned upstream or belong to a failed
// batch; only quota exhaustion and cancellation are reported as errors,
// alongside what was gathered so far.
func (c *Client) FetchStatistics(ctx context.Context, ids []string, withMetadata map[string]bool) (*domain.VideoStatistics, error) {
	stats := &domain.VideoStatistics{Views: make(map[string]int64, len(ids))}

	for start := 0; start < len(ids); start += batchSize {
		end := min(start+batchSize, len(ids))
		batch := ids[start:end]

		parts := []string{"statistics"}
		if slices.ContainsFunc(batch, func(id string) bool { return withMetadata[id] }) {
			parts = append(parts, "snippet", "contentDetails", "liveStreamingDetails")
		}

		resp, err := call(ctx, c, "videos.list", func() (*youtube.VideoListResponse, error) {
			return c.service.Videos.List(parts).
				Id(strings.Join(batch, ",")).
				Context(ctx).
				Do(c.callOpts...)
		})
		if err != nil {
			if errors.Is(err, domain.ErrQuotaExhausted) || ctx.Err() != nil {
				return stats, err
			}
			c.logger.Warn("statistics batch failed",
				"batch_start", start,
				"batch_size", len(batch),
				"error", err,
			)
			continue
		}

		for _, item := range resp.Items {
			if item.Statistics != nil {
				stats.Views[item.Id] = int64(item.Statistics.ViewCount)
			}
			if !withMetadata[item.Id] || item.Snippet == nil {
				continue
			}
			if v, ok := c.transform(item.Snippet.ChannelId, item); ok {
				stats.Refreshed = append(stats.Refreshed, v)
			}
		}
	}

	return stats, nil
}

// FetchChannelStatistics returns the channel total reported upstream.
func (c *Client) FetchChannelStatistics(ctx context.Context, channelID string) (*domain.ChannelStatistics, error) {
	resp, err := call(ctx, c, "channels.list", func() (*youtube.ChannelListResponse, error) {
		return c.service.Channels.List([]string{"statistics"}).
			Id(channelID).
			Context(ctx).
			Do(c.callOpts...)
	})
	if err != nil {
		return nil, fmt.Errorf("channel statistics of %s: %w", channelID, err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Statistics == nil {
		return nil, fmt.Errorf("channel statistics of %s: %w", channelID, domain.ErrNotFound)
	}

	stats := resp.Items[0].Statistics
	return &domain.ChannelStatistics{
		ChannelID:    channelID,
		ViewCount:    int64(stats.ViewCount),
		VideoCount:   int64(stats.VideoCount),
		HiddenCounts: stats.HiddenSubscriberCount,
	}, nil
}

func (c *Client) transform(channelID string, item *youtube.Video) (domain.Video, bool) {
	if item.Snippet == nil {
		return domain.Video{}, false
	}

	publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
	if err != nil {
		c.logger.Warn("failed to parse date",
			"video_id", item.Id,
			"date", item.Snippet.PublishedAt,
		)
		return domain.Video{}, false
	}

	v := domain.Video{
		ID:          item.Id,
		ChannelID:   channelID,
		Title:       item.Snippet.Title,
		PublishedAt: publishedAt.UTC(),
		Liveness:    liveness(item),
	}
	if item.ContentDetails != nil {
		v.DurationSeconds = parseDurationSeconds(item.ContentDetails.Duration)
	}
	v.IsShort = domain.ClassifyShort(v.DurationSeconds, v.Liveness)
	return v, true
}

func liveness(item *youtube.Video) domain.Liveness {
	switch item.Snippet.LiveBroadcastContent {
	case "live":
		return domain.LivenessLive
	case "upcoming":
		return domain.LivenessUpcoming
	}
	if item.LiveStreamingDetails != nil && item.LiveStreamingDetails.ActualEndTime != "" {
		return domain.LivenessEnded
	}
	return domain.LivenessNone
}

// call charges the budget, waits for the rate limiter and retries transient
// failures with exponential backoff.
func call[T any](ctx context.Context, c *Client, op string, fn func() (T, error)) (T, error) {
	var zero T
	var err error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.budget.Charge(quota.CostList); err != nil {
			return zero, err
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return zero, err
		}

		var resp T
		resp, err = fn()
		if err == nil {
			return resp, nil
		}

		err = c.classify(err)
		if !errors.Is(err, domain.ErrTransientFetch) {
			return zero, err
		}

		if attempt == c.maxAttempts {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("request failed, retrying",
			"op", op,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return zero, fmt.Errorf("%s after %d attempts: %w", op, c.maxAttempts, err)
}

// classify maps upstream failures onto domain errors. Quota exhaustion also
// drains the local budget so no further calls are attempted.
func (c *Client) classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusForbidden && isQuotaReason(apiErr):
			c.budget.Exhaust()
			return fmt.Errorf("%w: %v", domain.ErrQuotaExhausted, err)
		case apiErr.Code == http.StatusNotFound:
			return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
		case apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500:
			return fmt.Errorf("%w: %v", domain.ErrTransientFetch, err)
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", domain.ErrTransientFetch, err)
	}
	return err
}

func isQuotaReason(apiErr *googleapi.Error) bool {
	for _, item := range apiErr.Errors {
		if item.Reason == "quotaExceeded" || item.Reason == "dailyLimitExceeded" {
			return true
		}
	}
	return false
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}
