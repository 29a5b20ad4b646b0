package domain

import "time"

// MaxShortDuration is the longest a video can run and still count as a Short.
const MaxShortDuration = 60

type Channel struct {
	ID                string    `db:"channel_id" json:"channel_id"`
	Title             string    `db:"title" json:"title"`
	Handle            string    `db:"handle" json:"handle,omitempty"`
	UploadsPlaylistID string    `db:"uploads_playlist_id" json:"uploads_playlist_id,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// Liveness mirrors the broadcast state reported upstream.
type Liveness string

const (
	LivenessNone     Liveness = "none"
	LivenessLive     Liveness = "live"
	LivenessUpcoming Liveness = "upcoming"
	LivenessEnded    Liveness = "ended"
)

func (l Liveness) Valid() bool {
	switch l {
	case LivenessNone, LivenessLive, LivenessUpcoming, LivenessEnded:
		return true
	}
	return false
}

// Broadcasting reports whether the stream has not ended yet, so its duration
// is still unknown.
func (l Liveness) Broadcasting() bool {
	return l == LivenessLive || l == LivenessUpcoming
}

type Video struct {
	ID              string    `db:"video_id" json:"video_id"`
	ChannelID       string    `db:"channel_id" json:"channel_id"`
	Title           string    `db:"title" json:"title"`
	DurationSeconds int       `db:"duration_seconds" json:"duration_seconds"`
	IsShort         bool      `db:"is_short" json:"is_short"`
	Liveness        Liveness  `db:"liveness" json:"liveness"`
	PublishedAt     time.Time `db:"published_at" json:"published_at"`
	LastViewCount   int64     `db:"last_view_count" json:"last_view_count"`
	LastFetchedAt   time.Time `db:"-" json:"last_fetched_at,omitempty"`
	FirstSeenOn     time.Time `db:"first_seen_on" json:"first_seen_on"`
}

// Fetched reports whether statistics were ever retrieved for the video.
func (v *Video) Fetched() bool {
	return !v.LastFetchedAt.IsZero()
}

// ClassifyShort decides the Short flag. Broadcasts that are live or not yet
// aired never count; ended broadcasts are judged on their final duration.
func ClassifyShort(durationSeconds int, liveness Liveness) bool {
	if liveness.Broadcasting() {
		return false
	}
	return durationSeconds > 0 && durationSeconds <= MaxShortDuration
}

// ChannelStatistics is the authoritative channel total reported upstream.
type ChannelStatistics struct {
	ChannelID    string `json:"channel_id"`
	ViewCount    int64  `json:"view_count"`
	VideoCount   int64  `json:"video_count"`
	HiddenCounts bool   `json:"hidden_counts,omitempty"`
}

// VideoPage is one page of upload listings. An empty NextPageToken ends the listing.
type VideoPage struct {
	Videos        []Video
	NextPageToken string
}

// VideoStatistics is the result of a statistics refresh. Refreshed carries
// new metadata for the videos whose metadata was requested along with their
// counts, typically broadcasts that may have changed state.
type VideoStatistics struct {
	Views     map[string]int64
	Refreshed []Video
}

// ChannelTotals aggregates the stored last-known counts of a channel's videos.
type ChannelTotals struct {
	ChannelID   string `db:"channel_id" json:"channel_id"`
	TotalViews  int64  `db:"total_views" json:"total_views"`
	ShortsViews int64  `db:"shorts_views" json:"shorts_views"`
	LongViews   int64  `db:"long_views" json:"long_views"`
	VideoCount  int64  `db:"video_count" json:"video_count"`
	ShortsCount int64  `db:"shorts_count" json:"shorts_count"`
}

// DeleteResult counts the rows removed by a channel delete.
type DeleteResult struct {
	ChannelID        string `json:"channel_id"`
	Videos           int64  `json:"videos"`
	ChannelSnapshots int64  `json:"channel_snapshots"`
	VideoSnapshots   int64  `json:"video_snapshots"`
}
