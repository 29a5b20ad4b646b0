package domain

import "time"

// ShortsWeight discounts Shorts views in the weighted views metric.
const ShortsWeight = 0.25

// EditorialCutoff flags channels whose period views stay under one million.
const EditorialCutoff = 1_000_000

// ChannelDelta is a channel's growth between two complete snapshots.
type ChannelDelta struct {
	ChannelID  string    `json:"channel_id"`
	Title      string    `json:"title"`
	StartDate  time.Time `json:"start_snapshot"`
	EndDate    time.Time `json:"end_snapshot"`
	StartViews int64     `json:"start_views"`
	EndViews   int64     `json:"end_views"`
	DeltaViews int64     `json:"delta_views"`
	Percent    float64   `json:"percent"`
}

// Exclusion explains why a channel is missing from a delta ranking.
type Exclusion struct {
	ChannelID string `json:"channel_id"`
	Title     string `json:"title"`
	Reason    string `json:"reason"`
}

type DeltaRanking struct {
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
	Entries  []ChannelDelta `json:"entries"`
	Excluded []Exclusion    `json:"excluded"`
}

// ContentAggregate sums views of videos published inside a period. It measures
// production output and is never mixed with delta rankings.
type ContentAggregate struct {
	ChannelID     string  `db:"channel_id" json:"channel_id"`
	Title         string  `db:"title" json:"title"`
	ShortsViews   int64   `db:"shorts_views" json:"shorts_views"`
	LongViews     int64   `db:"long_views" json:"long_views"`
	TotalViews    int64   `db:"total_views" json:"total_views"`
	ShortsCount   int64   `db:"shorts_count" json:"shorts_count"`
	LongCount     int64   `db:"long_count" json:"long_count"`
	WeightedViews float64 `db:"-" json:"weighted_views"`
	AvgPerVideo   float64 `db:"-" json:"avg_per_video"`
	AvgShorts     float64 `db:"-" json:"avg_shorts"`
	AvgLong       float64 `db:"-" json:"avg_long"`
	BelowCutoff   bool    `db:"-" json:"below_cutoff"`
}

type ContentRanking struct {
	Start   time.Time          `json:"start"`
	End     time.Time          `json:"end"`
	Entries []ContentAggregate `json:"entries"`
}

// GlobalRankingEntry is a channel's standing by the last-known views of all
// its videos. It says nothing about growth.
type GlobalRankingEntry struct {
	Rank        int        `db:"-" json:"rank"`
	ChannelID   string     `db:"channel_id" json:"channel_id"`
	Title       string     `db:"title" json:"title"`
	Handle      string     `db:"handle" json:"handle,omitempty"`
	TotalViews  int64      `db:"total_views" json:"total_views"`
	ShortsViews int64      `db:"shorts_views" json:"shorts_views"`
	LongViews   int64      `db:"long_views" json:"long_views"`
	VideoCount  int64      `db:"video_count" json:"video_count"`
	ShortsCount int64      `db:"shorts_count" json:"shorts_count"`
	LongCount   int64      `db:"long_count" json:"long_count"`
	LastUpdate  *time.Time `db:"last_update" json:"last_update"`
}

type GlobalRanking struct {
	Query   string               `json:"query,omitempty"`
	Limit   int                  `json:"limit"`
	Offset  int                  `json:"offset"`
	Entries []GlobalRankingEntry `json:"entries"`
}

// ChannelDetails summarizes one channel with its most viewed uploads.
type ChannelDetails struct {
	Channel   Channel       `json:"channel"`
	Totals    ChannelTotals `json:"totals"`
	TopVideo  *Video        `json:"top_video"`
	TopShort  *Video        `json:"top_short"`
	TopVideos []Video       `json:"top_videos"`
}
