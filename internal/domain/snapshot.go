package domain

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the fixed representation of snapshot dates.
const DateLayout = "2006-01-02"

// DateOf truncates t to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

type ChannelSnapshot struct {
	ChannelID            string    `db:"channel_id" json:"channel_id"`
	SnapshotDate         time.Time `db:"snapshot_date" json:"snapshot_date"`
	TotalViews           int64     `db:"total_views" json:"total_views"`
	ShortsViews          int64     `db:"shorts_views" json:"shorts_views"`
	LongViews            int64     `db:"long_views" json:"long_views"`
	VideoCount           int64     `db:"video_count" json:"video_count"`
	ShortsCount          int64     `db:"shorts_count" json:"shorts_count"`
	ReportedChannelViews *int64    `db:"reported_channel_views" json:"reported_channel_views"`
	ReportedVideoCount   *int64    `db:"reported_video_count" json:"reported_video_count"`
	DiffPercent          *float64  `db:"diff_percent" json:"diff_percent"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
}

// DiffPercent returns |total - reported| / reported * 100, or nil when there is
// no usable reported total.
func DiffPercent(total int64, reported *int64) *float64 {
	if reported == nil || *reported <= 0 {
		return nil
	}
	diff := math.Abs(float64(total-*reported)) / float64(*reported) * 100
	return &diff
}

// SnapshotState describes one date observed for a channel at either granularity.
type SnapshotState struct {
	Date           time.Time `db:"snapshot_date"`
	HasChannelRow  bool      `db:"has_channel_row"`
	VideosComplete bool      `db:"videos_complete"`
	TotalViews     int64     `db:"total_views"`
}

// Complete reports whether both granularities are present for the date.
func (s SnapshotState) Complete() bool {
	return s.HasChannelRow && s.VideosComplete
}

// CoverageDay is one row of the snapshot coverage report.
type CoverageDay struct {
	Date     time.Time `db:"snapshot_date" json:"date"`
	Videos   int64     `db:"videos" json:"videos"`
	Channels int64     `db:"channels" json:"channels"`
}

// SeriesPoint is one point of a channel growth curve.
type SeriesPoint struct {
	Date       time.Time `db:"snapshot_date" json:"date"`
	TotalViews int64     `db:"total_views" json:"total_views"`
	Normalized int64     `db:"-" json:"normalized"`
}
