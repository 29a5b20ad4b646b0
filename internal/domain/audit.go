package domain

import "time"

type Verdict string

const (
	VerdictExcellent  Verdict = "excellent"
	VerdictGood       Verdict = "good"
	VerdictAcceptable Verdict = "acceptable"
	VerdictAttention  Verdict = "attention"
	VerdictUnknown    Verdict = "unknown"
)

// ClassifyDivergence maps a diff percentage onto the advisory verdict table.
func ClassifyDivergence(diffPercent *float64) Verdict {
	if diffPercent == nil {
		return VerdictUnknown
	}
	switch d := *diffPercent; {
	case d < 1:
		return VerdictExcellent
	case d < 5:
		return VerdictGood
	case d < 10:
		return VerdictAcceptable
	default:
		return VerdictAttention
	}
}

type AuditReport struct {
	ChannelID           string    `json:"channel_id"`
	Title               string    `json:"title"`
	Date                time.Time `json:"date"`
	ReportedViews       int64     `json:"reported_views"`
	StoredViews         int64     `json:"stored_views"`
	DiffPercent         *float64  `json:"diff_percent"`
	VideoCountAPI       int64     `json:"video_count_api"`
	VideoCountStored    int64     `json:"video_count_stored"`
	VideoCoverage       float64   `json:"video_coverage"`
	SnapshotDiffPercent *float64  `json:"snapshot_diff_percent,omitempty"`
	Verdict             Verdict   `json:"verdict"`
}
