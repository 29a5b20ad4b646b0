package domain

import (
	"fmt"
	"time"
)

type Mode string

const (
	ModeFull        Mode = "full"
	ModeIncremental Mode = "incremental"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFull, ModeIncremental:
		return Mode(s), nil
	case "":
		return ModeIncremental, nil
	}
	return "", fmt.Errorf("unknown collection mode %q", s)
}

// CollectionResult holds statistics about one channel collection cycle.
type CollectionResult struct {
	ChannelID     string        `json:"channel_id"`
	Title         string        `json:"title"`
	Mode          Mode          `json:"mode"`
	VideosListed  int           `json:"videos_listed"`
	VideosAdded   int           `json:"videos_added"`
	VideosUpdated int           `json:"videos_updated"`
	Errors        int           `json:"errors"`
	Recent        int           `json:"recent"`
	Rotated       int           `json:"rotated"`
	SnapshotDate  time.Time     `json:"snapshot_date"`
	TotalViews    int64         `json:"total_views"`
	Duration      time.Duration `json:"duration"`
}

type CollectionState struct {
	ChannelID        string    `db:"channel_id"`
	LastCollectedAt  time.Time `db:"last_collected_at"`
	LastMode         Mode      `db:"last_mode"`
	TotalCollections int64     `db:"total_collections"`
	LastError        string    `db:"last_error"`
}

// Outcome classifies how a channel fared in a run.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeBusy      Outcome = "busy"
	OutcomeNotFound  Outcome = "not_found"
	OutcomeDeferred  Outcome = "deferred"
)

type ChannelOutcome struct {
	Ref     string            `json:"ref"`
	Outcome Outcome           `json:"outcome"`
	Result  *CollectionResult `json:"result,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// RunStats holds statistics about a scheduled run over all channels.
type RunStats struct {
	Mode          Mode             `json:"mode"`
	Channels      int              `json:"channels"`
	Succeeded     int              `json:"succeeded"`
	Failed        int              `json:"failed"`
	Busy          int              `json:"busy"`
	NotFound      int              `json:"not_found"`
	Deferred      []string         `json:"deferred"`
	VideosAdded   int              `json:"videos_added"`
	VideosUpdated int              `json:"videos_updated"`
	FetchErrors   int              `json:"fetch_errors"`
	QuotaUsed     int64            `json:"quota_used"`
	Outcomes      []ChannelOutcome `json:"outcomes"`
	Duration      time.Duration    `json:"duration"`
}
