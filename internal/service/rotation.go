package service

import (
	"math"
	"slices"
	"strings"
	"time"

	"channel_ranker/internal/domain"
)

// refreshPlan lists the videos whose statistics a cycle refreshes, grouped by
// the reason they were selected.
type refreshPlan struct {
	New        []string
	Pending    []string
	Broadcasts []string
	Recent     []string
	Rotated    []string
	Existing   []string
}

func (p refreshPlan) IDs() []string {
	groups := [][]string{p.New, p.Pending, p.Broadcasts, p.Recent, p.Rotated, p.Existing}
	ids := make([]string, 0, len(p.New)+len(p.Pending)+len(p.Broadcasts)+len(p.Recent)+len(p.Rotated)+len(p.Existing))
	for _, group := range groups {
		ids = append(ids, group...)
	}
	return ids
}

// planRefresh decides what to refresh. A full cycle refreshes every owned
// video. An incremental cycle refreshes new, never-fetched, live or upcoming
// and recently published videos plus a rotating sample of the older ones.
func planRefresh(mode domain.Mode, listed, stored []domain.Video, now time.Time, recencyWindow time.Duration, fraction float64) refreshPlan {
	var plan refreshPlan

	known := make(map[string]struct{}, len(stored))
	for _, v := range stored {
		known[v.ID] = struct{}{}
	}
	seen := make(map[string]struct{}, len(listed))
	for _, v := range listed {
		if _, ok := known[v.ID]; ok {
			continue
		}
		if _, ok := seen[v.ID]; ok {
			continue
		}
		seen[v.ID] = struct{}{}
		plan.New = append(plan.New, v.ID)
	}

	if mode == domain.ModeFull {
		for _, v := range stored {
			plan.Existing = append(plan.Existing, v.ID)
		}
		return plan
	}

	cutoff := now.Add(-recencyWindow)
	var older []domain.Video
	for _, v := range stored {
		switch {
		case !v.Fetched():
			plan.Pending = append(plan.Pending, v.ID)
		case v.Liveness.Broadcasting():
			plan.Broadcasts = append(plan.Broadcasts, v.ID)
		case !v.PublishedAt.Before(cutoff):
			plan.Recent = append(plan.Recent, v.ID)
		default:
			older = append(older, v)
		}
	}

	plan.Rotated = selectRotation(older, fraction)
	return plan
}

// staleBroadcasts returns the stored live or upcoming videos the listing did
// not return. Their metadata is refreshed together with their statistics so
// an ended stream gets its final duration and short classification.
func staleBroadcasts(listed, stored []domain.Video) map[string]bool {
	listedIDs := make(map[string]struct{}, len(listed))
	for _, v := range listed {
		listedIDs[v.ID] = struct{}{}
	}

	var stale map[string]bool
	for _, v := range stored {
		if !v.Liveness.Broadcasting() {
			continue
		}
		if _, ok := listedIDs[v.ID]; ok {
			continue
		}
		if stale == nil {
			stale = make(map[string]bool)
		}
		stale[v.ID] = true
	}
	return stale
}

// selectRotation picks ceil(len*fraction) videos, at least one, that were
// refreshed longest ago. Ties break on video ID so the order is stable.
func selectRotation(older []domain.Video, fraction float64) []string {
	if fraction <= 0 || len(older) == 0 {
		return nil
	}

	// epsilon absorbs float error such as 30*0.1 = 3.0000000000000004
	n := int(math.Ceil(float64(len(older))*fraction - 1e-9))
	n = max(1, min(n, len(older)))

	sorted := slices.Clone(older)
	slices.SortFunc(sorted, func(a, b domain.Video) int {
		if c := a.LastFetchedAt.Compare(b.LastFetchedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	ids := make([]string, n)
	for i := range n {
		ids[i] = sorted[i].ID
	}
	return ids
}
