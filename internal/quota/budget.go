package quota

import (
	"fmt"
	"sync"

	"channel_ranker/internal/domain"
)

// Unit costs of the upstream calls the collector issues.
const (
	CostList     = 1
	CostPageSize = 50
)

// Budget is the quota shared by every collection in a run. A zero limit
// means unlimited.
type Budget struct {
	mu        sync.Mutex
	limit     int64
	used      int64
	exhausted bool
}

func NewBudget(limit int64) *Budget {
	return &Budget{limit: limit}
}

// Charge reserves units before a call. It fails without charging when the
// budget cannot cover them.
func (b *Budget) Charge(units int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.exhausted {
		return domain.ErrQuotaExhausted
	}
	if b.limit > 0 && b.used+units > b.limit {
		b.exhausted = true
		return fmt.Errorf("charge %d units with %d left: %w", units, b.limit-b.used, domain.ErrQuotaExhausted)
	}
	b.used += units
	return nil
}

// Exhaust marks the budget spent, used when upstream reports quotaExceeded.
func (b *Budget) Exhaust() {
	b.mu.Lock()
	b.exhausted = true
	b.mu.Unlock()
}

// Remaining returns the units left, or -1 when the budget is unlimited.
func (b *Budget) Remaining() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.exhausted {
		return 0
	}
	if b.limit <= 0 {
		return -1
	}
	return b.limit - b.used
}

// Covers reports whether at least units remain.
func (b *Budget) Covers(units int64) bool {
	r := b.Remaining()
	return r < 0 || r >= units
}

func (b *Budget) Used() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.used
}

func (b *Budget) Reset() {
	b.mu.Lock()
	b.used = 0
	b.exhausted = false
	b.mu.Unlock()
}

// EstimateChannelCost approximates the units one collection of a channel
// consumes: resolution, playlist paging, metadata and statistics batches,
// and the channel statistics call.
func EstimateChannelCost(totalVideos, refreshed int) int64 {
	pages := int64((totalVideos + CostPageSize - 1) / CostPageSize)
	stats := int64((refreshed + CostPageSize - 1) / CostPageSize)
	// one metadata batch per listed page
	return CostList + 2*pages + stats + CostList
}
