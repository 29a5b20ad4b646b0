package quota

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"channel_ranker/internal/domain"
)

func TestBudget_Charge(t *testing.T) {
	b := NewBudget(3)

	require.NoError(t, b.Charge(2))
	assert.Equal(t, int64(1), b.Remaining())

	err := b.Charge(2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrQuotaExhausted))
	assert.Equal(t, int64(2), b.Used())
	assert.Equal(t, int64(0), b.Remaining())
	assert.False(t, b.Covers(1))

	b.Reset()
	assert.Equal(t, int64(3), b.Remaining())
	assert.True(t, b.Covers(3))
}

func TestBudget_Unlimited(t *testing.T) {
	b := NewBudget(0)
	for i := 0; i < 1000; i++ {
		require.NoError(t, b.Charge(1))
	}
	assert.Equal(t, int64(-1), b.Remaining())
	assert.True(t, b.Covers(1_000_000))

	b.Exhaust()
	assert.ErrorIs(t, b.Charge(1), domain.ErrQuotaExhausted)
}

func TestBudget_ConcurrentCharges(t *testing.T) {
	b := NewBudget(100)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if b.Charge(1) == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, ok)
	assert.Equal(t, int64(100), b.Used())
}

func TestEstimateChannelCost(t *testing.T) {
	assert.Equal(t, int64(2), EstimateChannelCost(0, 0))
	// 120 videos: 3 pages listed plus 3 metadata batches, 1 stats batch
	assert.Equal(t, int64(9), EstimateChannelCost(120, 40))
}
