package frame

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotLatestWins(t *testing.T) {
	slot := NewSlot[string]()

	dropped := slot.Put("a")
	assert.False(t, dropped)

	dropped = slot.Put("b")
	assert.True(t, dropped, "unread value should be discarded")

	v, ok := slot.TryTake()
	require.True(t, ok)
	assert.Equal(t, "b", v, "take must observe the newest value, never the overwritten one")
}

func TestSlotTryTakeEmpty(t *testing.T) {
	slot := NewSlot[int]()

	start := time.Now()
	_, ok := slot.TryTake()
	elapsed := time.Since(start)

	assert.False(t, ok)
	assert.Less(t, elapsed, 50*time.Millisecond, "TryTake on an empty slot must not block")
}

func TestSlotTakeTimeout(t *testing.T) {
	slot := NewSlot[int]()

	start := time.Now()
	_, ok := slot.Take(30 * time.Millisecond)
	elapsed := time.Since(start)

	assert.False(t, ok)
	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond)
}

func TestSlotTakeReturnsPendingValueImmediately(t *testing.T) {
	slot := NewSlot[int]()
	slot.Put(7)

	start := time.Now()
	v, ok := slot.Take(time.Second)
	elapsed := time.Since(start)

	require.True(t, ok)
	assert.Equal(t, 7, v)
	assert.Less(t, elapsed, 100*time.Millisecond)
}

func TestSlotTakeWakesOnPut(t *testing.T) {
	slot := NewSlot[int]()

	go func() {
		time.Sleep(20 * time.Millisecond)
		slot.Put(42)
	}()

	v, ok := slot.Take(time.Second)
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

// A producer overwriting at full speed must never block, and the consumer
// must only ever observe values in production order with gaps, never a
// duplicate or an out-of-order value.
func TestSlotConcurrentProducerConsumer(t *testing.T) {
	slot := NewSlot[int]()
	const n = 10000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= n; i++ {
			slot.Put(i)
		}
	}()

	last := 0
	deadline := time.Now().Add(5 * time.Second)
	for last < n && time.Now().Before(deadline) {
		if v, ok := slot.TryTake(); ok {
			assert.Greater(t, v, last, "values must be observed in production order")
			last = v
		}
	}
	wg.Wait()

	// The producer's final value is the last put; it must still be
	// retrievable if the consumer missed it above.
	if last < n {
		v, ok := slot.Take(time.Second)
		require.True(t, ok)
		assert.Equal(t, n, v)
	}
}
