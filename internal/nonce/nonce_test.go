package nonce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestGenerator_SameMillisecond(t *testing.T) {
	at := time.UnixMilli(1_600_000_000_000)
	g := NewWithClock(fixedClock(at))

	first := g.Next()
	second := g.Next()
	third := g.Next()

	assert.Equal(t, int64(1_600_000_000_000), first)
	assert.Greater(t, second, first)
	assert.Greater(t, third, second)
	assert.Equal(t, int64(3), g.Count())
	assert.Equal(t, third, g.Last())
}

func TestGenerator_AddsCounterToClock(t *testing.T) {
	current := time.UnixMilli(1000)
	g := NewWithClock(func() time.Time { return current })

	assert.Equal(t, int64(1000), g.Next())
	current = time.UnixMilli(2000)
	assert.Equal(t, int64(2001), g.Next())
	current = time.UnixMilli(3000)
	assert.Equal(t, int64(3002), g.Next())
}

func TestGenerator_ClockStepsBack(t *testing.T) {
	current := time.UnixMilli(10_000)
	g := NewWithClock(func() time.Time { return current })

	first := g.Next()
	current = time.UnixMilli(5_000)
	second := g.Next()

	assert.Equal(t, first+1, second)
}

func TestGenerator_Concurrent(t *testing.T) {
	g := NewWithClock(fixedClock(time.UnixMilli(42)))

	const workers = 16
	const perWorker = 200

	var mu sync.Mutex
	seen := make(map[int64]struct{}, workers*perWorker)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				n := g.Next()
				mu.Lock()
				seen[n] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, workers*perWorker)
	assert.Equal(t, int64(workers*perWorker), g.Count())
}

func TestNew_UsesWallClock(t *testing.T) {
	before := time.Now().UnixMilli()
	n := New().Next()
	after := time.Now().UnixMilli()

	assert.GreaterOrEqual(t, n, before)
	assert.LessOrEqual(t, n, after)
}
