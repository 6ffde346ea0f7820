package snowflake

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// Tests here share the package-level node and must not run in parallel.

func TestInit_NodeRange(t *testing.T) {
	require.NoError(t, Init(0))
	require.NoError(t, Init(1023))
	require.Error(t, Init(-1))
	require.Error(t, Init(1024))
	require.NoError(t, Init(1))
}

func TestNextID_OrderedAndPositive(t *testing.T) {
	require.NoError(t, Init(1))

	prev := NextID()
	require.Positive(t, prev)
	for i := 0; i < 2000; i++ {
		id := NextID()
		require.Greater(t, id, prev)
		prev = id
	}
}

func TestNextID_ConcurrentFetchWorkers(t *testing.T) {
	require.NoError(t, Init(1))

	const workers, perWorker = 5, 2000
	var (
		mu   sync.Mutex
		seen = make(map[int64]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			batch := make([]int64, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				batch = append(batch, NextID())
			}
			mu.Lock()
			for _, id := range batch {
				seen[id] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	require.Len(t, seen, workers*perWorker)
}
