package heap

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeHeapConcurrentChurn(t *testing.T) {
	s, err := NewSafe(1 << 20)
	require.NoError(t, err)

	const (
		workers = 8
		rounds  = 200
	)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				n := (seed*31+i)%512 + 1
				ref, buf, err := s.Alloc(n)
				if err != nil {
					// Exhaustion under contention is acceptable; corruption
					// is not, and Check below would catch it.
					continue
				}
				for j := range buf {
					buf[j] = byte(seed)
				}
				if err := s.Free(ref); err != nil {
					t.Error(err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	require.NoError(t, s.Check())

	st, err := s.Stats()
	require.NoError(t, err)
	assert.Zero(t, st.InUseBlocks, "every worker released what it allocated")

	blocks, err := s.Blocks()
	require.NoError(t, err)
	assert.Len(t, blocks, 1, "all space should have coalesced back")
}

func TestWrapSafe(t *testing.T) {
	h := newTestHeap(t, 1024)
	s := WrapSafe(h)

	ref, _, err := s.Alloc(100)
	require.NoError(t, err)
	require.NoError(t, s.Free(ref))
	assert.Equal(t, 1024, s.Capacity())
	require.NoError(t, s.Close())
}
