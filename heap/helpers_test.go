package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestHeap builds an in-memory heap and fails the test on error.
func newTestHeap(t *testing.T, capacity int) *Heap {
	t.Helper()
	h, err := New(capacity)
	require.NoError(t, err)
	return h
}

// mustStats snapshots the heap, failing the test on a corrupt chain.
func mustStats(t *testing.T, h *Heap) Stats {
	t.Helper()
	s, err := h.Stats()
	require.NoError(t, err)
	return s
}

// mustBlocks snapshots the chain, failing the test on a corrupt chain.
func mustBlocks(t *testing.T, h *Heap) []Block {
	t.Helper()
	blocks, err := h.Blocks()
	require.NoError(t, err)
	return blocks
}

// assertInvariants verifies the structural chain invariants plus
// conservation: header overhead and payloads must sum to the capacity.
func assertInvariants(t *testing.T, h *Heap) {
	t.Helper()
	require.NoError(t, h.Check())

	s := mustStats(t, h)
	require.Equal(t, s.Capacity, s.InUseBytes+s.FreeBytes+s.OverheadBytes,
		"chain does not cover the arena exactly")
}
