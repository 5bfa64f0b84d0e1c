package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCoalesceNeighbors: two adjacent allocations released in either order
// collapse into one free block spanning both payloads plus the reclaimed
// header.
func TestCoalesceNeighbors(t *testing.T) {
	for name, reversed := range map[string]bool{"forward": false, "reverse": true} {
		t.Run(name, func(t *testing.T) {
			h := newTestHeap(t, 1024)

			a, _, err := h.Alloc(100)
			require.NoError(t, err)
			b, _, err := h.Alloc(50)
			require.NoError(t, err)

			first, second := a, b
			if reversed {
				first, second = b, a
			}
			require.NoError(t, h.Free(first))
			require.NoError(t, h.Free(second))

			blocks := mustBlocks(t, h)
			require.Len(t, blocks, 1, "everything should merge back into one block")
			assert.True(t, blocks[0].Free)
			assert.Equal(t, uint64(1024-HeaderSize), blocks[0].Size)
			assertInvariants(t, h)
		})
	}
}

// TestCoalesceAbsorbsRun: releasing the middle of three neighbors last
// leaves a run of three free blocks that must collapse in a single pass.
func TestCoalesceAbsorbsRun(t *testing.T) {
	h := newTestHeap(t, 2048)

	a, _, err := h.Alloc(100)
	require.NoError(t, err)
	b, _, err := h.Alloc(100)
	require.NoError(t, err)
	c, _, err := h.Alloc(100)
	require.NoError(t, err)
	// Pin the remainder so the run under test has an allocated right neighbor.
	pin, _, err := h.Alloc(100)
	require.NoError(t, err)

	require.NoError(t, h.Free(a))
	require.NoError(t, h.Free(c))
	require.NoError(t, h.Free(b))

	// Merged run, the pin, then the original remainder block.
	blocks := mustBlocks(t, h)
	require.Len(t, blocks, 3)
	assert.True(t, blocks[0].Free)
	// 3 payloads of 104 plus the 2 reclaimed headers.
	assert.Equal(t, uint64(3*104+2*HeaderSize), blocks[0].Size)
	assert.False(t, blocks[1].Free)
	assert.True(t, blocks[2].Free)

	require.NoError(t, h.Free(pin))
	assertInvariants(t, h)
}

// TestCoalescePassIdempotent: running the pass again right after a release
// must change nothing, because the first pass already merged maximally.
func TestCoalescePassIdempotent(t *testing.T) {
	h := newTestHeap(t, 2048)

	a, _, err := h.Alloc(64)
	require.NoError(t, err)
	b, _, err := h.Alloc(64)
	require.NoError(t, err)
	_, _, err = h.Alloc(64)
	require.NoError(t, err)

	require.NoError(t, h.Free(a))
	require.NoError(t, h.Free(b))

	before := mustBlocks(t, h)
	require.NoError(t, h.coalesce())
	after := mustBlocks(t, h)

	assert.Equal(t, before, after, "second pass found work the first one missed")
	assertInvariants(t, h)
}

// TestNoAdjacentFreeBlocksEver: after any release, no two chain neighbors
// are both free.
func TestNoAdjacentFreeBlocksEver(t *testing.T) {
	h := newTestHeap(t, 4096)

	var refs []Ref
	for i := 0; i < 10; i++ {
		ref, _, err := h.Alloc(64)
		require.NoError(t, err)
		refs = append(refs, ref)
	}

	// Free in a scattered order, checking the invariant after each step.
	for _, i := range []int{4, 1, 7, 0, 9, 3, 6, 2, 8, 5} {
		require.NoError(t, h.Free(refs[i]))

		blocks := mustBlocks(t, h)
		for j := 1; j < len(blocks); j++ {
			require.False(t, blocks[j-1].Free && blocks[j].Free,
				"adjacent free blocks at %d and %d", blocks[j-1].Offset, blocks[j].Offset)
		}
	}

	blocks := mustBlocks(t, h)
	require.Len(t, blocks, 1)
	assertInvariants(t, h)
}
