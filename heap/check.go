package heap

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Check walks the whole chain and verifies the structural invariants:
//
//   - entries appear in strictly increasing address order, each link naming
//     its physical successor, so the chain covers the arena contiguously
//     from offset 0 with no gaps and no overlaps;
//   - the header overhead plus payload of all entries sums to the capacity;
//   - no two adjacent entries are both free (coalescing is maximal);
//   - the free flags agree with the live-allocation registry.
//
// Any violation is reported wrapped in ErrCorrupt. Check is cheap relative
// to arena sizes this allocator targets and is run automatically by Open.
func (h *Heap) Check() error {
	if h == nil || h.arena == nil || h.arena.Bytes() == nil {
		return ErrUninitialized
	}
	data := h.arena.Bytes()
	capacity := h.arena.Capacity()

	var (
		expected uint64 // where the next header must start
		prevFree bool
		liveSeen int
		first    = true
	)

	off := h.head
	for off != format.NilOffset {
		if off != expected {
			return fmt.Errorf("%w: block at %d, expected %d (gap or overlap)",
				ErrCorrupt, off, expected)
		}

		hdr, err := format.ReadBlockHeader(data, off)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCorrupt, err)
		}

		end := off + format.HeaderSize + hdr.Size
		if end > capacity || end < off {
			return fmt.Errorf("%w: block at %d runs past the arena (size %d)",
				ErrCorrupt, off, hdr.Size)
		}

		if hdr.Free && prevFree && !first {
			return fmt.Errorf("%w: adjacent free blocks at %d", ErrCorrupt, off)
		}

		if hdr.Free {
			if _, ok := h.live[off]; ok {
				return fmt.Errorf("%w: free block at %d still in live registry",
					ErrCorrupt, off)
			}
		} else {
			if _, ok := h.live[off]; !ok {
				return fmt.Errorf("%w: allocated block at %d missing from live registry",
					ErrCorrupt, off)
			}
			liveSeen++
		}

		prevFree = hdr.Free
		first = false
		expected = end
		off = hdr.Next
	}

	if expected != capacity {
		return fmt.Errorf("%w: chain covers %d of %d bytes", ErrCorrupt, expected, capacity)
	}
	if liveSeen != len(h.live) {
		return fmt.Errorf("%w: live registry holds %d entries, chain shows %d",
			ErrCorrupt, len(h.live), liveSeen)
	}
	return nil
}
