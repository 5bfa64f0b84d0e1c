package heap

import "github.com/joshuapare/heapkit/internal/format"

// counters holds the event totals maintained as the heap runs.
type counters struct {
	allocCalls     int64
	allocFailures  int64
	freeCalls      int64
	splits         int64
	coalesces      int64
	bytesAllocated int64
	bytesFreed     int64
}

// Stats is a point-in-time snapshot of heap occupancy and lifetime event
// totals.
type Stats struct {
	Capacity      int64 // Usable arena bytes, headers included
	InUseBytes    int64 // Payload bytes of live allocations
	InUseBlocks   int
	FreeBytes     int64 // Payload bytes available across all free blocks
	FreeBlocks    int
	OverheadBytes int64 // Header bytes across all chain entries
	LargestFree   int64 // Largest single free payload; the biggest satisfiable request

	AllocCalls     int64 // Alloc invocations, successful or not
	AllocFailures  int64 // Allocs that returned ErrNoSpace
	FreeCalls      int64 // Frees past the NilRef no-op
	Splits         int64 // Free blocks split during allocation
	Coalesces      int64 // Adjacent free pairs merged on release
	BytesAllocated int64 // Cumulative payload bytes handed out
	BytesFreed     int64 // Cumulative payload bytes released
}

// Stats walks the chain and returns the current snapshot.
func (h *Heap) Stats() (Stats, error) {
	if h == nil || h.arena == nil || h.arena.Bytes() == nil {
		return Stats{}, ErrUninitialized
	}
	data := h.arena.Bytes()

	s := Stats{
		Capacity:       int64(h.arena.Capacity()),
		AllocCalls:     h.c.allocCalls,
		AllocFailures:  h.c.allocFailures,
		FreeCalls:      h.c.freeCalls,
		Splits:         h.c.splits,
		Coalesces:      h.c.coalesces,
		BytesAllocated: h.c.bytesAllocated,
		BytesFreed:     h.c.bytesFreed,
	}

	off := h.head
	for off != format.NilOffset {
		hdr, err := h.readHeader(data, off)
		if err != nil {
			return Stats{}, err
		}
		s.OverheadBytes += format.HeaderSize
		if hdr.Free {
			s.FreeBlocks++
			s.FreeBytes += int64(hdr.Size)
			if int64(hdr.Size) > s.LargestFree {
				s.LargestFree = int64(hdr.Size)
			}
		} else {
			s.InUseBlocks++
			s.InUseBytes += int64(hdr.Size)
		}
		off = hdr.Next
	}
	return s, nil
}
