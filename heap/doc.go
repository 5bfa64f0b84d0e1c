// Package heap implements a manual allocator over a single fixed-capacity
// arena, in the style of a freestanding malloc/free pair.
//
// # Overview
//
// A Heap owns a contiguous byte arena and carves it into blocks. Every block
// carries a 24-byte inline header (payload size, chain link, free flag)
// immediately before its payload. The headers form a singly linked chain
// covering the whole arena in address order, free and allocated blocks alike.
//
// Allocation is first-fit: the chain is walked from the head and the first
// free block large enough is taken, splitting off the remainder as a new free
// block when it can hold a header plus at least 8 payload bytes. Releasing a
// block marks it free and runs a full-chain coalescing pass, so no two
// adjacent blocks are ever left free.
//
// # Usage
//
//	h, err := heap.New(64 * 1024)
//	if err != nil {
//	    return err
//	}
//	ref, buf, err := h.Alloc(100)
//	if err != nil {
//	    return err
//	}
//	copy(buf, payload)
//	// ...
//	if err := h.Free(ref); err != nil {
//	    return err
//	}
//
// # Refs
//
// Alloc hands out a Ref, the arena offset of the payload (header offset plus
// 24). NilRef plays the role of a null pointer: Free(NilRef) is a no-op.
// Callers never see header offsets.
//
// Every Free is validated against a registry of live allocations: refs outside
// the arena return ErrBadRef, and refs that do not name a currently live
// allocation (including double frees) return ErrInvalidFree.
//
// # Arenas
//
// heap.New backs the arena with ordinary memory. heap.Create and heap.Open
// back it with a memory-mapped file, so a heap can be inspected or reattached
// across processes; Open rescans the chain, rebuilds the live-allocation
// registry, and verifies the chain invariants before returning.
//
// # Limits
//
// The arena never grows or shrinks, there is no realloc, and free space is
// reclaimed only by coalescing adjacent blocks; a request larger than the
// largest single free block fails with ErrNoSpace even when the total free
// space would suffice.
//
// # Thread Safety
//
// Heap instances are not thread-safe. Wrap one in a SafeHeap or give each
// goroutine its own heap.
package heap
