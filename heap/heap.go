package heap

import (
	"fmt"
	"os"

	"github.com/joshuapare/heapkit/internal/format"
)

// Runtime debug flag for allocation logging - controlled by the
// HEAPKIT_LOG_ALLOC environment variable.
var logAlloc = os.Getenv("HEAPKIT_LOG_ALLOC") != ""

// Heap is a manual allocator over a fixed-capacity arena. The zero value is
// unusable; construct one with New, NewWithConfig, Create, or Open.
//
// A Heap is not safe for concurrent use; see SafeHeap.
type Heap struct {
	arena *Arena
	cfg   Config

	// head is the arena offset of the first chain entry. The chain covers
	// the arena contiguously from offset 0, so head is always 0; it is kept
	// explicit because every walk is rooted here.
	head uint64

	// live records the header offsets of all currently allocated blocks.
	// It turns invalid and repeated frees into reported errors instead of
	// silent chain corruption.
	live map[uint64]struct{}

	c counters
}

// New creates a heap over a fresh in-memory arena of capacity bytes.
func New(capacity int) (*Heap, error) {
	return NewWithConfig(capacity, nil)
}

// NewWithConfig is New with explicit configuration. A nil cfg means
// DefaultConfig.
func NewWithConfig(capacity int, cfg *Config) (*Heap, error) {
	if capacity < format.MinCapacity {
		return nil, fmt.Errorf("%w: %d bytes (minimum %d)", ErrCapacity, capacity, format.MinCapacity)
	}
	h := newHeap(newMemArena(uint64(capacity)), cfg)
	h.initChain()
	return h, nil
}

// Create creates a file-backed heap at path. The file must not already
// exist. The arena is memory-mapped where the platform supports it, so block
// and payload writes land in the file; call Sync for durability.
func Create(path string, capacity int) (*Heap, error) {
	if capacity < format.MinCapacity {
		return nil, fmt.Errorf("%w: %d bytes (minimum %d)", ErrCapacity, capacity, format.MinCapacity)
	}
	a, err := createArena(path, uint64(capacity))
	if err != nil {
		return nil, err
	}
	h := newHeap(a, nil)
	h.initChain()
	return h, nil
}

// Open reattaches to an existing arena file created by Create. The block
// chain is rescanned to rebuild the live-allocation registry and verified
// against the chain invariants before the heap is handed out.
//
// Refs issued by the previous process remain valid: a ref names an arena
// offset, not a pointer.
func Open(path string) (*Heap, error) {
	a, err := openArena(path)
	if err != nil {
		return nil, err
	}
	h := newHeap(a, nil)
	if err := h.rescan(); err != nil {
		_ = a.Close()
		return nil, err
	}
	return h, nil
}

func newHeap(a *Arena, cfg *Config) *Heap {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	return &Heap{
		arena: a,
		cfg:   *cfg,
		live:  make(map[uint64]struct{}),
	}
}

// initChain writes the bootstrap state: one free block at offset 0 spanning
// the full usable capacity.
func (h *Heap) initChain() {
	data := h.arena.Bytes()
	format.EncodeBlockHeader(data, format.BlockHeader{
		Size: h.arena.Capacity() - format.HeaderSize,
		Next: format.NilOffset,
		Free: true,
	})
	h.head = 0
}

// Capacity returns the arena's usable size in bytes, headers included.
func (h *Heap) Capacity() int {
	if h == nil || h.arena == nil {
		return 0
	}
	return int(h.arena.Capacity())
}

// Alloc returns at least n usable bytes from the first free block that can
// hold them. The payload slice aliases the arena; the caller owns it
// exclusively until the matching Free.
//
// n is rounded up to the 8-byte alignment unit, and n == 0 is a valid
// degenerate allocation consuming only a header. When no free block is large
// enough, Alloc reports ErrNoSpace and leaves the chain untouched.
func (h *Heap) Alloc(n int) (Ref, []byte, error) {
	if h == nil || h.arena == nil || h.arena.Bytes() == nil {
		return NilRef, nil, ErrUninitialized
	}
	if n < 0 {
		return NilRef, nil, fmt.Errorf("%w: %d", ErrBadRequest, n)
	}
	h.c.allocCalls++

	need := uint64(format.Align8(n))
	data := h.arena.Bytes()

	// First-fit walk from the chain head.
	off := h.head
	for off != format.NilOffset {
		hdr, err := h.readHeader(data, off)
		if err != nil {
			return NilRef, nil, err
		}

		if hdr.Free && hdr.Size >= need {
			// Split when the leftover can hold a header plus a minimal
			// payload; otherwise the excess stays inside the block as slack.
			if hdr.Size >= need+format.HeaderSize+format.MinSplitPayload {
				tail := off + format.HeaderSize + need
				format.EncodeBlockHeader(data[tail:], format.BlockHeader{
					Size: hdr.Size - need - format.HeaderSize,
					Next: hdr.Next,
					Free: true,
				})
				hdr.Size = need
				hdr.Next = tail
				h.c.splits++
			}

			hdr.Free = false
			format.EncodeBlockHeader(data[off:], hdr)
			h.live[off] = struct{}{}
			h.c.bytesAllocated += int64(hdr.Size)

			payloadOff := off + format.HeaderSize
			return Ref(payloadOff), data[payloadOff : payloadOff+hdr.Size], nil
		}

		off = hdr.Next
	}

	h.c.allocFailures++
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] NO SPACE: need=%d (requested %d)\n", need, n)
	}
	return NilRef, nil, ErrNoSpace
}

// Free releases the allocation named by ref and coalesces adjacent free
// blocks across the whole chain. Free(NilRef) is a no-op.
//
// A ref outside the arena reports ErrBadRef; a ref inside the arena that is
// not a currently live allocation (a stray ref, or a second Free of the same
// ref) reports ErrInvalidFree. Neither mutates the chain.
func (h *Heap) Free(ref Ref) error {
	if h == nil || h.arena == nil || h.arena.Bytes() == nil {
		return ErrUninitialized
	}
	if ref == NilRef {
		return nil
	}
	if uint64(ref) < format.HeaderSize || uint64(ref) > h.arena.Capacity() {
		return fmt.Errorf("%w: ref %d", ErrBadRef, ref)
	}
	h.c.freeCalls++

	off := uint64(ref) - format.HeaderSize
	if _, ok := h.live[off]; !ok {
		return fmt.Errorf("%w: ref %d", ErrInvalidFree, ref)
	}

	data := h.arena.Bytes()
	hdr, err := h.readHeader(data, off)
	if err != nil {
		return err
	}

	if h.cfg.ZeroOnFree {
		payload := data[off+format.HeaderSize : off+format.HeaderSize+hdr.Size]
		for i := range payload {
			payload[i] = 0
		}
	}

	hdr.Free = true
	format.EncodeBlockHeader(data[off:], hdr)
	delete(h.live, off)
	h.c.bytesFreed += int64(hdr.Size)

	return h.coalesce()
}

// Payload returns the payload bytes of a live allocation. It is the read
// path for reattached heaps and inspection tools; the slice aliases the
// arena just as the one returned by Alloc does.
func (h *Heap) Payload(ref Ref) ([]byte, error) {
	if h == nil || h.arena == nil || h.arena.Bytes() == nil {
		return nil, ErrUninitialized
	}
	if uint64(ref) < format.HeaderSize || uint64(ref) > h.arena.Capacity() {
		return nil, fmt.Errorf("%w: ref %d", ErrBadRef, ref)
	}
	off := uint64(ref) - format.HeaderSize
	if _, ok := h.live[off]; !ok {
		return nil, fmt.Errorf("%w: ref %d", ErrInvalidFree, ref)
	}
	data := h.arena.Bytes()
	hdr, err := h.readHeader(data, off)
	if err != nil {
		return nil, err
	}
	return data[off+format.HeaderSize : off+format.HeaderSize+hdr.Size], nil
}

// coalesce merges every run of adjacent free blocks into one, walking the
// whole chain. Each node absorbs free successors until its successor is
// allocated (or the chain ends), so runs of three or more collapse in a
// single pass and no two adjacent blocks are left free.
func (h *Heap) coalesce() error {
	data := h.arena.Bytes()

	off := h.head
	for off != format.NilOffset {
		hdr, err := h.readHeader(data, off)
		if err != nil {
			return err
		}

		merged := false
		for hdr.Free && hdr.Next != format.NilOffset {
			next, err := h.readHeader(data, hdr.Next)
			if err != nil {
				return err
			}
			if !next.Free {
				break
			}
			hdr.Size += format.HeaderSize + next.Size
			hdr.Next = next.Next
			h.c.coalesces++
			merged = true
		}
		if merged {
			format.EncodeBlockHeader(data[off:], hdr)
		}

		off = hdr.Next
	}
	return nil
}

// Reset reinitializes the chain to a single free block spanning the arena,
// discarding the live-allocation registry and all counters.
//
// Every previously issued Ref is silently invalidated; this is the explicit
// "new heap, same arena" primitive, not something to call while allocations
// are outstanding and still in use.
func (h *Heap) Reset() error {
	if h == nil || h.arena == nil || h.arena.Bytes() == nil {
		return ErrUninitialized
	}
	h.initChain()
	h.live = make(map[uint64]struct{})
	h.c = counters{}
	return nil
}

// Sync flushes a file-backed arena to disk. It is a no-op for in-memory
// heaps.
func (h *Heap) Sync() error {
	if h == nil || h.arena == nil {
		return ErrUninitialized
	}
	return h.arena.Sync()
}

// Close releases the arena. Every outstanding payload slice and Ref becomes
// invalid; subsequent operations report ErrUninitialized.
func (h *Heap) Close() error {
	if h == nil || h.arena == nil {
		return nil
	}
	err := h.arena.Close()
	h.arena = nil
	h.live = nil
	return err
}

// rescan rebuilds the live-allocation registry from the chain of an opened
// arena file and verifies the chain invariants.
func (h *Heap) rescan() error {
	data := h.arena.Bytes()

	off := h.head
	for off != format.NilOffset {
		hdr, err := h.readHeader(data, off)
		if err != nil {
			return err
		}
		if !hdr.Free {
			h.live[off] = struct{}{}
		}
		off = hdr.Next
	}

	return h.Check()
}

// readHeader decodes the header at off, reporting chain corruption instead
// of faulting when the offset cannot hold one.
func (h *Heap) readHeader(data []byte, off uint64) (format.BlockHeader, error) {
	hdr, err := format.ReadBlockHeader(data, off)
	if err != nil {
		return format.BlockHeader{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if hdr.Next != format.NilOffset && hdr.Next <= off {
		return format.BlockHeader{}, fmt.Errorf("%w: link at %d does not advance (next=%d)",
			ErrCorrupt, off, hdr.Next)
	}
	return hdr, nil
}
