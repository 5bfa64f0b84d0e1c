package heap

import "sync"

// SafeHeap is a mutex-protected wrapper around Heap for concurrent access.
// All operations are serialized behind a single lock, which is the intended
// way to share one heap between goroutines.
type SafeHeap struct {
	mu sync.Mutex
	h  *Heap
}

// NewSafe creates a thread-safe heap over a fresh in-memory arena.
func NewSafe(capacity int) (*SafeHeap, error) {
	h, err := New(capacity)
	if err != nil {
		return nil, err
	}
	return &SafeHeap{h: h}, nil
}

// WrapSafe wraps an existing heap. The caller must stop using h directly.
func WrapSafe(h *Heap) *SafeHeap {
	return &SafeHeap{h: h}
}

// Alloc thread-safely allocates at least n bytes.
func (s *SafeHeap) Alloc(n int) (Ref, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Alloc(n)
}

// Free thread-safely releases the allocation named by ref.
func (s *SafeHeap) Free(ref Ref) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Free(ref)
}

// Payload thread-safely resolves a live allocation's payload bytes.
func (s *SafeHeap) Payload(ref Ref) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Payload(ref)
}

// Capacity returns the arena's usable size in bytes.
func (s *SafeHeap) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Capacity()
}

// Stats thread-safely returns the current snapshot.
func (s *SafeHeap) Stats() (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Stats()
}

// Blocks thread-safely snapshots the chain.
func (s *SafeHeap) Blocks() ([]Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Blocks()
}

// Check thread-safely verifies the chain invariants.
func (s *SafeHeap) Check() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Check()
}

// Reset thread-safely reinitializes the chain, invalidating all issued refs.
func (s *SafeHeap) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Reset()
}

// Sync thread-safely flushes a file-backed arena to disk.
func (s *SafeHeap) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Sync()
}

// Close thread-safely releases the arena.
func (s *SafeHeap) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Close()
}
