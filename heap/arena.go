package heap

import "os"

// Arena is the fixed-capacity contiguous byte buffer backing a Heap. It is
// either a plain in-memory slice or a view into a memory-mapped arena file
// (see Create and Open); either way it is never resized.
type Arena struct {
	f    *os.File // nil for in-memory arenas
	raw  []byte   // full file mapping (superblock + data); nil for in-memory
	data []byte   // usable arena bytes
}

// newMemArena allocates an in-memory arena of the given capacity.
func newMemArena(capacity uint64) *Arena {
	return &Arena{data: make([]byte, capacity)}
}

// Bytes returns the arena's usable bytes. The slice aliases the backing
// store; it is nil after Close.
func (a *Arena) Bytes() []byte {
	return a.data
}

// Capacity returns the arena's usable size in bytes.
func (a *Arena) Capacity() uint64 {
	return uint64(len(a.data))
}
