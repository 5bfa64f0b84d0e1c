package heap

import "github.com/joshuapare/heapkit/internal/format"

// Ref is the handle returned by Alloc: the arena offset of the block's
// payload, which sits exactly one header past the block's header offset.
type Ref uint64

// NilRef is the null ref. Offset 0 holds the first block header, so no
// payload can ever live there and 0 is free to act as the null value.
const NilRef Ref = 0

// HeaderSize is the per-block metadata overhead in bytes.
const HeaderSize = format.HeaderSize

// Alignment is the fixed boundary every allocation size is rounded up to.
const Alignment = format.Alignment

// MinCapacity is the smallest arena capacity New and Create accept.
const MinCapacity = format.MinCapacity

// Block describes one chain entry, as reported by Blocks.
type Block struct {
	Offset uint64 // Arena offset of the block header
	Size   uint64 // Payload bytes, header excluded
	Free   bool
}

// Config controls optional Heap behavior.
type Config struct {
	// ZeroOnFree scrubs a block's payload when it is released, so stale
	// caller data never survives into the next allocation of that region.
	ZeroOnFree bool
}

// DefaultConfig is used when no config is supplied.
var DefaultConfig = Config{}
