// Package format houses the low-level byte layout of heapkit arenas. The goal
// is to keep the encoding focused and allocation-free so the higher-level heap
// package can orchestrate blocks in a more ergonomic form.
package format

var (
	// Magic is the eight-byte signature at the start of every arena file.
	// Layout:
	//   0x00  'h' 'e' 'a' 'p' 'a' 'r' 'n' 0x00
	Magic = []byte{'h', 'e', 'a', 'p', 'a', 'r', 'n', 0}
)

const (
	// HeaderSize is the number of bytes used by the block header preceding
	// every payload region (free or in-use) within an arena.
	HeaderSize = 24

	// Block header field offsets (little-endian), relative to the header start:
	//   0x00  u64  payload size in bytes, header excluded
	//   0x08  u64  arena offset of the successor header, NilOffset = none
	//   0x10  u64  flags, bit 0 = free
	SizeFieldOffset  = 0x00
	NextFieldOffset  = 0x08
	FlagsFieldOffset = 0x10

	// FlagFree marks a block as available for allocation.
	FlagFree uint64 = 1

	// Alignment is the fixed byte boundary every payload size is rounded to.
	Alignment     = 8
	AlignmentMask = Alignment - 1

	// MinSplitPayload is the smallest payload a split remainder may carry.
	// A free block is split only when the leftover can hold a header plus
	// at least this many payload bytes; smaller leftovers stay inside the
	// allocated block as slack.
	MinSplitPayload = Alignment

	// NilOffset terminates the block chain. Offset 0 is the first header, so
	// the all-ones pattern is the only safe sentinel.
	NilOffset = ^uint64(0)

	// MinCapacity is the smallest usable arena: one header and one aligned
	// payload unit.
	MinCapacity = HeaderSize + Alignment

	// Superblock layout for file-backed arenas:
	//   0x00  8 bytes  Magic
	//   0x08  u32      Version
	//   0x0C  u32      reserved, zero
	//   0x10  u64      arena capacity in bytes (superblock excluded)
	SuperblockSize      = 24
	MagicFieldOffset    = 0x00
	VersionFieldOffset  = 0x08
	CapacityFieldOffset = 0x10

	// Version is the current arena file format version.
	Version = 1
)
