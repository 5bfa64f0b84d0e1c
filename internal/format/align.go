package format

// Alignment utilities. Every payload size handed to the allocator is rounded
// up to the fixed 8-byte boundary before any fit decision is made.

// Align8 returns n aligned up to the next 8-byte boundary.
//
// Example:
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
func Align8(n int) int {
	return (n + AlignmentMask) & ^AlignmentMask
}

// Align8U64 returns n aligned up to the next 8-byte boundary.
// uint64 version for use on arena offsets and block sizes.
func Align8U64(n uint64) uint64 {
	return (n + AlignmentMask) & ^uint64(AlignmentMask)
}
