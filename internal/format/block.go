package format

import "fmt"

// BlockHeader is the decoded form of the 24-byte metadata record stored
// immediately before each payload region.
//
// The chain links every block in the arena, free and allocated alike, in
// strictly increasing address order.
type BlockHeader struct {
	Size uint64 // Usable payload bytes, header excluded
	Next uint64 // Arena offset of the successor header, NilOffset = none
	Free bool   // True when the block is available for allocation
}

// DecodeBlockHeader decodes the header stored at the start of b.
// The caller must ensure len(b) >= HeaderSize.
func DecodeBlockHeader(b []byte) BlockHeader {
	return BlockHeader{
		Size: ReadU64(b, SizeFieldOffset),
		Next: ReadU64(b, NextFieldOffset),
		Free: ReadU64(b, FlagsFieldOffset)&FlagFree != 0,
	}
}

// EncodeBlockHeader encodes h into the start of b.
// The caller must ensure len(b) >= HeaderSize.
func EncodeBlockHeader(b []byte, h BlockHeader) {
	PutU64(b, SizeFieldOffset, h.Size)
	PutU64(b, NextFieldOffset, h.Next)
	var flags uint64
	if h.Free {
		flags |= FlagFree
	}
	PutU64(b, FlagsFieldOffset, flags)
}

// ReadBlockHeader is the bounds-checked form of DecodeBlockHeader: it decodes
// the header at arena offset off, or reports ErrTruncated when the offset does
// not leave room for a full header.
func ReadBlockHeader(b []byte, off uint64) (BlockHeader, error) {
	if off > uint64(len(b)) || uint64(len(b))-off < HeaderSize {
		return BlockHeader{}, fmt.Errorf("block at offset %d: %w", off, ErrTruncated)
	}
	return DecodeBlockHeader(b[off:]), nil
}

// WriteBlockHeader is the bounds-checked form of EncodeBlockHeader.
func WriteBlockHeader(b []byte, off uint64, h BlockHeader) error {
	if off > uint64(len(b)) || uint64(len(b))-off < HeaderSize {
		return fmt.Errorf("block at offset %d: %w", off, ErrTruncated)
	}
	EncodeBlockHeader(b[off:], h)
	return nil
}
