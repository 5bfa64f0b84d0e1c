package format

import (
	"bytes"
	"fmt"
)

// Superblock is the fixed metadata record at the start of every arena file.
// The block chain begins immediately after it, so arena offset 0 maps to file
// offset SuperblockSize.
type Superblock struct {
	Version  uint32
	Capacity uint64 // Arena capacity in bytes, superblock excluded
}

// ParseSuperblock decodes and validates the superblock at the start of b.
func ParseSuperblock(b []byte) (Superblock, error) {
	if len(b) < SuperblockSize {
		return Superblock{}, fmt.Errorf("superblock: %w", ErrTruncated)
	}
	if !bytes.Equal(b[MagicFieldOffset:MagicFieldOffset+len(Magic)], Magic) {
		return Superblock{}, fmt.Errorf("superblock: %w", ErrSignatureMismatch)
	}
	sb := Superblock{
		Version:  ReadU32(b, VersionFieldOffset),
		Capacity: ReadU64(b, CapacityFieldOffset),
	}
	if sb.Version != Version {
		return Superblock{}, fmt.Errorf("superblock: version %d: %w", sb.Version, ErrUnsupported)
	}
	return sb, nil
}

// EncodeSuperblock writes sb to the start of b.
// The caller must ensure len(b) >= SuperblockSize.
func EncodeSuperblock(b []byte, sb Superblock) {
	copy(b[MagicFieldOffset:], Magic)
	PutU32(b, VersionFieldOffset, sb.Version)
	PutU32(b, VersionFieldOffset+4, 0)
	PutU64(b, CapacityFieldOffset, sb.Capacity)
}

// ValidateSanity cross-checks the superblock against the actual file size.
// The file must hold exactly the superblock plus the declared capacity.
func (sb Superblock) ValidateSanity(fileSize int64) error {
	want := int64(SuperblockSize) + int64(sb.Capacity)
	if fileSize != want {
		return fmt.Errorf("superblock: declared capacity %d does not match file size %d",
			sb.Capacity, fileSize)
	}
	if sb.Capacity < MinCapacity {
		return fmt.Errorf("superblock: capacity %d below minimum %d", sb.Capacity, MinCapacity)
	}
	return nil
}
