package format

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuperblockRoundTrip(t *testing.T) {
	buf := make([]byte, SuperblockSize)
	EncodeSuperblock(buf, Superblock{Version: Version, Capacity: 1 << 20})

	sb, err := ParseSuperblock(buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(Version), sb.Version)
	assert.Equal(t, uint64(1<<20), sb.Capacity)

	require.NoError(t, sb.ValidateSanity(SuperblockSize+1<<20))
	assert.Error(t, sb.ValidateSanity(SuperblockSize+1<<20+1))
}

func TestParseSuperblockRejectsGarbage(t *testing.T) {
	_, err := ParseSuperblock(make([]byte, 8))
	assert.ErrorIs(t, err, ErrTruncated)

	buf := make([]byte, SuperblockSize)
	_, err = ParseSuperblock(buf)
	assert.ErrorIs(t, err, ErrSignatureMismatch)

	EncodeSuperblock(buf, Superblock{Version: Version + 1, Capacity: 4096})
	_, err = ParseSuperblock(buf)
	assert.True(t, errors.Is(err, ErrUnsupported))
}
