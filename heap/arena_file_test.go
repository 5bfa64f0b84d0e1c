package heap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/format"
)

func TestCreateOpenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.heap")

	h, err := Create(path, 4096)
	require.NoError(t, err)

	ref, buf, err := h.Alloc(100)
	require.NoError(t, err)
	copy(buf, "persisted payload")
	require.NoError(t, h.Sync())
	require.NoError(t, h.Close())

	// Reattach: the chain, the live registry, and the payload all survive.
	h2, err := Open(path)
	require.NoError(t, err)
	defer h2.Close()

	assert.Equal(t, 4096, h2.Capacity())
	assertInvariants(t, h2)

	got, err := h2.Payload(ref)
	require.NoError(t, err)
	assert.Equal(t, "persisted payload", string(got[:17]))

	// The reattached heap keeps allocating and releasing normally.
	ref2, _, err := h2.Alloc(64)
	require.NoError(t, err)
	require.NoError(t, h2.Free(ref2))
	require.NoError(t, h2.Free(ref))

	blocks := mustBlocks(t, h2)
	require.Len(t, blocks, 1)
	assert.True(t, blocks[0].Free)
}

func TestCreateRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.heap")
	require.NoError(t, os.WriteFile(path, []byte("occupied"), 0o644))

	_, err := Create(path, 4096)
	assert.Error(t, err)
}

func TestOpenRejectsGarbage(t *testing.T) {
	dir := t.TempDir()

	short := filepath.Join(dir, "short.heap")
	require.NoError(t, os.WriteFile(short, []byte{1, 2, 3}, 0o644))
	_, err := Open(short)
	assert.Error(t, err)

	// Right size, wrong magic.
	bogus := filepath.Join(dir, "bogus.heap")
	require.NoError(t, os.WriteFile(bogus, make([]byte, format.SuperblockSize+1024), 0o644))
	_, err = Open(bogus)
	assert.ErrorIs(t, err, format.ErrSignatureMismatch)
}

func TestOpenRejectsTruncatedArena(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.heap")

	h, err := Create(path, 4096)
	require.NoError(t, err)
	require.NoError(t, h.Close())

	// Chop the file: the superblock's declared capacity no longer matches.
	require.NoError(t, os.Truncate(path, format.SuperblockSize+1024))
	_, err = Open(path)
	assert.Error(t, err)
}
