//go:build !linux && !darwin

package heap

import (
	"fmt"
	"io"
	"os"

	"github.com/joshuapare/heapkit/internal/format"
)

// createArena creates path and buffers the arena in memory on platforms
// without the mmap path. Sync writes the buffer back to the file.
func createArena(path string, capacity uint64) (*Arena, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}

	total := int64(format.SuperblockSize) + int64(capacity)
	if err := f.Truncate(total); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("size arena file: %w", err)
	}

	raw := make([]byte, total)
	format.EncodeSuperblock(raw, format.Superblock{Version: format.Version, Capacity: capacity})
	if _, err := f.WriteAt(raw[:format.SuperblockSize], 0); err != nil {
		_ = f.Close()
		return nil, err
	}

	return &Arena{f: f, raw: raw, data: raw[format.SuperblockSize:]}, nil
}

// openArena loads an existing arena file into memory and validates its
// superblock against the actual file size.
func openArena(path string) (*Arena, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	sz := st.Size()
	if sz < format.SuperblockSize {
		_ = f.Close()
		return nil, fmt.Errorf("arena file too small: %s", path)
	}

	raw := make([]byte, sz)
	if _, err := io.ReadFull(io.NewSectionReader(f, 0, sz), raw); err != nil {
		_ = f.Close()
		return nil, err
	}

	sb, err := format.ParseSuperblock(raw)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := sb.ValidateSanity(sz); err != nil {
		_ = f.Close()
		return nil, err
	}

	return &Arena{f: f, raw: raw, data: raw[format.SuperblockSize:]}, nil
}

// Sync writes a file-backed arena's buffer to disk. It is a no-op for
// in-memory arenas.
func (a *Arena) Sync() error {
	if a.raw == nil || a.f == nil {
		return nil
	}
	if _, err := a.f.WriteAt(a.raw, 0); err != nil {
		return err
	}
	return a.f.Sync()
}

// Close flushes and releases the arena's backing store.
func (a *Arena) Close() error {
	var err error
	if a.f != nil {
		err = a.Sync()
		if cerr := a.f.Close(); err == nil {
			err = cerr
		}
		a.f = nil
	}
	a.raw = nil
	a.data = nil
	return err
}
