//go:build linux || darwin

package heap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/heapkit/internal/format"
)

// createArena creates path, sizes it for the superblock plus capacity bytes,
// and mmaps it RW so the heap mutates the file in place.
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

	raw, err := unix.Mmap(int(f.Fd()), 0, int(total),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("mmap failed: %w", err)
	}

	format.EncodeSuperblock(raw, format.Superblock{Version: format.Version, Capacity: capacity})

	return &Arena{f: f, raw: raw, data: raw[format.SuperblockSize:]}, nil
}

// openArena mmaps an existing arena file RW and validates its superblock
// against the actual file size.
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

	raw, err := unix.Mmap(int(f.Fd()), 0, int(sz),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("mmap failed: %w", err)
	}

	sb, err := format.ParseSuperblock(raw)
	if err != nil {
		_ = unix.Munmap(raw)
		_ = f.Close()
		return nil, err
	}
	if err := sb.ValidateSanity(sz); err != nil {
		_ = unix.Munmap(raw)
		_ = f.Close()
		return nil, err
	}

	return &Arena{f: f, raw: raw, data: raw[format.SuperblockSize:]}, nil
}

// Sync flushes a file-backed arena to disk. It is a no-op for in-memory
// arenas.
func (a *Arena) Sync() error {
	if a.raw == nil {
		return nil
	}
	return unix.Msync(a.raw, unix.MS_SYNC)
}

// Close releases the arena's backing store. A file-backed arena is unmapped
// and its file closed; an in-memory arena simply drops its buffer.
func (a *Arena) Close() error {
	var err error
	if a.raw != nil {
		err = unix.Munmap(a.raw)
		a.raw = nil
	}
	if a.f != nil {
		if cerr := a.f.Close(); err == nil {
			err = cerr
		}
		a.f = nil
	}
	a.data = nil
	return err
}
