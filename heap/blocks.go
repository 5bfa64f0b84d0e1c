package heap

import "github.com/joshuapare/heapkit/internal/format"

// Blocks returns a snapshot of the chain in address order, one entry per
// block, free and allocated alike. It is an inspection aid for tests and
// tooling; the snapshot does not alias the arena.
func (h *Heap) Blocks() ([]Block, error) {
	if h == nil || h.arena == nil || h.arena.Bytes() == nil {
		return nil, ErrUninitialized
	}
	data := h.arena.Bytes()

	var blocks []Block
	off := h.head
	for off != format.NilOffset {
		hdr, err := h.readHeader(data, off)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, Block{Offset: off, Size: hdr.Size, Free: hdr.Free})
		off = hdr.Next
	}
	return blocks, nil
}
