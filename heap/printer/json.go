package printer

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/joshuapare/heapkit/heap"
)

// jsonBlock represents one chain entry in JSON format.
type jsonBlock struct {
	Offset  uint64 `json:"offset"`
	Size    uint64 `json:"size"`
	Free    bool   `json:"free"`
	Payload string `json:"payload,omitempty"`
}

// jsonChain represents the whole chain in JSON format.
type jsonChain struct {
	Capacity int         `json:"capacity"`
	Blocks   []jsonBlock `json:"blocks"`
}

// jsonStats represents the snapshot in JSON format. Counter fields are
// omitted entirely when ShowCounters is off.
type jsonStats struct {
	Capacity      int64 `json:"capacity"`
	InUseBytes    int64 `json:"in_use_bytes"`
	InUseBlocks   int   `json:"in_use_blocks"`
	FreeBytes     int64 `json:"free_bytes"`
	FreeBlocks    int   `json:"free_blocks"`
	OverheadBytes int64 `json:"overhead_bytes"`
	LargestFree   int64 `json:"largest_free"`

	AllocCalls     *int64 `json:"alloc_calls,omitempty"`
	AllocFailures  *int64 `json:"alloc_failures,omitempty"`
	FreeCalls      *int64 `json:"free_calls,omitempty"`
	Splits         *int64 `json:"splits,omitempty"`
	Coalesces      *int64 `json:"coalesces,omitempty"`
	BytesAllocated *int64 `json:"bytes_allocated,omitempty"`
	BytesFreed     *int64 `json:"bytes_freed,omitempty"`
}

// printChainJSON prints the chain in JSON format.
func (p *Printer) printChainJSON(blocks []heap.Block) error {
	out := jsonChain{
		Capacity: p.src.Capacity(),
		Blocks:   make([]jsonBlock, 0, len(blocks)),
	}

	for _, blk := range blocks {
		jb := jsonBlock{
			Offset: blk.Offset,
			Size:   blk.Size,
			Free:   blk.Free,
		}
		if p.opts.ShowPayloads && !blk.Free {
			preview, err := p.payloadPreview(blk)
			if err != nil {
				return err
			}
			jb.Payload = preview
		}
		out.Blocks = append(out.Blocks, jb)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.w, "%s\n", data)
	return err
}

// payloadPreview hex-encodes a live block's payload for JSON output.
func (p *Printer) payloadPreview(blk heap.Block) (string, error) {
	data, err := p.src.Payload(heap.Ref(blk.Offset + heap.HeaderSize))
	if err != nil {
		return "", err
	}

	maxBytes := p.opts.MaxPayloadBytes
	if maxBytes == 0 {
		maxBytes = len(data)
	}
	displayLen := min(len(data), maxBytes)
	hexStr := hex.EncodeToString(data[:displayLen])
	if len(data) > maxBytes {
		hexStr += fmt.Sprintf(" (truncated, %d total bytes)", len(data))
	}
	return hexStr, nil
}

// printStatsJSON prints the snapshot in JSON format.
func (p *Printer) printStatsJSON(s heap.Stats) error {
	out := jsonStats{
		Capacity:      s.Capacity,
		InUseBytes:    s.InUseBytes,
		InUseBlocks:   s.InUseBlocks,
		FreeBytes:     s.FreeBytes,
		FreeBlocks:    s.FreeBlocks,
		OverheadBytes: s.OverheadBytes,
		LargestFree:   s.LargestFree,
	}

	if p.opts.ShowCounters {
		out.AllocCalls = &s.AllocCalls
		out.AllocFailures = &s.AllocFailures
		out.FreeCalls = &s.FreeCalls
		out.Splits = &s.Splits
		out.Coalesces = &s.Coalesces
		out.BytesAllocated = &s.BytesAllocated
		out.BytesFreed = &s.BytesFreed
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.w, "%s\n", data)
	return err
}
