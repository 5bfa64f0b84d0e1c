package printer

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/heapkit/heap"
)

// num formats integers with grouping separators so multi-megabyte arenas
// stay readable.
var num = message.NewPrinter(language.English)

// printChainText prints the chain in human-readable text format.
func (p *Printer) printChainText(blocks []heap.Block) error {
	num.Fprintf(p.w, "chain: %d blocks, capacity %d bytes\n", len(blocks), p.src.Capacity())

	for i, blk := range blocks {
		state := "used"
		if blk.Free {
			state = "free"
		}
		fmt.Fprintf(p.w, "  #%d @%08x %s size=%d\n", i, blk.Offset, state, blk.Size)

		if p.opts.ShowPayloads && !blk.Free {
			if err := p.printPayloadText(blk); err != nil {
				return err
			}
		}
	}
	return nil
}

// printPayloadText prints a hex preview of a live block's payload.
func (p *Printer) printPayloadText(blk heap.Block) error {
	data, err := p.src.Payload(heap.Ref(blk.Offset + heap.HeaderSize))
	if err != nil {
		return err
	}

	maxBytes := p.opts.MaxPayloadBytes
	if maxBytes == 0 {
		maxBytes = len(data)
	}
	displayLen := min(len(data), maxBytes)
	truncated := ""
	if len(data) > maxBytes {
		truncated = fmt.Sprintf(" (truncated, %d total bytes)", len(data))
	}
	if displayLen == 0 {
		fmt.Fprintf(p.w, "       <empty>%s\n", truncated)
	} else {
		fmt.Fprintf(p.w, "       %X%s\n", data[:displayLen], truncated)
	}
	return nil
}

// printStatsText prints the snapshot in human-readable text format.
func (p *Printer) printStatsText(s heap.Stats) error {
	num.Fprintf(p.w, "capacity:     %d bytes\n", s.Capacity)
	num.Fprintf(p.w, "in use:       %d bytes in %d blocks\n", s.InUseBytes, s.InUseBlocks)
	num.Fprintf(p.w, "free:         %d bytes in %d blocks\n", s.FreeBytes, s.FreeBlocks)
	num.Fprintf(p.w, "overhead:     %d bytes\n", s.OverheadBytes)
	num.Fprintf(p.w, "largest free: %d bytes\n", s.LargestFree)

	if !p.opts.ShowCounters {
		return nil
	}

	num.Fprintf(p.w, "allocs:       %d (%d failed)\n", s.AllocCalls, s.AllocFailures)
	num.Fprintf(p.w, "frees:        %d\n", s.FreeCalls)
	num.Fprintf(p.w, "splits:       %d, coalesces: %d\n", s.Splits, s.Coalesces)
	num.Fprintf(p.w, "bytes moved:  %d allocated, %d freed\n", s.BytesAllocated, s.BytesFreed)
	return nil
}
