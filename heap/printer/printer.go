package printer

import (
	"io"

	"github.com/joshuapare/heapkit/heap"
)

const (
	DefaultMaxPayloadBytes = 32
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs human-readable text format.
	FormatText Format = "text"

	// FormatJSON outputs JSON format.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// ShowPayloads includes a hex preview of each live block's payload.
	// Default: false
	ShowPayloads bool

	// MaxPayloadBytes limits how many payload bytes the preview shows.
	// Longer payloads are truncated. Set to 0 for no limit.
	// Default: 32
	MaxPayloadBytes int

	// ShowCounters includes the lifetime event counters in stats output.
	// When false, only the occupancy snapshot is printed.
	// Default: true
	ShowCounters bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:          FormatText,
		ShowPayloads:    false,
		MaxPayloadBytes: DefaultMaxPayloadBytes,
		ShowCounters:    true,
	}
}

// Source is the heap surface the printer reads from. Both *heap.Heap and
// *heap.SafeHeap satisfy it.
type Source interface {
	Blocks() ([]heap.Block, error)
	Stats() (heap.Stats, error)
	Payload(heap.Ref) ([]byte, error)
	Capacity() int
}

// Printer handles formatted output of heap state.
type Printer struct {
	opts Options
	w    io.Writer
	src  Source
}

// New creates a new Printer.
//
// The Source is used to read heap state, the Writer receives the output, and
// Options controls formatting behavior.
//
// Example:
//
//	h, _ := heap.Open("cache.arena")
//	p := printer.New(h, os.Stdout, printer.DefaultOptions())
//	p.PrintChain()
func New(src Source, w io.Writer, opts Options) *Printer {
	return &Printer{
		src:  src,
		w:    w,
		opts: opts,
	}
}

// PrintChain prints every block in the chain, in address order.
func (p *Printer) PrintChain() error {
	blocks, err := p.src.Blocks()
	if err != nil {
		return err
	}

	switch p.opts.Format {
	case FormatJSON:
		return p.printChainJSON(blocks)
	default:
		return p.printChainText(blocks)
	}
}

// PrintStats prints the occupancy snapshot and, when ShowCounters is set,
// the lifetime event totals.
func (p *Printer) PrintStats() error {
	stats, err := p.src.Stats()
	if err != nil {
		return err
	}

	switch p.opts.Format {
	case FormatJSON:
		return p.printStatsJSON(stats)
	default:
		return p.printStatsText(stats)
	}
}
