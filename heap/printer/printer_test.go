package printer

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
)

// newTestHeap builds a small heap with one live and one free block.
func newTestHeap(t *testing.T) (*heap.Heap, heap.Ref) {
	t.Helper()

	h, err := heap.New(1024)
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })

	ref, data, err := h.Alloc(32)
	require.NoError(t, err)
	copy(data, []byte("hello, arena"))
	return h, ref
}

func TestPrinter_PrintChain_Text(t *testing.T) {
	h, _ := newTestHeap(t)

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.ShowPayloads = true

	p := New(h, &buf, opts)
	require.NoError(t, p.PrintChain())

	output := buf.String()
	t.Logf("Text output:\n%s", output)

	require.Contains(t, output, "2 blocks")
	require.Contains(t, output, "used size=32")
	require.Contains(t, output, "free size=")
	require.Contains(t, output, "68656C6C6F") // "hello" hex preview
}

func TestPrinter_PrintChain_JSON(t *testing.T) {
	h, _ := newTestHeap(t)

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatJSON
	opts.ShowPayloads = true

	p := New(h, &buf, opts)
	require.NoError(t, p.PrintChain())

	t.Logf("JSON output:\n%s", buf.String())

	var result struct {
		Capacity int `json:"capacity"`
		Blocks   []struct {
			Offset  uint64 `json:"offset"`
			Size    uint64 `json:"size"`
			Free    bool   `json:"free"`
			Payload string `json:"payload"`
		} `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	require.Equal(t, 1024, result.Capacity)
	require.Len(t, result.Blocks, 2)
	require.False(t, result.Blocks[0].Free)
	require.Equal(t, uint64(32), result.Blocks[0].Size)
	require.Contains(t, result.Blocks[0].Payload, "68656c6c6f")
	require.True(t, result.Blocks[1].Free)
	require.Empty(t, result.Blocks[1].Payload)
}

func TestPrinter_PrintStats_Text(t *testing.T) {
	h, _ := newTestHeap(t)

	var buf bytes.Buffer
	p := New(h, &buf, DefaultOptions())
	require.NoError(t, p.PrintStats())

	output := buf.String()
	t.Logf("Text output:\n%s", output)

	require.Contains(t, output, "capacity:")
	require.Contains(t, output, "in use:")
	require.Contains(t, output, "largest free:")
	require.Contains(t, output, "allocs:")
}

func TestPrinter_PrintStats_Text_NoCounters(t *testing.T) {
	h, _ := newTestHeap(t)

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.ShowCounters = false

	p := New(h, &buf, opts)
	require.NoError(t, p.PrintStats())

	output := buf.String()
	require.Contains(t, output, "capacity:")
	require.NotContains(t, output, "allocs:")
}

func TestPrinter_PrintStats_JSON(t *testing.T) {
	h, _ := newTestHeap(t)

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatJSON

	p := New(h, &buf, opts)
	require.NoError(t, p.PrintStats())

	var result map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	require.Contains(t, result, "capacity")
	require.Contains(t, result, "in_use_bytes")
	require.Contains(t, result, "alloc_calls")
}

func TestPrinter_SafeHeapSource(t *testing.T) {
	h, _ := newTestHeap(t)
	sh := heap.WrapSafe(h)

	var buf bytes.Buffer
	p := New(sh, &buf, DefaultOptions())
	require.NoError(t, p.PrintChain())
	require.Contains(t, buf.String(), "2 blocks")
}
