// Package metrics exposes heap occupancy and event totals as a Prometheus
// collector. Metrics are read on scrape from a Stats snapshot, so nothing is
// maintained on the allocation hot path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/joshuapare/heapkit/heap"
)

// Source provides the stats snapshot the collector scrapes. Both *heap.Heap
// and *heap.SafeHeap satisfy it; use SafeHeap when the heap is shared with
// other goroutines, since scrapes arrive on the registry's schedule.
type Source interface {
	Stats() (heap.Stats, error)
}

type statsCollector struct {
	src Source

	capacity      *prometheus.Desc
	inUseBytes    *prometheus.Desc
	inUseBlocks   *prometheus.Desc
	freeBytes     *prometheus.Desc
	freeBlocks    *prometheus.Desc
	overheadBytes *prometheus.Desc
	largestFree   *prometheus.Desc

	allocCalls     *prometheus.Desc
	allocFailures  *prometheus.Desc
	freeCalls      *prometheus.Desc
	splits         *prometheus.Desc
	coalesces      *prometheus.Desc
	bytesAllocated *prometheus.Desc
	bytesFreed     *prometheus.Desc
}

// NewStatsCollector creates a Prometheus collector over a heap. The arena
// label distinguishes multiple heaps registered in one registry.
//
// Implementation is similar to
// https://pkg.go.dev/github.com/prometheus/client_golang/prometheus/collectors#NewDBStatsCollector
func NewStatsCollector(src Source, arena string) prometheus.Collector {
	labels := prometheus.Labels{"arena": arena}
	return &statsCollector{
		src: src,
		capacity: prometheus.NewDesc(
			"heapkit_capacity_bytes",
			"Usable arena bytes, headers included.",
			nil, labels,
		),
		inUseBytes: prometheus.NewDesc(
			"heapkit_in_use_bytes",
			"Payload bytes of live allocations.",
			nil, labels,
		),
		inUseBlocks: prometheus.NewDesc(
			"heapkit_in_use_blocks",
			"Number of live allocations.",
			nil, labels,
		),
		freeBytes: prometheus.NewDesc(
			"heapkit_free_bytes",
			"Payload bytes available across all free blocks.",
			nil, labels,
		),
		freeBlocks: prometheus.NewDesc(
			"heapkit_free_blocks",
			"Number of free blocks in the chain.",
			nil, labels,
		),
		overheadBytes: prometheus.NewDesc(
			"heapkit_overhead_bytes",
			"Header bytes across all chain entries.",
			nil, labels,
		),
		largestFree: prometheus.NewDesc(
			"heapkit_largest_free_bytes",
			"Largest single free payload; the biggest satisfiable request.",
			nil, labels,
		),
		allocCalls: prometheus.NewDesc(
			"heapkit_alloc_calls_total",
			"Alloc invocations, successful or not.",
			nil, labels,
		),
		allocFailures: prometheus.NewDesc(
			"heapkit_alloc_failures_total",
			"Allocs that failed for lack of space.",
			nil, labels,
		),
		freeCalls: prometheus.NewDesc(
			"heapkit_free_calls_total",
			"Free invocations past the nil-ref no-op.",
			nil, labels,
		),
		splits: prometheus.NewDesc(
			"heapkit_splits_total",
			"Free blocks split during allocation.",
			nil, labels,
		),
		coalesces: prometheus.NewDesc(
			"heapkit_coalesces_total",
			"Adjacent free pairs merged on release.",
			nil, labels,
		),
		bytesAllocated: prometheus.NewDesc(
			"heapkit_allocated_bytes_total",
			"Cumulative payload bytes handed out.",
			nil, labels,
		),
		bytesFreed: prometheus.NewDesc(
			"heapkit_freed_bytes_total",
			"Cumulative payload bytes released.",
			nil, labels,
		),
	}
}

func (c *statsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.capacity
	ch <- c.inUseBytes
	ch <- c.inUseBlocks
	ch <- c.freeBytes
	ch <- c.freeBlocks
	ch <- c.overheadBytes
	ch <- c.largestFree
	ch <- c.allocCalls
	ch <- c.allocFailures
	ch <- c.freeCalls
	ch <- c.splits
	ch <- c.coalesces
	ch <- c.bytesAllocated
	ch <- c.bytesFreed
}

func (c *statsCollector) Collect(ch chan<- prometheus.Metric) {
	s, err := c.src.Stats()
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.capacity, err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Capacity))
	ch <- prometheus.MustNewConstMetric(c.inUseBytes, prometheus.GaugeValue, float64(s.InUseBytes))
	ch <- prometheus.MustNewConstMetric(c.inUseBlocks, prometheus.GaugeValue, float64(s.InUseBlocks))
	ch <- prometheus.MustNewConstMetric(c.freeBytes, prometheus.GaugeValue, float64(s.FreeBytes))
	ch <- prometheus.MustNewConstMetric(c.freeBlocks, prometheus.GaugeValue, float64(s.FreeBlocks))
	ch <- prometheus.MustNewConstMetric(c.overheadBytes, prometheus.GaugeValue, float64(s.OverheadBytes))
	ch <- prometheus.MustNewConstMetric(c.largestFree, prometheus.GaugeValue, float64(s.LargestFree))

	ch <- prometheus.MustNewConstMetric(c.allocCalls, prometheus.CounterValue, float64(s.AllocCalls))
	ch <- prometheus.MustNewConstMetric(c.allocFailures, prometheus.CounterValue, float64(s.AllocFailures))
	ch <- prometheus.MustNewConstMetric(c.freeCalls, prometheus.CounterValue, float64(s.FreeCalls))
	ch <- prometheus.MustNewConstMetric(c.splits, prometheus.CounterValue, float64(s.Splits))
	ch <- prometheus.MustNewConstMetric(c.coalesces, prometheus.CounterValue, float64(s.Coalesces))
	ch <- prometheus.MustNewConstMetric(c.bytesAllocated, prometheus.CounterValue, float64(s.BytesAllocated))
	ch <- prometheus.MustNewConstMetric(c.bytesFreed, prometheus.CounterValue, float64(s.BytesFreed))
}

var _ prometheus.Collector = new(statsCollector)
