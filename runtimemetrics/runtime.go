// Package runtimemetrics registers process self-metrics (memory, goroutine
// and GC statistics) as Gauges, Meters and a GC-pause Histogram against a
// metrics.Registry,
// adapted from the teacher's runtime/runtime.go, which wired bare
// instruments.Gauge/Derive/Reservoir values directly.
package runtimemetrics

import (
	"runtime"
	"sync"

	metrics "github.com/heroku/appmetrics"
)

// Collector periodically samples runtime.MemStats and other runtime
// counters into a fixed set of registry instruments.
type Collector struct {
	reg *metrics.Registry

	allocated *metrics.Gauge
	heap      *metrics.Gauge
	stack     *metrics.Gauge
	goroutine *metrics.Gauge
	cgo       *metrics.Gauge
	frees     *metrics.Meter
	lookups   *metrics.Meter
	mallocs   *metrics.Meter
	pauses    *metrics.Histogram

	mu    sync.Mutex
	mem   runtime.MemStats
	numGC uint32
}

// New creates and registers the self-metrics named with prefix+"." on reg.
func New(reg *metrics.Registry, prefix string) (*Collector, error) {
	allocated, err := reg.NewGauge(prefix + ".allocated")
	if err != nil {
		return nil, err
	}
	heap, err := reg.NewGauge(prefix + ".heap")
	if err != nil {
		return nil, err
	}
	stack, err := reg.NewGauge(prefix + ".stack")
	if err != nil {
		return nil, err
	}
	goroutine, err := reg.NewGauge(prefix + ".goroutine")
	if err != nil {
		return nil, err
	}
	cgo, err := reg.NewGauge(prefix + ".cgo")
	if err != nil {
		return nil, err
	}
	frees, err := reg.NewMeter(prefix + ".frees")
	if err != nil {
		return nil, err
	}
	lookups, err := reg.NewMeter(prefix + ".lookups")
	if err != nil {
		return nil, err
	}
	mallocs, err := reg.NewMeter(prefix + ".mallocs")
	if err != nil {
		return nil, err
	}
	pauses, err := reg.NewHistogram(prefix+".pauses", metrics.DefaultSlidingCountConfig())
	if err != nil {
		return nil, err
	}

	return &Collector{
		reg:       reg,
		allocated: allocated,
		heap:      heap,
		stack:     stack,
		goroutine: goroutine,
		cgo:       cgo,
		frees:     frees,
		lookups:   lookups,
		mallocs:   mallocs,
		pauses:    pauses,
	}, nil
}

// Update reads runtime.MemStats and related counters once and notifies
// every registered instrument.
func (c *Collector) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()

	runtime.ReadMemStats(&c.mem)

	_ = c.allocated.Notify(int64(c.mem.Alloc))
	_ = c.heap.Notify(int64(c.mem.HeapAlloc))
	_ = c.stack.Notify(int64(c.mem.StackInuse))
	_ = c.goroutine.Notify(int64(runtime.NumGoroutine()))
	_ = c.cgo.Notify(runtime.NumCgoCall())
	_ = c.frees.Notify(int64(c.mem.Frees))
	_ = c.lookups.Notify(int64(c.mem.Lookups))
	_ = c.mallocs.Notify(int64(c.mem.Mallocs))

	c.updatePauses()
}

// updatePauses feeds every GC pause recorded since the last Update into the
// pauses histogram, mirroring the teacher's circular-buffer catch-up logic
// in runtime/runtime.go's Pauses.Update.
func (c *Collector) updatePauses() {
	numGC := c.numGC
	c.numGC = c.mem.NumGC

	if c.mem.NumGC-numGC >= uint32(len(c.mem.PauseNs)) {
		for i := range c.mem.PauseNs {
			_ = c.pauses.Notify(float64(c.mem.PauseNs[i]))
		}
		return
	}

	i := numGC % uint32(len(c.mem.PauseNs))
	j := c.mem.NumGC % uint32(len(c.mem.PauseNs))
	if i > j {
		for ; i < uint32(len(c.mem.PauseNs)); i++ {
			_ = c.pauses.Notify(float64(c.mem.PauseNs[i]))
		}
		i = 0
	}
	for ; i < j; i++ {
		_ = c.pauses.Notify(float64(c.mem.PauseNs[i]))
	}
}
