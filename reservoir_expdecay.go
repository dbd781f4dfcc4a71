package metrics

import (
	"container/heap"
	"math"
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

// expDecayEntry is a single stored observation keyed by its forward-decay
// priority. Grounded directly on other_examples' facebookgo/metrics
// sample.go expDecayIndividualSample/Heap.
type expDecayEntry struct {
	priority float64
	value    float64
}

type expDecayHeap []expDecayEntry

func (h expDecayHeap) Len() int            { return len(h) }
func (h expDecayHeap) Less(i, j int) bool  { return h[i].priority < h[j].priority }
func (h expDecayHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *expDecayHeap) Push(x interface{}) { *h = append(*h, x.(expDecayEntry)) }
func (h *expDecayHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// expDecayingReservoir implements forward-decay priority sampling (Cormode
// et al.), grounded on other_examples' facebookgo/metrics sample.go,
// generalized to an injected Clock and to reporting (value, priority) pairs
// as weighted samples rather than bare values.
type expDecayingReservoir struct {
	mu      sync.Mutex
	alpha   float64
	size    int
	rescale float64
	clk     Clock
	rng     *rand.Rand

	t0, nextRescale float64
	values          expDecayHeap
	count           int64
}

func newExpDecayingReservoir(size int64, alpha, rescaleSeconds float64, clk Clock) *expDecayingReservoir {
	seed := int64(clk.Now()*1e9) ^ int64(uuid.New().ID())
	t0 := clk.Now()
	return &expDecayingReservoir{
		alpha:       alpha,
		size:        int(size),
		rescale:     rescaleSeconds,
		clk:         clk,
		rng:         rand.New(rand.NewSource(seed)),
		t0:          t0,
		nextRescale: t0 + rescaleSeconds,
		values:      make(expDecayHeap, 0, size),
	}
}

func (r *expDecayingReservoir) Add(v float64) {
	now := r.clk.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.count++

	if now >= r.nextRescale {
		r.rescaleLocked(now)
	}

	u := r.rng.Float64()
	for u <= 0 {
		u = r.rng.Float64()
	}
	priority := math.Exp(r.alpha*(now-r.t0)) / u

	if len(r.values) < r.size {
		heap.Push(&r.values, expDecayEntry{priority: priority, value: v})
		return
	}
	if priority > r.values[0].priority {
		heap.Pop(&r.values)
		heap.Push(&r.values, expDecayEntry{priority: priority, value: v})
	}
}

// rescaleLocked re-bases the decay landmark, rewriting every stored
// priority relative to the new landmark (spec.md §4.B step 1). Caller
// must hold r.mu.
func (r *expDecayingReservoir) rescaleLocked(now float64) {
	oldT0 := r.t0
	r.t0 = now
	r.nextRescale = now + r.rescale

	rescaled := make(expDecayHeap, 0, len(r.values))
	for _, e := range r.values {
		e.priority *= math.Exp(-r.alpha * (r.t0 - oldT0))
		rescaled = append(rescaled, e)
	}
	heap.Init(&rescaled)
	r.values = rescaled
}

func (r *expDecayingReservoir) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

func (r *expDecayingReservoir) Count() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

func (r *expDecayingReservoir) Snapshot() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Sample, len(r.values))
	for i, e := range r.values {
		out[i] = Sample{Value: e.value, Weight: e.priority}
	}
	return out
}
