package metrics

import (
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

// uniformReservoir implements Vitter's Algorithm R, generalized from the
// teacher's instruments.go Reservoir.Update/Snapshot to weight-1 samples.
type uniformReservoir struct {
	mu     sync.Mutex
	values []float64
	count  int64
	rng    *rand.Rand
}

// newUniformReservoir builds a reservoir of the given capacity. The RNG is
// seeded from clk plus a process-unique google/uuid draw (spec.md §9).
func newUniformReservoir(size int64, clk Clock) *uniformReservoir {
	seed := int64(clk.Now()*1e9) ^ int64(uuid.New().ID())
	return &uniformReservoir{
		values: make([]float64, 0, size),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (r *uniformReservoir) Add(v float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.count++
	if int(r.count) <= cap(r.values) {
		r.values = append(r.values, v)
		return
	}
	if j := r.rng.Int63n(r.count); int(j) < cap(r.values) {
		r.values[j] = v
	}
}

func (r *uniformReservoir) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

func (r *uniformReservoir) Count() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

func (r *uniformReservoir) Snapshot() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Sample, len(r.values))
	for i, v := range r.values {
		out[i] = Sample{Value: v, Weight: 1}
	}
	return out
}
