package metrics

// Sample is a single observation held by a Reservoir, with its associated
// weight. Uniform/SlidingCount/SlidingTime always report weight 1;
// ExpDecaying reports its forward-decay priority as the weight so the
// statistics kernel can honor it (spec.md §4.B).
type Sample struct {
	Value  float64
	Weight float64
}

// Reservoir holds a bounded multiset of observations sampled from an
// unbounded stream. Implementations are internally synchronized; add is
// O(1) amortized and snapshot returns a read-only copy (spec.md §4.B).
type Reservoir interface {
	// Add inserts a new observation at the current clock time.
	Add(v float64)
	// Size returns the number of observations currently held.
	Size() int
	// Count returns the total number of Add calls ever made, monotonic.
	Count() int64
	// Snapshot returns the current sample as an ordered slice of (value, weight) pairs.
	Snapshot() []Sample
}

const defaultReservoirSize = 1028

// ReservoirKind enumerates the valid reservoir disciplines (spec.md §6).
type ReservoirKind string

const (
	ReservoirUniform      ReservoirKind = "uniform"
	ReservoirSlidingCount ReservoirKind = "sliding_window"
	ReservoirSlidingTime  ReservoirKind = "sliding_time"
	ReservoirExpDecaying  ReservoirKind = "exp_decaying"
)
