package metrics

import (
	"math"
	"sync"
	"sync/atomic"
)

// tickInterval is the fixed EWMA tick interval T (spec.md §3/§4.C).
const tickInterval = 5.0

// EWMA is an exponentially weighted moving average rate estimator clocked
// at a fixed tick interval, grounded on other_examples'
// wyf-ACCEPT-eth2030 pkg/metrics/ewma.go.
type EWMA struct {
	alpha     float64
	uncounted int64 // atomic

	mu          sync.Mutex
	rate        float64
	initialized bool
}

// newEWMA builds an EWMA unit for the given window (seconds), deriving
// alpha = 1 - exp(-T/W) per spec.md §3.
func newEWMA(window float64) *EWMA {
	return &EWMA{alpha: 1 - math.Exp(-tickInterval/window)}
}

// NewEWMA1 returns the standard one-minute EWMA.
func NewEWMA1() *EWMA { return newEWMA(60) }

// NewEWMA5 returns the standard five-minute EWMA.
func NewEWMA5() *EWMA { return newEWMA(300) }

// NewEWMA15 returns the standard fifteen-minute EWMA.
func NewEWMA15() *EWMA { return newEWMA(900) }

// NewEWMADay returns the standard one-day EWMA.
func NewEWMADay() *EWMA { return newEWMA(86400) }

// Update adds n to the uncounted total; no time bookkeeping happens here.
func (e *EWMA) Update(n int64) {
	atomic.AddInt64(&e.uncounted, n)
}

// Tick must be called exactly once per elapsed tick interval. It folds the
// pending uncounted total into the rate estimate.
func (e *EWMA) Tick() {
	count := atomic.SwapInt64(&e.uncounted, 0)
	instant := float64(count) / tickInterval

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		e.rate += e.alpha * (instant - e.rate)
	} else {
		e.rate = instant
		e.initialized = true
	}
}

// Rate returns the current rate in events per second.
func (e *EWMA) Rate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rate
}
