package metrics

import (
	"sync"
	"sync/atomic"
)

// Meter tracks an event count and four EWMA rate estimates (one/five/
// fifteen minute and one day), grounded on other_examples'
// mia0x75-go-metrics StandardMeter, generalized to an injected Clock and to
// the spec's catch-up-tick-on-Notify-and-on-Get policy (spec.md §4.C/§9).
type Meter struct {
	name string
	clk  Clock

	count     int64 // atomic
	startTime float64

	mu           sync.Mutex
	lastTickTime float64

	one, five, fifteen, day *EWMA
}

// newMeter builds a Meter starting at clk.Now().
func newMeter(name string, clk Clock) *Meter {
	now := clk.Now()
	return &Meter{
		name:         name,
		clk:          clk,
		startTime:    now,
		lastTickTime: now,
		one:          NewEWMA1(),
		five:         NewEWMA5(),
		fifteen:      NewEWMA15(),
		day:          NewEWMADay(),
	}
}

// Notify coerces n to int64, increments count, feeds every EWMA's
// uncounted total, then issues catch-up ticks for every whole tick
// interval elapsed since the last tick (spec.md §4.C).
func (m *Meter) Notify(n interface{}) error {
	v, err := coerceInt64(m.name, n)
	if err != nil {
		return err
	}

	atomic.AddInt64(&m.count, v)
	m.one.Update(v)
	m.five.Update(v)
	m.fifteen.Update(v)
	m.day.Update(v)

	m.catchUpTicks()
	return nil
}

// catchUpTicks issues ⌊elapsed/T⌋ ticks, advancing lastTickTime by N*T, so
// idle intervals decay the rate correctly instead of being charged to the
// next observation (spec.md §4.C).
func (m *Meter) catchUpTicks() {
	now := m.clk.Now()

	m.mu.Lock()
	elapsed := now - m.lastTickTime
	n := 0
	if elapsed >= tickInterval {
		n = int(elapsed / tickInterval)
		m.lastTickTime += float64(n) * tickInterval
	}
	m.mu.Unlock()

	for i := 0; i < n; i++ {
		m.one.Tick()
		m.five.Tick()
		m.fifteen.Tick()
		m.day.Tick()
	}
}

// Get first triggers a catch-up tick (for snapshot freshness, per spec.md
// §9's resolved Open Question), then returns the full summary.
func (m *Meter) Get() map[string]interface{} {
	m.catchUpTicks()

	count := atomic.LoadInt64(&m.count)
	elapsed := m.clk.Now() - m.startTime
	var mean float64
	if elapsed > 0 {
		mean = float64(count) / elapsed
	}

	return map[string]interface{}{
		"kind":     "meter",
		"count":    count,
		"mean":     mean,
		"one":      m.one.Rate(),
		"five":     m.five.Rate(),
		"fifteen":  m.fifteen.Rate(),
		"day":      m.day.Rate(),
	}
}

// Raw returns the raw event count.
func (m *Meter) Raw() int64 {
	return atomic.LoadInt64(&m.count)
}
