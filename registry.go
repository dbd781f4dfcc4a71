package metrics

import (
	"sort"
	"sync"
)

// InstrumentKind discriminates the four instrument variants (spec.md §3).
type InstrumentKind string

const (
	KindCounter   InstrumentKind = "counter"
	KindGauge     InstrumentKind = "gauge"
	KindHistogram InstrumentKind = "histogram"
	KindMeter     InstrumentKind = "meter"
)

// METRIC_TYPES enumerates the valid instrument kinds (spec.md §6).
var METRIC_TYPES = []InstrumentKind{KindCounter, KindGauge, KindHistogram, KindMeter} //nolint:revive,stylecheck

// Instrument is the polymorphic contract every registry entry satisfies
// (spec.md §3): Notify ingests an observation, Get returns a computed
// summary.
type Instrument interface {
	Notify(v interface{}) error
	Get() map[string]interface{}
}

// entry pairs an Instrument with the kind/opts it was created with, so the
// registry can decide idempotency vs. DuplicateMetricError (spec.md §4.G).
type entry struct {
	kind      InstrumentKind
	reservoir ReservoirConfig // only meaningful for histograms
	inst      Instrument
}

// Registry is a concurrency-safe, named instrument store with a tag index,
// grounded on the teacher's registry.go (single sync.RWMutex, map of
// instruments, Logger field) and reporter/registry.go (MetricID-style
// addressing), generalized to the spec's explicit tag index and idempotent
// New (spec.md §4.G).
type Registry struct {
	Logger Logger
	Clock  Clock

	mu          sync.RWMutex
	instruments map[string]*entry
	tags        map[string]map[string]struct{}
}

// NewRegistry creates a private Registry, isolated from the package-level
// DefaultRegistry (spec.md §9).
func NewRegistry() *Registry {
	return &Registry{
		Logger:      DefaultLogger(),
		Clock:       DefaultClock,
		instruments: make(map[string]*entry),
		tags:        make(map[string]map[string]struct{}),
	}
}

// DefaultRegistry is the single, eagerly-initialized process-wide registry
// (spec.md §9), grounded on the teacher's reporter/registry.go DefaultRegistry.
var DefaultRegistry = NewRegistry()

// NewCounter creates or fetches a Counter named name on the registry.
func (r *Registry) NewCounter(name string) (*Counter, error) {
	inst, err := r.newInstrument(name, KindCounter, ReservoirConfig{}, func() (Instrument, error) {
		return newCounter(name), nil
	})
	if err != nil {
		return nil, err
	}
	return inst.(*Counter), nil
}

// NewGauge creates or fetches a Gauge named name on the registry.
func (r *Registry) NewGauge(name string) (*Gauge, error) {
	inst, err := r.newInstrument(name, KindGauge, ReservoirConfig{}, func() (Instrument, error) {
		return newGauge(name), nil
	})
	if err != nil {
		return nil, err
	}
	return inst.(*Gauge), nil
}

// NewMeter creates or fetches a Meter named name on the registry.
func (r *Registry) NewMeter(name string) (*Meter, error) {
	inst, err := r.newInstrument(name, KindMeter, ReservoirConfig{}, func() (Instrument, error) {
		return newMeter(name, r.Clock), nil
	})
	if err != nil {
		return nil, err
	}
	return inst.(*Meter), nil
}

// NewHistogram creates or fetches a Histogram named name, backed by the
// reservoir discipline cfg describes. cfg.Kind defaults to Uniform when empty.
func (r *Registry) NewHistogram(name string, cfg ReservoirConfig) (*Histogram, error) {
	if cfg.Kind == "" {
		cfg.Kind = ReservoirUniform
	}
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	inst, err := r.newInstrument(name, KindHistogram, cfg, func() (Instrument, error) {
		return newHistogram(name, cfg, r.Clock)
	})
	if err != nil {
		return nil, err
	}
	return inst.(*Histogram), nil
}

// newInstrument implements spec.md §4.G's New: under lock, an existing
// entry with the same kind and opts is returned unchanged (idempotent); an
// existing entry with a different kind/opts raises DuplicateMetricError;
// otherwise factory builds and inserts a new instrument.
func (r *Registry) newInstrument(name string, kind InstrumentKind, cfg ReservoirConfig, factory func() (Instrument, error)) (Instrument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.instruments[name]; ok {
		if e.kind == kind && e.reservoir.equal(cfg) {
			return e.inst, nil
		}
		return nil, NewDuplicateMetricError(name)
	}

	inst, err := factory()
	if err != nil {
		return nil, err
	}
	r.instruments[name] = &entry{kind: kind, reservoir: cfg, inst: inst}
	return inst, nil
}

// Metric returns the named instrument, or InvalidMetricError.
func (r *Registry) Metric(name string) (Instrument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.instruments[name]
	if !ok {
		return nil, NewInvalidMetricError(name)
	}
	return e.inst, nil
}

// Delete removes the named instrument and detaches it from every tag;
// tags that become empty are removed (spec.md §4.G).
func (r *Registry) Delete(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.instruments, name)
	for tag, names := range r.tags {
		delete(names, name)
		if len(names) == 0 {
			delete(r.tags, tag)
		}
	}
}

// Tag requires name to exist, then inserts it into tags[tag].
func (r *Registry) Tag(name, tag string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.instruments[name]; !ok {
		return NewInvalidMetricError(name)
	}
	names, ok := r.tags[tag]
	if !ok {
		names = make(map[string]struct{})
		r.tags[tag] = names
	}
	names[name] = struct{}{}
	return nil
}

// Untag removes name from tag's set, reporting whether a removal happened,
// and drops the tag entirely if it becomes empty.
func (r *Registry) Untag(name, tag string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	names, ok := r.tags[tag]
	if !ok {
		return false
	}
	if _, present := names[name]; !present {
		return false
	}
	delete(names, name)
	if len(names) == 0 {
		delete(r.tags, tag)
	}
	return true
}

// Tags returns a snapshot of tag -> sorted names.
func (r *Registry) Tags() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]string, len(r.tags))
	for tag, names := range r.tags {
		list := make([]string, 0, len(names))
		for n := range names {
			list = append(list, n)
		}
		sort.Strings(list)
		out[tag] = list
	}
	return out
}

// ByTag calls Get() on every instrument currently in tag and returns
// {name: summary}. An absent tag yields an empty map. The registry lock is
// held only while copying the name set; each Get() then runs outside that
// lock, under the instrument's own synchronization (spec.md §4.G/§5).
func (r *Registry) ByTag(tag string) map[string]map[string]interface{} {
	r.mu.RLock()
	names := r.tags[tag]
	instruments := make(map[string]Instrument, len(names))
	for n := range names {
		if e, ok := r.instruments[n]; ok {
			instruments[n] = e.inst
		}
	}
	r.mu.RUnlock()

	out := make(map[string]map[string]interface{}, len(instruments))
	for name, inst := range instruments {
		out[name] = inst.Get()
	}
	return out
}

// List returns a sorted slice of every registered metric name.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.instruments))
	for name := range r.instruments {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Size returns the number of registered instruments.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.instruments)
}
