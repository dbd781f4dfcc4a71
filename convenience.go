package metrics

// Package-level convenience wrappers operating on DefaultRegistry, per
// spec.md §6's programmatic API and grounded on the teacher's
// reporter/registry.go DefaultRegistry package functions.

// NewCounter creates or fetches a Counter on the default registry.
func NewCounter(name string) (*Counter, error) {
	return DefaultRegistry.NewCounter(name)
}

// NewGauge creates or fetches a Gauge on the default registry.
func NewGauge(name string) (*Gauge, error) {
	return DefaultRegistry.NewGauge(name)
}

// NewMeter creates or fetches a Meter on the default registry.
func NewMeter(name string) (*Meter, error) {
	return DefaultRegistry.NewMeter(name)
}

// NewHistogram creates or fetches a Histogram on the default registry,
// defaulting to a Uniform reservoir when cfg is the zero value.
func NewHistogram(name string, cfg ReservoirConfig) (*Histogram, error) {
	return DefaultRegistry.NewHistogram(name, cfg)
}

// Metric returns the named instrument from the default registry.
func Metric(name string) (Instrument, error) {
	return DefaultRegistry.Metric(name)
}

// Delete removes the named instrument from the default registry.
func Delete(name string) {
	DefaultRegistry.Delete(name)
}

// Names returns a sorted list of every metric name in the default registry.
func Names() []string {
	return DefaultRegistry.List()
}

// Tag tags name in the default registry.
func Tag(name, tag string) error {
	return DefaultRegistry.Tag(name, tag)
}

// Untag removes name from tag in the default registry.
func Untag(name, tag string) bool {
	return DefaultRegistry.Untag(name, tag)
}

// Tags returns the default registry's tag -> names snapshot.
func Tags() map[string][]string {
	return DefaultRegistry.Tags()
}

// ByTag returns {name: summary} for every instrument tagged tag in the
// default registry.
func ByTag(tag string) map[string]map[string]interface{} {
	return DefaultRegistry.ByTag(tag)
}
