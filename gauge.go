package metrics

import (
	"encoding/json"
	"sync"
)

// GaugeValueKind discriminates which field of a GaugeValue is populated.
type GaugeValueKind int

const (
	GaugeNull GaugeValueKind = iota
	GaugeInt
	GaugeFloat
	GaugeString
	GaugeBool
)

// GaugeValue is a tagged union over the dynamically-typed values a Gauge can
// hold, per spec.md §9 ("model the Gauge value as a tagged variant of
// {int64, double, string, bool, null}").
type GaugeValue struct {
	Kind GaugeValueKind
	Int  int64
	Flt  float64
	Str  string
	Bl   bool
}

// IntGauge wraps an int64 as a GaugeValue.
func IntGauge(v int64) GaugeValue { return GaugeValue{Kind: GaugeInt, Int: v} }

// FloatGauge wraps a float64 as a GaugeValue.
func FloatGauge(v float64) GaugeValue { return GaugeValue{Kind: GaugeFloat, Flt: v} }

// StringGauge wraps a string as a GaugeValue.
func StringGauge(v string) GaugeValue { return GaugeValue{Kind: GaugeString, Str: v} }

// BoolGauge wraps a bool as a GaugeValue.
func BoolGauge(v bool) GaugeValue { return GaugeValue{Kind: GaugeBool, Bl: v} }

// Raw returns the Go value the tag selects (nil for GaugeNull).
func (v GaugeValue) Raw() interface{} {
	switch v.Kind {
	case GaugeInt:
		return v.Int
	case GaugeFloat:
		return v.Flt
	case GaugeString:
		return v.Str
	case GaugeBool:
		return v.Bl
	default:
		return nil
	}
}

// MarshalJSON follows the tag, so the summary document stays JSON-safe
// per spec.md §6/§9.
func (v GaugeValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Raw())
}

// coerceGaugeValue accepts the handful of Go types a Gauge.Notify caller is
// expected to pass; anything else is an InputTypeError.
func coerceGaugeValue(name string, v interface{}) (GaugeValue, error) {
	switch x := v.(type) {
	case GaugeValue:
		return x, nil
	case nil:
		return GaugeValue{Kind: GaugeNull}, nil
	case bool:
		return BoolGauge(x), nil
	case string:
		return StringGauge(x), nil
	case int:
		return IntGauge(int64(x)), nil
	case int64:
		return IntGauge(x), nil
	case int32:
		return IntGauge(int64(x)), nil
	case float64:
		return FloatGauge(x), nil
	case float32:
		return FloatGauge(float64(x)), nil
	default:
		return GaugeValue{}, NewInputTypeError(name, v)
	}
}

// Gauge tracks a single, last-writer-wins value of dynamic type.
type Gauge struct {
	name string
	mu   sync.Mutex
	val  GaugeValue
}

// newGauge creates an empty Gauge (spec.md §3 lifecycle).
func newGauge(name string) *Gauge {
	return &Gauge{name: name}
}

// Notify replaces the stored value. v must be one of GaugeValue's
// supported Go types, or InputTypeError is returned and the gauge is left
// untouched (spec.md §7 "notify... MUST NOT mutate the instrument").
func (g *Gauge) Notify(v interface{}) error {
	cv, err := coerceGaugeValue(g.name, v)
	if err != nil {
		return err
	}
	g.mu.Lock()
	g.val = cv
	g.mu.Unlock()
	return nil
}

// Get returns {kind: "gauge", value}.
func (g *Gauge) Get() map[string]interface{} {
	g.mu.Lock()
	v := g.val
	g.mu.Unlock()
	return map[string]interface{}{
		"kind":  "gauge",
		"value": v.Raw(),
	}
}

// Raw returns the underlying GaugeValue.
func (g *Gauge) Raw() GaugeValue {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.val
}
