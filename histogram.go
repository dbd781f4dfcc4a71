package metrics

// Histogram wraps a Reservoir, coercing and forwarding observations and
// exposing the statistics kernel's summary. Grounded on the teacher's Timer
// (instruments.go), which already wraps a *Reservoir and coerces its input
// type before calling Update.
type Histogram struct {
	name      string
	reservoir Reservoir
	config    ReservoirConfig
	clk       Clock
}

// newHistogram builds a Histogram backed by the reservoir described by cfg.
func newHistogram(name string, cfg ReservoirConfig, clk Clock) (*Histogram, error) {
	r, err := cfg.build(clk)
	if err != nil {
		return nil, err
	}
	return &Histogram{name: name, reservoir: r, config: cfg, clk: clk}, nil
}

// Notify coerces v to float64 and inserts it into the reservoir. A
// coercion failure leaves the reservoir untouched (spec.md §7).
func (h *Histogram) Notify(v interface{}) error {
	f, err := coerceFloat64(h.name, v)
	if err != nil {
		return err
	}
	h.reservoir.Add(f)
	return nil
}

func coerceFloat64(name string, v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	default:
		return 0, NewInputTypeError(name, v)
	}
}

// Get runs the statistics kernel over the current reservoir snapshot and
// returns the full field table from spec.md §4.D as a JSON-safe mapping.
func (h *Histogram) Get() map[string]interface{} {
	return summaryToMap(computeSummary(h.reservoir.Snapshot()))
}

// Raw returns the list of currently stored values (without weights).
func (h *Histogram) Raw() []float64 {
	samples := h.reservoir.Snapshot()
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Value
	}
	return out
}

func summaryToMap(s Summary) map[string]interface{} {
	percentiles := make([]map[string]interface{}, len(s.Percentiles))
	for i, p := range s.Percentiles {
		percentiles[i] = map[string]interface{}{"p": p.P, "value": p.Value}
	}
	histogram := make([][2]float64, len(s.Histogram))
	for i, b := range s.Histogram {
		histogram[i] = [2]float64{b.UpperBound, float64(b.Count)}
	}
	return map[string]interface{}{
		"kind":               "histogram",
		"n":                  s.N,
		"min":                s.Min,
		"max":                s.Max,
		"arithmetic_mean":    s.ArithmeticMean,
		"variance":           s.Variance,
		"standard_deviation": s.StandardDeviation,
		"geometric_mean":     s.GeometricMean,
		"harmonic_mean":      s.HarmonicMean,
		"median":             s.Median,
		"percentile":         percentiles,
		"skewness":           s.Skewness,
		"kurtosis":           s.Kurtosis,
		"histogram":          histogram,
	}
}
