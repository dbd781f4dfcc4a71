package metrics

import "sync/atomic"

// Counter is an atomic accumulator, adapted nearly verbatim from the
// teacher's instruments.go Counter.
type Counter struct {
	name  string
	count int64
}

// newCounter creates a new, empty Counter.
func newCounter(name string) *Counter {
	return &Counter{name: name}
}

// coerceInt64 accepts the Go numeric types notify() is expected to see.
func coerceInt64(name string, v interface{}) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case float64:
		return int64(x), nil
	case float32:
		return int64(x), nil
	default:
		return 0, NewInputTypeError(name, v)
	}
}

// Notify coerces n to int64 and adds it to the counter. Negative values are
// supported (spec.md §4.F). A coercion failure leaves the counter untouched.
func (c *Counter) Notify(n interface{}) error {
	v, err := coerceInt64(c.name, n)
	if err != nil {
		return err
	}
	atomic.AddInt64(&c.count, v)
	return nil
}

// Get returns {kind: "counter", value}.
func (c *Counter) Get() map[string]interface{} {
	return map[string]interface{}{
		"kind":  "counter",
		"value": atomic.LoadInt64(&c.count),
	}
}

// Raw returns the current count.
func (c *Counter) Raw() int64 {
	return atomic.LoadInt64(&c.count)
}
