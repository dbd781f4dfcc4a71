package metrics

import "fmt"

// Kind discriminates the handful of error conditions the core can raise.
type Kind string

const (
	// KindInputType marks a notify() argument that cannot be coerced to the
	// instrument's expected numeric type.
	KindInputType Kind = "input_type"
	// KindInvalidMetric marks a reference to an unknown metric name, or an
	// unknown reservoir/instrument kind.
	KindInvalidMetric Kind = "invalid_metric"
	// KindDuplicateMetric marks new_* called for a name that already exists
	// with a different kind or different reservoir parameters.
	KindDuplicateMetric Kind = "duplicate_metric"
	// KindInvalidConfig marks an invalid reservoir size, negative window or
	// non-positive alpha.
	KindInvalidConfig Kind = "invalid_config"
)

// Error is a coded error with an HTTP status mapping, grounded on the
// xraph-go-utils errs.Error shape but trimmed to what this package needs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

// Is matches by Kind, so callers can do errors.Is(err, &metrics.Error{Kind: metrics.KindInvalidMetric}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind != "" && e.Kind == t.Kind
}

// StatusCode implements the §7 HTTP collaborator mapping:
// InvalidMetricError -> 404, DuplicateMetricError/InputTypeError/InvalidConfigError -> 400.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindInvalidMetric:
		return 404
	case KindDuplicateMetric, KindInputType, KindInvalidConfig:
		return 400
	default:
		return 500
	}
}

// NewInputTypeError reports that v cannot be coerced for the named instrument.
func NewInputTypeError(name string, v interface{}) *Error {
	return &Error{Kind: KindInputType, Message: fmt.Sprintf("metrics: %q received a value of unsupported type %T", name, v)}
}

// NewInvalidMetricError reports an unknown metric name.
func NewInvalidMetricError(name string) *Error {
	return &Error{Kind: KindInvalidMetric, Message: fmt.Sprintf("metrics: no such metric %q", name)}
}

// NewDuplicateMetricError reports a name/kind or name/opts collision.
func NewDuplicateMetricError(name string) *Error {
	return &Error{Kind: KindDuplicateMetric, Message: fmt.Sprintf("metrics: %q already registered with a different kind or configuration", name)}
}

// NewInvalidConfigError wraps a configuration validation failure.
func NewInvalidConfigError(err error) *Error {
	return &Error{Kind: KindInvalidConfig, Message: "metrics: invalid reservoir configuration", Err: err}
}
