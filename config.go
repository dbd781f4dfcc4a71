package metrics

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var configValidator = validator.New()

// ReservoirConfig is a tagged union describing how to build a Reservoir,
// grounded on xraph-go-utils/val's validation-error aggregation approach
// but using go-playground/validator struct tags directly since the union
// here is small and flat (spec.md §9 "dynamic kwargs to new_histogram").
type ReservoirConfig struct {
	Kind ReservoirKind

	// Size applies to Uniform, SlidingCount and ExpDecaying.
	Size int64 `validate:"required_unless=Kind sliding_time,omitempty,gt=0"`
	// WindowSeconds applies to SlidingTime.
	WindowSeconds float64 `validate:"required_if=Kind sliding_time,omitempty,gt=0"`
	// Alpha applies to ExpDecaying.
	Alpha float64 `validate:"omitempty,gt=0"`
	// RescaleSeconds applies to ExpDecaying.
	RescaleSeconds float64 `validate:"omitempty,gt=0"`
}

// DefaultUniformConfig returns the default Uniform reservoir configuration.
func DefaultUniformConfig() ReservoirConfig {
	return ReservoirConfig{Kind: ReservoirUniform, Size: defaultReservoirSize}
}

// DefaultSlidingCountConfig returns the default SlidingCount reservoir configuration.
func DefaultSlidingCountConfig() ReservoirConfig {
	return ReservoirConfig{Kind: ReservoirSlidingCount, Size: defaultReservoirSize}
}

// DefaultSlidingTimeConfig returns the default SlidingTime reservoir configuration (60s window).
func DefaultSlidingTimeConfig() ReservoirConfig {
	return ReservoirConfig{Kind: ReservoirSlidingTime, WindowSeconds: 60}
}

// DefaultExpDecayingConfig returns the default ExpDecaying reservoir configuration.
func DefaultExpDecayingConfig() ReservoirConfig {
	return ReservoirConfig{
		Kind:           ReservoirExpDecaying,
		Size:           defaultReservoirSize,
		Alpha:          0.015,
		RescaleSeconds: 3600,
	}
}

// withDefaults fills in the kind-appropriate zero-value fields (the ones an
// omitted opts map would leave unset), so an empty ReservoirConfig{Kind: k}
// normalizes to the same struct a Default*Config() call would produce
// before validation and idempotency comparison ever see it.
func (c ReservoirConfig) withDefaults() ReservoirConfig {
	switch c.Kind {
	case ReservoirUniform, ReservoirSlidingCount, ReservoirExpDecaying:
		if c.Size == 0 {
			c.Size = defaultReservoirSize
		}
	}
	if c.Kind == ReservoirSlidingTime && c.WindowSeconds == 0 {
		c.WindowSeconds = 60
	}
	if c.Kind == ReservoirExpDecaying {
		if c.Alpha == 0 {
			c.Alpha = 0.015
		}
		if c.RescaleSeconds == 0 {
			c.RescaleSeconds = 3600
		}
	}
	return c
}

// validate checks the configuration, returning InvalidConfigError on
// failure (negative window, non-positive size/alpha — spec.md §7).
func (c ReservoirConfig) validate() error {
	switch c.Kind {
	case ReservoirUniform, ReservoirSlidingCount, ReservoirExpDecaying, ReservoirSlidingTime:
	default:
		return NewInvalidMetricError(fmt.Sprintf("reservoir kind %q", c.Kind))
	}
	if err := configValidator.Struct(c); err != nil {
		return NewInvalidConfigError(err)
	}
	return nil
}

// build constructs the Reservoir described by c, using clk as its time
// source. Defaults are applied before validation, so an under-specified
// config (e.g. ReservoirConfig{Kind: ReservoirUniform}) is valid.
func (c ReservoirConfig) build(clk Clock) (Reservoir, error) {
	c = c.withDefaults()
	if err := c.validate(); err != nil {
		return nil, err
	}
	switch c.Kind {
	case ReservoirUniform:
		return newUniformReservoir(c.Size, clk), nil
	case ReservoirSlidingCount:
		return newSlidingCountReservoir(c.Size), nil
	case ReservoirSlidingTime:
		return newSlidingTimeReservoir(c.WindowSeconds, clk), nil
	case ReservoirExpDecaying:
		return newExpDecayingReservoir(c.Size, c.Alpha, c.RescaleSeconds, clk), nil
	}
	return nil, NewInvalidMetricError(string(c.Kind))
}

// equal reports whether two configs describe the same reservoir, used by
// the registry to decide whether new_histogram is idempotent or a
// DuplicateMetricError (spec.md §4.G).
func (c ReservoirConfig) equal(o ReservoirConfig) bool {
	return c == o
}
