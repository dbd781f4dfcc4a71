package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReservoirConfigValidateRejectsUnknownKind(t *testing.T) {
	cfg := ReservoirConfig{Kind: "bogus"}
	err := cfg.validate()
	require.Error(t, err)
}

func TestReservoirConfigValidateRejectsNonPositiveSize(t *testing.T) {
	cfg := ReservoirConfig{Kind: ReservoirUniform, Size: 0}
	err := cfg.validate()
	require.Error(t, err)

	var mErr *Error
	require.ErrorAs(t, err, &mErr)
	require.Equal(t, KindInvalidConfig, mErr.Kind)
}

func TestReservoirConfigValidateRequiresWindowForSlidingTime(t *testing.T) {
	cfg := ReservoirConfig{Kind: ReservoirSlidingTime}
	err := cfg.validate()
	require.Error(t, err)
}

func TestReservoirConfigBuildAppliesDefaults(t *testing.T) {
	r, err := (ReservoirConfig{Kind: ReservoirUniform}).build(NewFakeClock(0))
	require.NoError(t, err)
	require.IsType(t, &uniformReservoir{}, r)
}

func TestReservoirConfigEqualityDrivesIdempotency(t *testing.T) {
	a := DefaultUniformConfig()
	b := DefaultUniformConfig()
	require.True(t, a.equal(b))

	c := DefaultSlidingCountConfig()
	require.False(t, a.equal(c))
}
