package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistogramNotifyAndGet(t *testing.T) {
	h, err := newHistogram("latency", DefaultUniformConfig(), NewFakeClock(0))
	require.NoError(t, err)

	require.NoError(t, h.Notify(1.0))
	require.NoError(t, h.Notify(2))
	require.NoError(t, h.Notify(int64(3)))

	g := h.Get()
	require.Equal(t, "histogram", g["kind"])
	require.EqualValues(t, 3, g["n"])
	require.InDelta(t, 2.0, g["arithmetic_mean"], 1e-9)

	pcts, ok := g["percentile"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, pcts, len(percentiles))
}

func TestHistogramRejectsUncoercibleInput(t *testing.T) {
	h, err := newHistogram("latency", DefaultUniformConfig(), NewFakeClock(0))
	require.NoError(t, err)

	require.NoError(t, h.Notify(1.0))
	err = h.Notify("nope")
	require.Error(t, err)
	require.Equal(t, []float64{1.0}, h.Raw())
}

func TestHistogramUsesSlidingTimeWindow(t *testing.T) {
	clk := NewFakeClock(0)
	cfg := ReservoirConfig{Kind: ReservoirSlidingTime, WindowSeconds: 10}
	h, err := newHistogram("latency", cfg, clk)
	require.NoError(t, err)

	require.NoError(t, h.Notify(1.0))
	clk.Advance(20)
	require.NoError(t, h.Notify(2.0))

	require.Equal(t, []float64{2.0}, h.Raw())
}
