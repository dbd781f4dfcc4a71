package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimeFuncRecordsElapsedTime(t *testing.T) {
	clk := NewFakeClock(0)
	h, err := newHistogram("work", DefaultUniformConfig(), clk)
	require.NoError(t, err)

	TimeFunc(h, func() {
		clk.Advance(2.5)
	})

	require.Equal(t, []float64{2.5}, h.Raw())
}

func TestCountFuncMarksOneEventOnSuccess(t *testing.T) {
	m := newMeter("calls", NewFakeClock(0))
	err := CountFunc(m, func() error { return nil })
	require.NoError(t, err)
	require.EqualValues(t, 1, m.Raw())
}

func TestCountFuncSkipsEventOnError(t *testing.T) {
	m := newMeter("calls", NewFakeClock(0))
	want := errors.New("boom")
	err := CountFunc(m, func() error { return want })
	require.Equal(t, want, err)
	require.EqualValues(t, 0, m.Raw())
}
