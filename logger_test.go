package metrics

import (
	"testing"

	"go.uber.org/zap"

	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Printf(format string, v ...interface{}) {
	r.lines = append(r.lines, format)
}

func TestDefaultLoggerImplementsLogger(t *testing.T) {
	var l Logger = DefaultLogger()
	require.NotPanics(t, func() { l.Printf("hello %s", "world") })
}

func TestNewZapLoggerFromAdaptsPrintf(t *testing.T) {
	zl := zap.NewNop()
	var l Logger = NewZapLoggerFrom(zl)
	require.NotPanics(t, func() { l.Printf("count=%d", 3) })
}

func TestRecordingLoggerSatisfiesInterface(t *testing.T) {
	var l Logger = &recordingLogger{}
	l.Printf("x=%d", 1)
	require.Equal(t, []string{"x=%d"}, l.(*recordingLogger).lines)
}
