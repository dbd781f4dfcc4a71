package metrics

import (
	"log"
	"os"

	"go.uber.org/zap"
)

// Logger follows the teacher's narrow Printf-style contract so callers can
// plug in anything (the stdlib logger, zap, logrus...) without this package
// importing a specific logging stack at the API boundary.
type Logger interface {
	Printf(format string, v ...interface{})
}

// stdLogger adapts the standard library's *log.Logger to Logger.
type stdLogger struct{ l *log.Logger }

func (s stdLogger) Printf(format string, v ...interface{}) { s.l.Printf(format, v...) }

// DefaultLogger writes to stderr via the standard library, matching the
// teacher's Registry default (log.New(os.Stderr, "instruments: ", log.LstdFlags)).
func DefaultLogger() Logger {
	return stdLogger{l: log.New(os.Stderr, "metrics: ", log.LstdFlags)}
}

// zapLogger adapts a *zap.SugaredLogger to Logger, grounded on
// xraph-go-utils/log's zap-backed structured logger.
type zapLogger struct{ s *zap.SugaredLogger }

func (z zapLogger) Printf(format string, v ...interface{}) { z.s.Infof(format, v...) }

// NewZapLogger builds a Logger backed by a production zap.Logger.
func NewZapLogger() (Logger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return zapLogger{s: l.Sugar()}, nil
}

// NewZapLoggerFrom adapts an already-constructed *zap.Logger.
func NewZapLoggerFrom(l *zap.Logger) Logger {
	return zapLogger{s: l.Sugar()}
}
