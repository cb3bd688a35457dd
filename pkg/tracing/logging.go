package tracing

import (
	"context"
	"log/slog"
	"time"
)

var (
	_ Tracer = (*LoggingTracer)(nil)
	_ Span   = (*loggingSpan)(nil)
)

// LoggingTracer reports finished spans at debug level on the given logger.
type LoggingTracer struct {
	logger *slog.Logger
}

func NewLoggingTracer(logger *slog.Logger) *LoggingTracer {
	return &LoggingTracer{
		logger: logger,
	}
}

//nolint:ireturn
func (t *LoggingTracer) StartSpan(operation string) Span {
	return &loggingSpan{
		logger:    t.logger,
		operation: operation,
		start:     time.Now(),
	}
}

type loggingSpan struct {
	logger    *slog.Logger
	operation string
	attrs     []any
	start     time.Time
}

// SetAttribute records attributes in call order, so log lines stay stable
// across runs.
func (s *loggingSpan) SetAttribute(key string, value any) {
	s.attrs = append(s.attrs, key, value)
}

func (s *loggingSpan) Finish() {
	attrs := make([]any, 0, len(s.attrs)+4)
	attrs = append(attrs, s.attrs...)
	attrs = append(attrs, "operation", s.operation, "duration_ms", time.Since(s.start).Seconds()*1e3)

	s.logger.Log(context.Background(), slog.LevelDebug, "trace", attrs...)
}
