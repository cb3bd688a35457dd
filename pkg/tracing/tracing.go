// Package tracing times named operations inside an export run. Spans report
// through slog rather than a tracing backend, so enabling debug logging is
// enough to see where a run spends its time.
package tracing

// Tracer starts timed spans around named operations.
type Tracer interface {
	StartSpan(operation string) Span
}

// Span is a single timed operation. Attributes attached before Finish are
// reported together with the duration.
type Span interface {
	SetAttribute(key string, value any)
	Finish()
}

var (
	_ Tracer = NopTracer{}
	_ Span   = nopSpan{}
)

// NopTracer discards every span.
type NopTracer struct{}

//nolint:ireturn
func (NopTracer) StartSpan(string) Span {
	return nopSpan{}
}

type nopSpan struct{}

func (nopSpan) SetAttribute(string, any) {}

func (nopSpan) Finish() {}
