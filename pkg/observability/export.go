package observability

import (
	"context"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// LogExporter writes finished spans to a logger at debug level. It lets
// `chartkit serve --trace` show stage timings without a collector.
type LogExporter struct {
	logger *log.Logger
}

var _ sdktrace.SpanExporter = (*LogExporter)(nil)

// NewLogExporter returns an exporter logging to l.
func NewLogExporter(l *log.Logger) *LogExporter {
	return &LogExporter{logger: l}
}

// ExportSpans logs each span with its duration, status and attributes.
func (e *LogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		kv := []any{
			"trace_id", s.SpanContext().TraceID().String(),
			"duration", s.EndTime().Sub(s.StartTime()),
			"status", s.Status().Code.String(),
		}
		for _, a := range s.Attributes() {
			kv = append(kv, string(a.Key), a.Value.Emit())
		}
		e.logger.Debug(s.Name(), kv...)
	}
	return ctx.Err()
}

// Shutdown is a no-op.
func (e *LogExporter) Shutdown(context.Context) error { return nil }

// NewLogTracerProvider builds a tracer provider that exports synchronously
// to l. Callers own the provider and must shut it down.
func NewLogTracerProvider(ctx context.Context, l *log.Logger, service string) (*sdktrace.TracerProvider, error) {
	res, err := resource.New(ctx, resource.WithAttributes(attribute.String("service.name", service)))
	if err != nil {
		return nil, err
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(NewLogExporter(l))),
		sdktrace.WithResource(res),
	), nil
}
