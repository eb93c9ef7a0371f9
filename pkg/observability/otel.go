package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/matzehuels/chartkit"

// OTelHooks implements every hook interface on OpenTelemetry. Completed
// stages become spans back-dated by their duration; durations, counts and
// cache results are recorded as metrics.
type OTelHooks struct {
	tracer trace.Tracer

	stageDuration metric.Float64Histogram
	artifactSize  metric.Int64Histogram
	cacheLookups  metric.Int64Counter
	cacheWrites   metric.Int64Counter
	httpRequests  metric.Int64Counter
	httpDuration  metric.Float64Histogram
}

// NewOTelHooks creates the instruments on the given providers.
func NewOTelHooks(tp trace.TracerProvider, mp metric.MeterProvider) (*OTelHooks, error) {
	meter := mp.Meter(instrumentationName)
	h := &OTelHooks{tracer: tp.Tracer(instrumentationName)}

	var err error
	if h.stageDuration, err = meter.Float64Histogram("chartkit.stage.duration",
		metric.WithDescription("Layout and render stage duration"), metric.WithUnit("ms")); err != nil {
		return nil, fmt.Errorf("create stage histogram: %w", err)
	}
	if h.artifactSize, err = meter.Int64Histogram("chartkit.artifact.size",
		metric.WithDescription("Rendered artifact size"), metric.WithUnit("By")); err != nil {
		return nil, fmt.Errorf("create artifact histogram: %w", err)
	}
	if h.cacheLookups, err = meter.Int64Counter("chartkit.cache.lookups",
		metric.WithDescription("Cache lookups by result"), metric.WithUnit("1")); err != nil {
		return nil, fmt.Errorf("create cache counter: %w", err)
	}
	if h.cacheWrites, err = meter.Int64Counter("chartkit.cache.writes",
		metric.WithDescription("Cache writes"), metric.WithUnit("1")); err != nil {
		return nil, fmt.Errorf("create cache write counter: %w", err)
	}
	if h.httpRequests, err = meter.Int64Counter("chartkit.http.requests",
		metric.WithDescription("HTTP requests by route and status"), metric.WithUnit("1")); err != nil {
		return nil, fmt.Errorf("create http counter: %w", err)
	}
	if h.httpDuration, err = meter.Float64Histogram("chartkit.http.duration",
		metric.WithDescription("HTTP request duration"), metric.WithUnit("ms")); err != nil {
		return nil, fmt.Errorf("create http histogram: %w", err)
	}
	return h, nil
}

// span records a finished stage as a span that started duration ago.
func (h *OTelHooks) span(ctx context.Context, name string, duration time.Duration, err error, attrs ...attribute.KeyValue) {
	end := time.Now()
	_, s := h.tracer.Start(ctx, name, trace.WithTimestamp(end.Add(-duration)), trace.WithAttributes(attrs...))
	if err != nil {
		s.RecordError(err)
		s.SetStatus(codes.Error, err.Error())
	} else {
		s.SetStatus(codes.Ok, "")
	}
	s.End(trace.WithTimestamp(end))
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

func (h *OTelHooks) OnLayoutStart(ctx context.Context, kind string, items int) {
	trace.SpanFromContext(ctx).AddEvent("layout.start", trace.WithAttributes(
		attribute.String("chart.kind", kind), attribute.Int("chart.items", items)))
}

func (h *OTelHooks) OnLayoutComplete(ctx context.Context, kind string, shapes int, duration time.Duration, err error) {
	h.span(ctx, "chartkit.layout", duration, err,
		attribute.String("chart.kind", kind), attribute.Int("scene.shapes", shapes))
	h.stageDuration.Record(ctx, ms(duration), metric.WithAttributes(
		attribute.String("stage", "layout"), attribute.String("chart.kind", kind), attribute.Bool("error", err != nil)))
}

func (h *OTelHooks) OnRenderStart(ctx context.Context, kind, format string) {
	trace.SpanFromContext(ctx).AddEvent("render.start", trace.WithAttributes(
		attribute.String("chart.kind", kind), attribute.String("render.format", format)))
}

func (h *OTelHooks) OnRenderComplete(ctx context.Context, kind, format string, size int, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{attribute.String("chart.kind", kind), attribute.String("render.format", format)}
	h.span(ctx, "chartkit.render", duration, err, append(attrs, attribute.Int("render.bytes", size))...)
	h.stageDuration.Record(ctx, ms(duration), metric.WithAttributes(
		append(attrs, attribute.String("stage", "render"), attribute.Bool("error", err != nil))...))
	if err == nil {
		h.artifactSize.Record(ctx, int64(size), metric.WithAttributes(attrs...))
	}
}

func (h *OTelHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.cacheLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("cache.key_type", keyType), attribute.String("cache.result", "hit")))
}

func (h *OTelHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.cacheLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("cache.key_type", keyType), attribute.String("cache.result", "miss")))
}

func (h *OTelHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.cacheWrites.Add(ctx, 1, metric.WithAttributes(attribute.String("cache.key_type", keyType)))
}

func (h *OTelHooks) OnRequest(ctx context.Context, method, route string) {
	trace.SpanFromContext(ctx).AddEvent("http.request", trace.WithAttributes(
		attribute.String("http.method", method), attribute.String("http.route", route)))
}

func (h *OTelHooks) OnResponse(ctx context.Context, method, route string, status int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("http.method", method), attribute.String("http.route", route), attribute.Int("http.status_code", status))
	h.httpRequests.Add(ctx, 1, attrs)
	h.httpDuration.Record(ctx, ms(duration), attrs)
}

var (
	_ PipelineHooks = (*OTelHooks)(nil)
	_ CacheHooks    = (*OTelHooks)(nil)
	_ HTTPHooks     = (*OTelHooks)(nil)
)
