package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const storageScopeName = "github.com/tkt-dev/tk/storage"

// Op is an in-flight instrumented storage operation. Every load and save of
// the ticket file gets a span and is counted in tk.storage.* metrics.
type Op struct {
	span  trace.Span
	start time.Time
	attrs []attribute.KeyValue
	dur   metric.Float64Histogram
	errs  metric.Int64Counter
}

// StartOp starts a span named "storage.<name>" and counts the operation.
// With telemetry disabled the global providers are no-ops.
func StartOp(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, *Op) {
	m := Meter(storageScopeName)
	ops, _ := m.Int64Counter("tk.storage.operations",
		metric.WithDescription("Total storage operations executed"),
	)
	dur, _ := m.Float64Histogram("tk.storage.operation.duration",
		metric.WithDescription("Storage operation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	errs, _ := m.Int64Counter("tk.storage.errors",
		metric.WithDescription("Total storage operation errors"),
	)

	all := append([]attribute.KeyValue{attribute.String("db.operation", name)}, attrs...)
	ctx, span := Tracer(storageScopeName).Start(ctx, "storage."+name,
		trace.WithAttributes(all...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	ops.Add(ctx, 1, metric.WithAttributes(all...))
	return ctx, &Op{span: span, start: time.Now(), attrs: all, dur: dur, errs: errs}
}

// SetAttributes adds attributes known only after the operation ran.
func (o *Op) SetAttributes(attrs ...attribute.KeyValue) {
	o.span.SetAttributes(attrs...)
}

// End records duration and the optional error, then ends the span.
func (o *Op) End(ctx context.Context, err error) {
	ms := float64(time.Since(o.start).Microseconds()) / 1000
	o.dur.Record(ctx, ms, metric.WithAttributes(o.attrs...))
	if err != nil {
		o.span.RecordError(err)
		o.span.SetStatus(codes.Error, err.Error())
		o.errs.Add(ctx, 1, metric.WithAttributes(o.attrs...))
	}
	o.span.End()
}
