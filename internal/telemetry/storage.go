package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/tixcli/tix/internal/storage"
)

const storageScopeName = "github.com/tixcli/tix/storage"

// InstrumentedRepository wraps storage.Repository with OTel tracing and
// metrics. Every method gets a span and is counted in tix.storage.* metrics.
type InstrumentedRepository struct {
	inner       storage.Repository
	tracer      trace.Tracer
	ops         metric.Int64Counter
	dur         metric.Float64Histogram
	errs        metric.Int64Counter
	ticketGauge metric.Int64Gauge
}

// WrapRepository returns r decorated with OTel instrumentation.
// When telemetry is disabled, r is returned as-is.
func WrapRepository(r storage.Repository) storage.Repository {
	if !Enabled() {
		return r
	}
	return newInstrumentedRepository(r)
}

func newInstrumentedRepository(r storage.Repository) *InstrumentedRepository {
	m := Meter(storageScopeName)
	ops, _ := m.Int64Counter("tix.storage.operations",
		metric.WithDescription("Total storage operations executed"),
	)
	dur, _ := m.Float64Histogram("tix.storage.operation.duration",
		metric.WithDescription("Storage operation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	errs, _ := m.Int64Counter("tix.storage.errors",
		metric.WithDescription("Total storage operation errors"),
	)
	ticketGauge, _ := m.Int64Gauge("tix.ticket.count",
		metric.WithDescription("Number of tickets in the store after load or save"),
	)
	return &InstrumentedRepository{
		inner:       r,
		tracer:      Tracer(storageScopeName),
		ops:         ops,
		dur:         dur,
		errs:        errs,
		ticketGauge: ticketGauge,
	}
}

// op starts a span and records a metric for the named storage operation.
func (r *InstrumentedRepository) op(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span, time.Time) {
	all := append([]attribute.KeyValue{
		attribute.String("storage.operation", name),
		attribute.String("storage.path", r.inner.Path()),
	}, attrs...)
	ctx, span := r.tracer.Start(ctx, "storage."+name, trace.WithAttributes(all...))
	r.ops.Add(ctx, 1, metric.WithAttributes(all[0]))
	return ctx, span, time.Now()
}

// done ends the span, records duration and optional error.
func (r *InstrumentedRepository) done(ctx context.Context, span trace.Span, start time.Time, name string, err error) {
	attrs := metric.WithAttributes(attribute.String("storage.operation", name))
	r.dur.Record(ctx, float64(time.Since(start).Microseconds())/1000, attrs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.errs.Add(ctx, 1, attrs)
	}
	span.End()
}

// Path returns the wrapped repository's path.
func (r *InstrumentedRepository) Path() string {
	return r.inner.Path()
}

// Lock traces lock acquisition. Hold time is not traced.
func (r *InstrumentedRepository) Lock(ctx context.Context, exclusive bool) (func() error, error) {
	ctx, span, start := r.op(ctx, "lock", attribute.Bool("lock.exclusive", exclusive))
	unlock, err := r.inner.Lock(ctx, exclusive)
	r.done(ctx, span, start, "lock", err)
	return unlock, err
}

// Load traces a full store read.
func (r *InstrumentedRepository) Load(ctx context.Context) (*storage.Store, error) {
	ctx, span, start := r.op(ctx, "load")
	s, err := r.inner.Load(ctx)
	if err == nil {
		span.SetAttributes(attribute.Int("ticket.count", s.Len()))
		r.ticketGauge.Record(ctx, int64(s.Len()))
	}
	r.done(ctx, span, start, "load", err)
	return s, err
}

// Save traces a full store write.
func (r *InstrumentedRepository) Save(ctx context.Context, s *storage.Store) error {
	ctx, span, start := r.op(ctx, "save", attribute.Int("ticket.count", s.Len()))
	err := r.inner.Save(ctx, s)
	if err == nil {
		r.ticketGauge.Record(ctx, int64(s.Len()))
	}
	r.done(ctx, span, start, "save", err)
	return err
}
