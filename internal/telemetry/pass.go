package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const passScopeName = "github.com/reyyreyys/sync-notion-with-gtasks/reconcile"

// PassMetrics bundles the instruments recorded at pass boundaries.
// NewPassMetrics returns nil when telemetry is disabled; all methods are
// nil-safe so callers never branch on it.
type PassMetrics struct {
	tracer   trace.Tracer
	passes   metric.Int64Counter
	created  metric.Int64Counter
	updated  metric.Int64Counter
	errors   metric.Int64Counter
	duration metric.Float64Histogram
}

// NewPassMetrics creates the pass instrument bundle, or nil when telemetry
// is off.
func NewPassMetrics() *PassMetrics {
	if !Enabled() {
		return nil
	}
	m := Meter(passScopeName)
	passes, _ := m.Int64Counter("ngsync.passes",
		metric.WithDescription("Total reconciliation passes run"),
	)
	created, _ := m.Int64Counter("ngsync.records.created",
		metric.WithDescription("Records mirrored onto the other side"),
	)
	updated, _ := m.Int64Counter("ngsync.records.updated",
		metric.WithDescription("Completion and notes updates applied"),
	)
	errs, _ := m.Int64Counter("ngsync.errors",
		metric.WithDescription("Fetch and per-operation apply failures"),
	)
	dur, _ := m.Float64Histogram("ngsync.pass.duration",
		metric.WithDescription("Pass duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	return &PassMetrics{
		tracer:   Tracer(passScopeName),
		passes:   passes,
		created:  created,
		updated:  updated,
		errors:   errs,
		duration: dur,
	}
}

// RecordPass records one pass's counters and duration.
func (p *PassMetrics) RecordPass(ctx context.Context, success bool, created, updated, errors int, d time.Duration) {
	if p == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.Bool("success", success))
	p.passes.Add(ctx, 1, attrs)
	p.created.Add(ctx, int64(created))
	p.updated.Add(ctx, int64(updated))
	p.errors.Add(ctx, int64(errors))
	p.duration.Record(ctx, float64(d)/float64(time.Millisecond), attrs)
}

// StartPassSpan opens the per-pass trace span. The returned end func is
// nil-safe like everything else here.
func (p *PassMetrics) StartPassSpan(ctx context.Context) (context.Context, func()) {
	if p == nil {
		return ctx, func() {}
	}
	ctx, span := p.tracer.Start(ctx, "reconcile.pass")
	return ctx, func() { span.End() }
}
