package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "panefm"

// Outcome attribute values.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Metrics holds all OTEL metric instruments for panefm.
// All counters are cumulative (monotonic). Every Record method is nil-safe.
type Metrics struct {
	// Filesystem mutations partitioned by op (move, copy, delete, navigate)
	// and outcome (ok, failed).
	Operations metric.Int64Counter

	// Tree and file copy volume
	CopiedFiles metric.Int64Counter
	CopiedBytes metric.Int64Counter

	// Directory listings partitioned by outcome
	Listings metric.Int64Counter
}

// NewMetrics creates all metric instruments. Returns no-op instruments
// when no MeterProvider is registered (safe to call unconditionally).
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Operations, err = meter.Int64Counter("fs.operations",
		metric.WithDescription("Filesystem operations partitioned by op and outcome"))
	if err != nil {
		return nil, err
	}

	m.CopiedFiles, err = meter.Int64Counter("fs.copy.files",
		metric.WithDescription("Regular files written by copy operations"),
		metric.WithUnit("{file}"))
	if err != nil {
		return nil, err
	}

	m.CopiedBytes, err = meter.Int64Counter("fs.copy.bytes",
		metric.WithDescription("Bytes written by copy operations"),
		metric.WithUnit("By"))
	if err != nil {
		return nil, err
	}

	m.Listings, err = meter.Int64Counter("fs.listings",
		metric.WithDescription("Directory listings partitioned by outcome"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailed
	}
	return OutcomeOK
}

// RecordOperation records one attempted filesystem operation.
func (m *Metrics) RecordOperation(ctx context.Context, op string, err error) {
	if m == nil {
		return
	}
	m.Operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("fs.op", op),
		attribute.String("fs.outcome", outcome(err)),
	))
}

// RecordCopy records one copied regular file of the given size.
func (m *Metrics) RecordCopy(ctx context.Context, bytes int64) {
	if m == nil {
		return
	}
	m.CopiedFiles.Add(ctx, 1)
	m.CopiedBytes.Add(ctx, bytes)
}

// RecordListing records a directory listing attempt.
func (m *Metrics) RecordListing(ctx context.Context, err error) {
	if m == nil {
		return
	}
	m.Listings.Add(ctx, 1, metric.WithAttributes(
		attribute.String("fs.outcome", outcome(err)),
	))
}
