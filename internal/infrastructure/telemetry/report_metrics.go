package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/ecommerce/backoffice/internal/domain/report"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ReportMeterName is the instrumentation scope of the report instruments
const ReportMeterName = "github.com/ecommerce/backoffice/report"

// Export outcomes recorded on report.exports
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// ReportMetrics records export counts, durations and sizes
type ReportMetrics struct {
	exports  metric.Int64Counter
	duration metric.Float64Histogram
	rows     metric.Int64Histogram
}

// NewReportMetrics registers the report instruments on meter
func NewReportMetrics(meter metric.Meter) (*ReportMetrics, error) {
	exports, err := meter.Int64Counter("report.exports",
		metric.WithDescription("Sales report exports by format and outcome"),
		metric.WithUnit("{export}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create report.exports counter: %w", err)
	}
	duration, err := meter.Float64Histogram("report.export.duration",
		metric.WithDescription("Time spent producing a sales report"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create report.export.duration histogram: %w", err)
	}
	rows, err := meter.Int64Histogram("report.rows",
		metric.WithDescription("Rows written per sales report"),
		metric.WithUnit("{row}"),
		metric.WithExplicitBucketBoundaries(0, 10, 100, 1000, 10000, 100000),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create report.rows histogram: %w", err)
	}
	return &ReportMetrics{exports: exports, duration: duration, rows: rows}, nil
}

// ExportSucceeded records a completed export
func (m *ReportMetrics) ExportSucceeded(ctx context.Context, format report.Format, rows int, elapsed time.Duration) {
	formatAttr := attribute.String("format", string(format))
	m.exports.Add(ctx, 1, metric.WithAttributes(formatAttr, attribute.String("outcome", OutcomeSuccess)))
	m.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(formatAttr))
	m.rows.Record(ctx, int64(rows), metric.WithAttributes(formatAttr))
}

// ExportFailed records a rejected or failed export
func (m *ReportMetrics) ExportFailed(ctx context.Context, format report.Format, reason string) {
	m.exports.Add(ctx, 1, metric.WithAttributes(
		attribute.String("format", string(format)),
		attribute.String("outcome", OutcomeFailure),
		attribute.String("reason", reason),
	))
}
