package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/ecommerce/backoffice/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestReportMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewReportMetrics(provider.Meter(ReportMeterName))
	require.NoError(t, err)

	ctx := context.Background()
	m.ExportSucceeded(ctx, report.FormatCSV, 12, 250*time.Millisecond)
	m.ExportSucceeded(ctx, report.FormatCSV, 3, 50*time.Millisecond)
	m.ExportFailed(ctx, report.FormatPDF, "invalid_filters")

	metrics := collect(t, reader)

	exports, ok := metrics["report.exports"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	counts := map[string]int64{}
	for _, dp := range exports.DataPoints {
		format, _ := dp.Attributes.Value(attribute.Key("format"))
		outcome, _ := dp.Attributes.Value(attribute.Key("outcome"))
		counts[format.AsString()+"/"+outcome.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"csv/success": 2, "pdf/failure": 1}, counts)

	rows, ok := metrics["report.rows"].Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, rows.DataPoints, 1)
	assert.Equal(t, uint64(2), rows.DataPoints[0].Count)
	assert.Equal(t, int64(15), rows.DataPoints[0].Sum)

	duration, ok := metrics["report.export.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.InDelta(t, 0.3, duration.DataPoints[0].Sum, 1e-9)
}
