package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewMeterProvider_Disabled(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), Config{Enabled: false}, 0, zap.NewNop())
	require.NoError(t, err)

	meter := mp.Meter(ReportMeterName)
	require.NotNil(t, meter)
	_, err = meter.Int64Counter("report.exports")
	assert.NoError(t, err)
	assert.NoError(t, mp.Shutdown(context.Background()))
}
