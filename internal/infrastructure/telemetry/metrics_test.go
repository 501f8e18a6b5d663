package telemetry

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/retail/backoffice/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newManualMeter returns a meter whose instruments can be collected on demand
func newManualMeter(t *testing.T) (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	return reader, mp
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func hasAttr(set attribute.Set, key attribute.Key, value string) bool {
	v, ok := set.Value(key)
	return ok && v.AsString() == value
}

// =============================================================================
// MeterProvider Tests
// =============================================================================

func TestNewMeterProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	mp, err := NewMeterProvider(ctx, MetricsConfig{ServiceName: "test"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.ForceFlush(ctx))
	assert.NoError(t, mp.Shutdown(ctx))
}

func TestMetricsConfigFrom(t *testing.T) {
	cfg := MetricsConfigFrom(config.TelemetryConfig{
		Enabled:           true,
		CollectorEndpoint: "collector:4317",
		ServiceName:       "backoffice",
		MetricsInterval:   15 * time.Second,
	})

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "collector:4317", cfg.CollectorEndpoint)
	assert.Equal(t, 15*time.Second, cfg.ExportInterval)
}

// =============================================================================
// Helper Instrument Tests
// =============================================================================

func TestCounterAndHistogram(t *testing.T) {
	reader, mp := newManualMeter(t)
	meter := mp.Meter("test")
	ctx := context.Background()

	counter, err := NewCounter(meter, "test_total", "test counter", "{op}")
	require.NoError(t, err)
	counter.Inc(ctx, AttrTenantID.String("tenant_a"))
	counter.Add(ctx, 2, AttrTenantID.String("tenant_a"))

	hist, err := NewHistogram(meter, HistogramOpts{
		Name:       "test_duration_seconds",
		Unit:       "s",
		Boundaries: HTTPDurationBuckets,
	})
	require.NoError(t, err)
	hist.RecordDuration(ctx, 250*time.Millisecond)

	got := collect(t, reader)

	sum := got["test_total"].Data.(metricdata.Sum[int64])
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(3), sum.DataPoints[0].Value)

	h := got["test_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.Len(t, h.DataPoints, 1)
	assert.Equal(t, uint64(1), h.DataPoints[0].Count)
	assert.InDelta(t, 0.25, h.DataPoints[0].Sum, 0.0001)
	assert.Equal(t, HTTPDurationBuckets, h.DataPoints[0].Bounds)
}

// =============================================================================
// LedgerMetrics Tests
// =============================================================================

func TestNewLedgerMetrics_NilMeter(t *testing.T) {
	m, err := NewLedgerMetrics(nil)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrMeterNil)
}

func TestLedgerMetrics_SaleEvents(t *testing.T) {
	reader, mp := newManualMeter(t)
	m, err := NewLedgerMetrics(mp.Meter("ledger"))
	require.NoError(t, err)
	ctx := context.Background()

	m.SaleCreated(ctx, "tenant_a", "credito", decimal.RequireFromString("150000"))
	m.SaleCreated(ctx, "tenant_a", "contado", decimal.RequireFromString("20000"))
	m.SaleReturned(ctx, "tenant_a")

	got := collect(t, reader)

	created := got["backoffice_ledger_sales_created_total"].Data.(metricdata.Sum[int64])
	require.Len(t, created.DataPoints, 2)
	for _, dp := range created.DataPoints {
		assert.Equal(t, int64(1), dp.Value)
		assert.True(t, hasAttr(dp.Attributes, AttrTenantID, "tenant_a"))
	}

	amounts := got["backoffice_ledger_sale_amount"].Data.(metricdata.Histogram[float64])
	var total float64
	for _, dp := range amounts.DataPoints {
		total += dp.Sum
	}
	assert.InDelta(t, 170000, total, 0.001)

	returned := got["backoffice_ledger_sales_returned_total"].Data.(metricdata.Sum[int64])
	require.Len(t, returned.DataPoints, 1)
	assert.Equal(t, int64(1), returned.DataPoints[0].Value)
}

func TestLedgerMetrics_PaymentRecorded(t *testing.T) {
	reader, mp := newManualMeter(t)
	m, err := NewLedgerMetrics(mp.Meter("ledger"))
	require.NoError(t, err)
	ctx := context.Background()

	m.PaymentRecorded(ctx, "tenant_a", decimal.RequireFromString("50000"), decimal.Zero)
	m.PaymentRecorded(ctx, "tenant_a", decimal.RequireFromString("100"), decimal.RequireFromString("25.50"))

	got := collect(t, reader)

	recorded := got["backoffice_ledger_payments_recorded_total"].Data.(metricdata.Sum[int64])
	require.Len(t, recorded.DataPoints, 2)
	results := map[string]int64{}
	for _, dp := range recorded.DataPoints {
		v, _ := dp.Attributes.Value(AttrPaymentResult)
		results[v.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"applied": 1, "overpaid": 1}, results)

	unapplied := got["backoffice_ledger_payment_unapplied_total"].Data.(metricdata.Sum[float64])
	require.Len(t, unapplied.DataPoints, 1)
	assert.InDelta(t, 25.50, unapplied.DataPoints[0].Value, 0.001)
}

// =============================================================================
// Pool Metrics Tests
// =============================================================================

func TestRegisterDBPoolMetrics(t *testing.T) {
	t.Run("rejects missing inputs", func(t *testing.T) {
		_, mp := newManualMeter(t)

		_, err := RegisterDBPoolMetrics(nil, &sql.DB{})
		assert.ErrorIs(t, err, ErrMeterNil)

		_, err = RegisterDBPoolMetrics(mp.Meter("db"), nil)
		assert.ErrorIs(t, err, ErrSQLDBNil)
	})

	t.Run("observes pool stats", func(t *testing.T) {
		reader, mp := newManualMeter(t)
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		require.NoError(t, err)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		defer sqlDB.Close()
		sqlDB.SetMaxOpenConns(3)

		reg, err := RegisterDBPoolMetrics(mp.Meter("db"), sqlDB)
		require.NoError(t, err)
		defer func() { _ = reg.Unregister() }()

		got := collect(t, reader)

		maxOpen := got["db_pool_max_open_connections"].Data.(metricdata.Gauge[int64])
		require.Len(t, maxOpen.DataPoints, 1)
		assert.Equal(t, int64(3), maxOpen.DataPoints[0].Value)

		conns := got["db_pool_connections"].Data.(metricdata.Gauge[int64])
		assert.Len(t, conns.DataPoints, 2)
	})
}
