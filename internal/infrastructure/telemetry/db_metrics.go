package telemetry

import (
	"context"
	"database/sql"
	"errors"

	"go.opentelemetry.io/otel/metric"
)

// ErrSQLDBNil is returned when pool metrics are registered without a connection pool.
var ErrSQLDBNil = errors.New("telemetry: sql.DB cannot be nil")

// RegisterDBPoolMetrics exposes connection pool statistics as observable
// gauges. Values are read from sqlDB.Stats on every collection cycle.
func RegisterDBPoolMetrics(meter metric.Meter, sqlDB *sql.DB) (metric.Registration, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if sqlDB == nil {
		return nil, ErrSQLDBNil
	}

	connections, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Database connections by state"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return nil, err
	}
	maxOpen, err := meter.Int64ObservableGauge("db_pool_max_open_connections",
		metric.WithDescription("Maximum number of open connections"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return nil, err
	}
	waitCount, err := meter.Int64ObservableCounter("db_pool_wait_count_total",
		metric.WithDescription("Total number of connections waited for"),
		metric.WithUnit("{wait}"),
	)
	if err != nil {
		return nil, err
	}
	waitDuration, err := meter.Float64ObservableCounter("db_pool_wait_duration_seconds_total",
		metric.WithDescription("Total time blocked waiting for a new connection"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(connections, int64(stats.InUse), metric.WithAttributes(AttrDBPoolState.String("in_use")))
		o.ObserveInt64(connections, int64(stats.Idle), metric.WithAttributes(AttrDBPoolState.String("idle")))
		o.ObserveInt64(maxOpen, int64(stats.MaxOpenConnections))
		o.ObserveInt64(waitCount, stats.WaitCount)
		o.ObserveFloat64(waitDuration, stats.WaitDuration.Seconds())
		return nil
	}, connections, maxOpen, waitCount, waitDuration)
}
