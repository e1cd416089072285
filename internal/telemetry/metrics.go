// Package telemetry provides metric instrumentation for the adapter.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PollerMetricsMeterName is the name used for the poller metrics meter
const PollerMetricsMeterName = "github.com/fleetmirror/fleetmirror/poller"

// PollerMetrics holds the instruments recorded by the poll loop
type PollerMetrics struct {
	pollsTotal       metric.Int64Counter
	stateWritesTotal metric.Int64Counter
}

// NewPollerMetrics creates a new PollerMetrics instance with the given meter
// provider. If provider is nil, it returns nil (no-op metrics).
func NewPollerMetrics(provider metric.MeterProvider) (*PollerMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(PollerMetricsMeterName)

	pollsTotal, err := meter.Int64Counter(
		"fleetmirror_polls_total",
		metric.WithDescription("Number of poll cycles by result"),
		metric.WithUnit("{poll}"),
	)
	if err != nil {
		return nil, err
	}

	stateWritesTotal, err := meter.Int64Counter(
		"fleetmirror_state_writes_total",
		metric.WithDescription("Number of state values written to the host store"),
		metric.WithUnit("{write}"),
	)
	if err != nil {
		return nil, err
	}

	return &PollerMetrics{
		pollsTotal:       pollsTotal,
		stateWritesTotal: stateWritesTotal,
	}, nil
}

// RecordPoll records one completed poll cycle with its result label.
func (m *PollerMetrics) RecordPoll(ctx context.Context, result string) {
	if m == nil || m.pollsTotal == nil {
		return
	}
	m.pollsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// RecordStateWrites records the number of state values written in a cycle.
func (m *PollerMetrics) RecordStateWrites(ctx context.Context, count int64) {
	if m == nil || m.stateWritesTotal == nil {
		return
	}
	m.stateWritesTotal.Add(ctx, count)
}
