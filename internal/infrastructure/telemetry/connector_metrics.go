package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// ConnectorMetrics counts gateway calls and filter translations.
// A nil *ConnectorMetrics records nothing.
type ConnectorMetrics struct {
	gatewayCalls    *Counter
	gatewayDuration *Histogram
	filterOps       *Counter
	filterDuration  *Histogram
}

// NewConnectorMetrics creates the connector instruments from a meter.
func NewConnectorMetrics(meter metric.Meter) (*ConnectorMetrics, error) {
	gatewayCalls, err := NewCounter(meter,
		"storefront_gateway_calls_total",
		"Total number of storefront gateway calls",
		"{call}",
	)
	if err != nil {
		return nil, err
	}
	gatewayDuration, err := NewHistogram(meter, HistogramOpts{
		Name:        "storefront_gateway_call_duration_seconds",
		Description: "Storefront gateway call latency in seconds",
		Unit:        "s",
		Boundaries:  GatewayDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	filterOps, err := NewCounter(meter,
		"storefront_filter_operations_total",
		"Total number of native filter translations and parses",
		"{operation}",
	)
	if err != nil {
		return nil, err
	}
	filterDuration, err := NewHistogram(meter, HistogramOpts{
		Name:        "storefront_filter_duration_seconds",
		Description: "Native filter translation and parse latency in seconds",
		Unit:        "s",
		Boundaries:  SmallDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return &ConnectorMetrics{
		gatewayCalls:    gatewayCalls,
		gatewayDuration: gatewayDuration,
		filterOps:       filterOps,
		filterDuration:  filterDuration,
	}, nil
}

// RecordGatewayCall records one call of a gateway method.
func (m *ConnectorMetrics) RecordGatewayCall(ctx context.Context, method string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.gatewayCalls.Inc(ctx, AttrGatewayMethod.String(method), AttrOutcome.String(outcome(err)))
	m.gatewayDuration.RecordDuration(ctx, d, AttrGatewayMethod.String(method))
}

// RecordFilter records one translate or parse of a native filter.
func (m *ConnectorMetrics) RecordFilter(ctx context.Context, action, entity string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.filterOps.Inc(ctx,
		AttrFilterAction.String(action),
		AttrEntity.String(entity),
		AttrOutcome.String(outcome(err)),
	)
	m.filterDuration.RecordDuration(ctx, d, AttrFilterAction.String(action))
}
