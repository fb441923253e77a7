package middleware

import (
	"context"
	"time"

	"github.com/hyp3rd/ewrap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/hyp3rd/hypertopo"
	"github.com/hyp3rd/hypertopo/internal/telemetry/attrs"
	"github.com/hyp3rd/hypertopo/pkg/settings"
	"github.com/hyp3rd/hypertopo/pkg/topology"
)

// OTelMetricsMiddleware emits OpenTelemetry metrics for service methods.
type OTelMetricsMiddleware struct {
	next  hypertopo.Service
	meter metric.Meter

	// instruments
	calls     metric.Int64Counter
	durations metric.Float64Histogram
}

// NewOTelMetricsMiddleware constructs a metrics middleware using the provided meter.
func NewOTelMetricsMiddleware(next hypertopo.Service, meter metric.Meter) (hypertopo.Service, error) {
	calls, err := meter.Int64Counter("hypertopo.calls")
	if err != nil {
		return nil, ewrap.Wrap(err, "create counter")
	}

	durations, err := meter.Float64Histogram("hypertopo.duration.ms")
	if err != nil {
		return nil, ewrap.Wrap(err, "create histogram")
	}

	return &OTelMetricsMiddleware{next: next, meter: meter, calls: calls, durations: durations}, nil
}

// NodeSettings implements Service.NodeSettings with metrics.
func (mw *OTelMetricsMiddleware) NodeSettings(ctx context.Context, ordinal int) (settings.Settings, error) {
	start := time.Now()
	s, err := mw.next.NodeSettings(ctx, ordinal)
	mw.rec(ctx, "NodeSettings", start, err, attribute.Int(attrs.AttrOrdinal, ordinal))

	return s, err
}

// ClientSettings implements Service.ClientSettings with metrics.
func (mw *OTelMetricsMiddleware) ClientSettings(ctx context.Context) (settings.Settings, error) {
	start := time.Now()
	s, err := mw.next.ClientSettings(ctx)
	mw.rec(ctx, "ClientSettings", start, err)

	return s, err
}

// Identity implements Service.Identity with metrics.
func (mw *OTelMetricsMiddleware) Identity(ctx context.Context, ordinal int) (topology.Identity, error) {
	start := time.Now()
	id, err := mw.next.Identity(ctx, ordinal)
	mw.rec(ctx, "Identity", start, err, attribute.Int(attrs.AttrOrdinal, ordinal))

	return id, err
}

// Nodes implements Service.Nodes with metrics.
func (mw *OTelMetricsMiddleware) Nodes(ctx context.Context) ([]topology.Identity, error) {
	start := time.Now()
	nodes, err := mw.next.Nodes(ctx)
	mw.rec(ctx, "Nodes", start, err, attribute.Int(attrs.AttrNodeCount, len(nodes)))

	return nodes, err
}

// SeedAddresses implements Service.SeedAddresses with metrics.
func (mw *OTelMetricsMiddleware) SeedAddresses(ctx context.Context) ([]string, error) {
	start := time.Now()
	hosts, err := mw.next.SeedAddresses(ctx)
	mw.rec(ctx, "SeedAddresses", start, err, attribute.Int(attrs.AttrSeedsCount, len(hosts)))

	return hosts, err
}

// Topology returns the underlying topology.
func (mw *OTelMetricsMiddleware) Topology() *topology.Topology { return mw.next.Topology() }

// rec records call count and duration with attributes.
func (mw *OTelMetricsMiddleware) rec(ctx context.Context, method string, start time.Time, err error, extra ...attribute.KeyValue) {
	base := []attribute.KeyValue{
		attribute.String(attrs.AttrMethod, method),
		attribute.Bool(attrs.AttrError, err != nil),
	}
	if len(extra) > 0 {
		base = append(base, extra...)
	}

	mw.calls.Add(ctx, 1, metric.WithAttributes(base...))
	mw.durations.Record(ctx, float64(time.Since(start).Microseconds())/1e3, metric.WithAttributes(base...))
}
