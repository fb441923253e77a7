package middleware

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hyp3rd/hypertopo"
	"github.com/hyp3rd/hypertopo/internal/telemetry/attrs"
	"github.com/hyp3rd/hypertopo/pkg/settings"
	"github.com/hyp3rd/hypertopo/pkg/topology"
)

// OTelTracingMiddleware wraps hypertopo.Service methods with OpenTelemetry spans.
type OTelTracingMiddleware struct {
	next   hypertopo.Service
	tracer trace.Tracer
	// static attributes applied to all spans
	commonAttrs []attribute.KeyValue
}

// OTelTracingOption allows configuring the tracing middleware.
type OTelTracingOption func(*OTelTracingMiddleware)

// WithCommonAttributes sets attributes applied to all spans.
func WithCommonAttributes(attributes ...attribute.KeyValue) OTelTracingOption {
	return func(m *OTelTracingMiddleware) { m.commonAttrs = append(m.commonAttrs, attributes...) }
}

// NewOTelTracingMiddleware creates a tracing middleware. Every span carries the shape of
// the wrapped topology on top of the common attributes.
func NewOTelTracingMiddleware(next hypertopo.Service, tracer trace.Tracer, opts ...OTelTracingOption) hypertopo.Service {
	mw := &OTelTracingMiddleware{next: next, tracer: tracer}
	if topo := next.Topology(); topo != nil {
		mw.commonAttrs = append(mw.commonAttrs,
			attribute.Int(attrs.AttrNodeCount, topo.NodeCount()),
			attribute.Bool(attrs.AttrUnicast, topo.IsUnicast()),
			attribute.String(attrs.AttrScope, topo.Scope().String()))
	}

	for _, o := range opts {
		o(mw)
	}

	return mw
}

// NodeSettings implements Service.NodeSettings with tracing.
func (mw OTelTracingMiddleware) NodeSettings(ctx context.Context, ordinal int) (settings.Settings, error) {
	ctx, span := mw.startSpan(ctx, "hypertopo.NodeSettings", attribute.Int(attrs.AttrOrdinal, ordinal))
	defer span.End()

	s, err := mw.next.NodeSettings(ctx, ordinal)
	if err != nil {
		recordError(span, err)

		return s, err
	}

	span.SetAttributes(attribute.Int(attrs.AttrSettingsCount, s.Len()))

	return s, nil
}

// ClientSettings implements Service.ClientSettings with tracing.
func (mw OTelTracingMiddleware) ClientSettings(ctx context.Context) (settings.Settings, error) {
	ctx, span := mw.startSpan(ctx, "hypertopo.ClientSettings")
	defer span.End()

	s, err := mw.next.ClientSettings(ctx)
	if err != nil {
		recordError(span, err)

		return s, err
	}

	span.SetAttributes(attribute.Int(attrs.AttrSettingsCount, s.Len()))

	return s, nil
}

// Identity implements Service.Identity with tracing.
func (mw OTelTracingMiddleware) Identity(ctx context.Context, ordinal int) (topology.Identity, error) {
	ctx, span := mw.startSpan(ctx, "hypertopo.Identity", attribute.Int(attrs.AttrOrdinal, ordinal))
	defer span.End()

	id, err := mw.next.Identity(ctx, ordinal)
	if err != nil {
		recordError(span, err)
	}

	return id, err
}

// Nodes implements Service.Nodes with tracing.
func (mw OTelTracingMiddleware) Nodes(ctx context.Context) ([]topology.Identity, error) {
	ctx, span := mw.startSpan(ctx, "hypertopo.Nodes")
	defer span.End()

	nodes, err := mw.next.Nodes(ctx)
	if err != nil {
		recordError(span, err)
	}

	return nodes, err
}

// SeedAddresses implements Service.SeedAddresses with tracing.
func (mw OTelTracingMiddleware) SeedAddresses(ctx context.Context) ([]string, error) {
	ctx, span := mw.startSpan(ctx, "hypertopo.SeedAddresses")
	defer span.End()

	hosts, err := mw.next.SeedAddresses(ctx)
	if err != nil {
		recordError(span, err)

		return hosts, err
	}

	span.SetAttributes(attribute.Int(attrs.AttrSeedsCount, len(hosts)))

	return hosts, nil
}

// Topology returns the underlying topology.
func (mw OTelTracingMiddleware) Topology() *topology.Topology { return mw.next.Topology() }

// startSpan starts a span with common and provided attributes.
func (mw OTelTracingMiddleware) startSpan(ctx context.Context, name string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := mw.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	if len(mw.commonAttrs) > 0 {
		span.SetAttributes(mw.commonAttrs...)
	}

	if len(attributes) > 0 {
		span.SetAttributes(attributes...)
	}

	return ctx, span
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
