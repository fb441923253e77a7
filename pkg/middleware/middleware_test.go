package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/longbridgeapp/assert"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/hyp3rd/hypertopo"
	"github.com/hyp3rd/hypertopo/internal/sentinel"
	"github.com/hyp3rd/hypertopo/internal/telemetry/attrs"
	"github.com/hyp3rd/hypertopo/pkg/topology"
)

type captureLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *captureLogger) Printf(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *captureLogger) joined() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return strings.Join(l.lines, "\n")
}

func newService(t *testing.T) hypertopo.Service {
	t.Helper()

	svc, err := hypertopo.NewUnicast(3, topology.ScopeGlobal, topology.WithProcessID(1))
	assert.Nil(t, err)

	return svc
}

func TestLoggingMiddleware(t *testing.T) {
	logger := &captureLogger{}
	svc := NewLoggingMiddleware(newService(t), logger)

	_, err := svc.NodeSettings(context.Background(), 1)
	assert.Nil(t, err)

	_, err = svc.NodeSettings(context.Background(), 7)
	assert.True(t, errors.Is(err, sentinel.ErrOrdinalOutOfRange))

	out := logger.joined()
	assert.True(t, strings.Contains(out, "NodeSettings method called with ordinal: 1"))
	assert.True(t, strings.Contains(out, "method NodeSettings took:"))
	assert.True(t, strings.Contains(out, "NodeSettings failed for ordinal 7"))
}

func TestOTelTracingMiddleware(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	svc := NewOTelTracingMiddleware(newService(t), tp.Tracer("test"),
		WithCommonAttributes(attribute.String("component", "hypertopo")))

	_, err := svc.NodeSettings(context.Background(), 0)
	assert.Nil(t, err)

	_, err = svc.Identity(context.Background(), -1)
	assert.NotNil(t, err)

	spans := recorder.Ended()
	assert.Equal(t, 2, len(spans))
	assert.Equal(t, "hypertopo.NodeSettings", spans[0].Name())
	assert.Equal(t, "hypertopo.Identity", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)

	found := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		found[kv.Key] = kv.Value
	}

	assert.Equal(t, "hypertopo", found["component"].AsString())
	assert.Equal(t, int64(3), found[attrs.AttrNodeCount].AsInt64())
	assert.Equal(t, int64(0), found[attrs.AttrOrdinal].AsInt64())
	assert.True(t, found[attrs.AttrSettingsCount].AsInt64() > 0)
}

func TestOTelMetricsMiddleware_PassesThrough(t *testing.T) {
	inner := newService(t)

	svc, err := NewOTelMetricsMiddleware(inner, metricnoop.NewMeterProvider().Meter("test"))
	assert.Nil(t, err)

	got, err := svc.SeedAddresses(context.Background())
	assert.Nil(t, err)

	want, err := inner.SeedAddresses(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, inner.Topology(), svc.Topology())
}

func TestStatsCollectorMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()

	stats, err := NewStats(reg)
	assert.Nil(t, err)

	svc := NewStatsCollectorMiddleware(newService(t), stats)

	for i := range 3 {
		_, err := svc.NodeSettings(context.Background(), i)
		assert.Nil(t, err)
	}

	_, err = svc.NodeSettings(context.Background(), 3)
	assert.NotNil(t, err)

	assert.Equal(t, float64(3), testutil.ToFloat64(stats.Calls.WithLabelValues("NodeSettings", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(stats.Calls.WithLabelValues("NodeSettings", "error")))

	_, err = NewStats(reg)
	assert.NotNil(t, err)
}

func TestApplyMiddlewareChain(t *testing.T) {
	logger := &captureLogger{}
	reg := prometheus.NewRegistry()

	stats, err := NewStats(reg)
	assert.Nil(t, err)

	inner := newService(t)
	svc := hypertopo.ApplyMiddleware(inner,
		func(next hypertopo.Service) hypertopo.Service { return NewLoggingMiddleware(next, logger) },
		func(next hypertopo.Service) hypertopo.Service { return NewStatsCollectorMiddleware(next, stats) },
	)

	nodes, err := svc.Nodes(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 3, len(nodes))
	assert.Equal(t, inner.Topology(), svc.Topology())
	assert.Equal(t, float64(1), testutil.ToFloat64(stats.Calls.WithLabelValues("Nodes", "ok")))
	assert.True(t, strings.Contains(logger.joined(), "Nodes method invoked"))
}
