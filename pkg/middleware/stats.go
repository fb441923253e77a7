package middleware

import (
	"context"
	"time"

	"github.com/hyp3rd/ewrap"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hyp3rd/hypertopo"
	"github.com/hyp3rd/hypertopo/pkg/settings"
	"github.com/hyp3rd/hypertopo/pkg/topology"
)

// Stats holds the Prometheus collectors fed by StatsCollectorMiddleware.
type Stats struct {
	Calls    *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewStats creates the collectors and registers them with reg.
func NewStats(reg prometheus.Registerer) (*Stats, error) {
	s := &Stats{
		Calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hypertopo_calls_total",
			Help: "Total number of service calls.",
		}, []string{"method", "status"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hypertopo_call_duration_seconds",
			Help:    "Duration of service calls in seconds.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"method"}),
	}

	for _, c := range []prometheus.Collector{s.Calls, s.Duration} {
		err := reg.Register(c)
		if err != nil {
			return nil, ewrap.Wrap(err, "register stats collector")
		}
	}

	return s, nil
}

// StatsCollectorMiddleware is a middleware that collects call counts and durations.
// Must implement the hypertopo.Service interface.
type StatsCollectorMiddleware struct {
	next  hypertopo.Service
	stats *Stats
}

// NewStatsCollectorMiddleware returns a new StatsCollectorMiddleware.
func NewStatsCollectorMiddleware(next hypertopo.Service, stats *Stats) hypertopo.Service {
	return &StatsCollectorMiddleware{next: next, stats: stats}
}

// NodeSettings collects stats for the NodeSettings method.
func (mw StatsCollectorMiddleware) NodeSettings(ctx context.Context, ordinal int) (s settings.Settings, err error) {
	defer mw.observe("NodeSettings", time.Now(), &err)

	return mw.next.NodeSettings(ctx, ordinal)
}

// ClientSettings collects stats for the ClientSettings method.
func (mw StatsCollectorMiddleware) ClientSettings(ctx context.Context) (s settings.Settings, err error) {
	defer mw.observe("ClientSettings", time.Now(), &err)

	return mw.next.ClientSettings(ctx)
}

// Identity collects stats for the Identity method.
func (mw StatsCollectorMiddleware) Identity(ctx context.Context, ordinal int) (id topology.Identity, err error) {
	defer mw.observe("Identity", time.Now(), &err)

	return mw.next.Identity(ctx, ordinal)
}

// Nodes collects stats for the Nodes method.
func (mw StatsCollectorMiddleware) Nodes(ctx context.Context) (nodes []topology.Identity, err error) {
	defer mw.observe("Nodes", time.Now(), &err)

	return mw.next.Nodes(ctx)
}

// SeedAddresses collects stats for the SeedAddresses method.
func (mw StatsCollectorMiddleware) SeedAddresses(ctx context.Context) (hosts []string, err error) {
	defer mw.observe("SeedAddresses", time.Now(), &err)

	return mw.next.SeedAddresses(ctx)
}

// Topology returns the underlying topology.
func (mw StatsCollectorMiddleware) Topology() *topology.Topology { return mw.next.Topology() }

func (mw StatsCollectorMiddleware) observe(method string, start time.Time, errp *error) {
	status := "ok"
	if *errp != nil {
		status = "error"
	}

	mw.stats.Calls.WithLabelValues(method, status).Inc()
	mw.stats.Duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}
