package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hyp3rd/hypertopo"
	"github.com/hyp3rd/hypertopo/internal/constants"
	"github.com/hyp3rd/hypertopo/internal/observability"
	"github.com/hyp3rd/hypertopo/pkg/middleware"
)

// app carries the state shared by the subcommands of one invocation.
type app struct {
	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer

	cfg      *hypertopo.Config
	logger   *slog.Logger
	tracer   trace.Tracer
	shutdown observability.ShutdownFunc
	registry *prometheus.Registry
	stats    *middleware.Stats
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	sets, _ := cmd.Flags().GetStringArray("set")

	cfg, err := loadConfig(a.v, configFile, sets)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = observability.SetupLogger(
		a.v.GetString("observability.log_level"),
		a.v.GetString("observability.log_format"),
		a.stderr,
	)

	tp, shutdown, err := observability.InitTracer(cmd.Context(), observability.TracerConfig{
		Endpoint:    a.v.GetString("observability.otlp_endpoint"),
		Protocol:    a.v.GetString("observability.otlp_protocol"),
		ServiceName: "topogen",
	})
	if err != nil {
		return err
	}

	a.tracer = tp.Tracer(constants.InstrumentationName)
	a.shutdown = shutdown

	a.registry = prometheus.NewRegistry()

	a.stats, err = middleware.NewStats(a.registry)
	if err != nil {
		return err
	}

	a.logger.Debug("configuration loaded",
		"nodes", cfg.Nodes,
		"unicast", cfg.Unicast,
		"scope", cfg.Scope,
		"config", configFile)

	return nil
}

func (a *app) teardown(ctx context.Context) error {
	if a.v.GetBool("observability.metrics") && a.registry != nil {
		err := a.dumpMetrics()
		if err != nil {
			return err
		}
	}

	if a.shutdown != nil {
		return a.shutdown(ctx)
	}

	return nil
}

func (a *app) dumpMetrics() error {
	families, err := a.registry.Gather()
	if err != nil {
		return err
	}

	for _, mf := range families {
		_, err := expfmt.MetricFamilyToText(a.stderr, mf)
		if err != nil {
			return err
		}
	}

	return nil
}

// service builds the configured topology and wraps it with the standard middlewares.
func (a *app) service() (hypertopo.Service, error) {
	base, err := hypertopo.NewFromConfig(a.cfg)
	if err != nil {
		return nil, err
	}

	topo := base.Topology()
	a.logger.Info("topology ready",
		"id", topo.ID(),
		"nodes", topo.NodeCount(),
		"unicast", topo.IsUnicast(),
		"base_port", topo.BasePort())

	metricsMW, err := middleware.NewOTelMetricsMiddleware(base, otel.Meter(constants.InstrumentationName))
	if err != nil {
		return nil, err
	}

	return hypertopo.ApplyMiddleware(metricsMW,
		func(next hypertopo.Service) hypertopo.Service {
			return middleware.NewOTelTracingMiddleware(next, a.tracer,
				middleware.WithCommonAttributes(attribute.String("component", "topogen")))
		},
		func(next hypertopo.Service) hypertopo.Service {
			return middleware.NewStatsCollectorMiddleware(next, a.stats)
		},
		func(next hypertopo.Service) hypertopo.Service {
			return middleware.NewLoggingMiddleware(next, observability.PrintfLogger(a.logger, slog.LevelDebug))
		},
	), nil
}
