package main

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/hyp3rd/hypertopo"
	"github.com/hyp3rd/hypertopo/pkg/middleware"
	"github.com/hyp3rd/hypertopo/pkg/topology"
)

// This example shows how to wrap HyperTopo with OpenTelemetry middleware.
func main() {
	ctx := context.Background()

	topo, err := hypertopo.NewUnicast(3, topology.ScopeSuite, topology.WithSeedCount(2))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	// Build a service from the topology to apply middleware.
	svc := hypertopo.Service(topo)

	// Use noop providers for a minimal example. Replace with real SDK providers in production.
	meter := noop.NewMeterProvider().Meter("hypertopo/examples")
	tracer := tracenoop.NewTracerProvider().Tracer("hypertopo/examples")

	// Apply OTel tracing and metrics middleware.
	svc = hypertopo.ApplyMiddleware(svc,
		func(next hypertopo.Service) hypertopo.Service {
			return middleware.NewOTelTracingMiddleware(next, tracer, middleware.WithCommonAttributes(
				attribute.String("component", "hypertopo"),
			))
		},
		func(next hypertopo.Service) hypertopo.Service {
			mw, _ := middleware.NewOTelMetricsMiddleware(next, meter)

			return mw
		},
	)

	hosts, err := svc.SeedAddresses(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	fmt.Println("seeds:", hosts)
}
