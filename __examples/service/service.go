package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/hyp3rd/hypertopo"
	"github.com/hyp3rd/hypertopo/pkg/middleware"
	"github.com/hyp3rd/hypertopo/pkg/settings"
	"github.com/hyp3rd/hypertopo/pkg/topology"
)

const (
	nodeCount = 3
)

func main() {
	var svc hypertopo.Service

	ctx := context.Background()

	extra := settings.NewBuilder().Put("node.mode", "networked").Build()

	topo, err := hypertopo.NewUnicast(nodeCount, topology.ScopeGlobal, topology.WithExtraSettings(extra))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	svc = topo

	logger := log.Default()

	// apply middleware in the same order as you want to execute them
	svc = hypertopo.ApplyMiddleware(svc,
		func(next hypertopo.Service) hypertopo.Service {
			return middleware.NewLoggingMiddleware(next, logger)
		},
	)

	for ordinal := range nodeCount {
		s, err := svc.NodeSettings(ctx, ordinal)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)

			return
		}

		fmt.Printf("node %d:\n%s\n", ordinal, s)
	}

	client, err := svc.ClientSettings(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	fmt.Printf("client:\n%s", client)
}
