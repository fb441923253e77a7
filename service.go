package hypertopo

import (
	"context"

	"github.com/hyp3rd/hypertopo/pkg/settings"
	"github.com/hyp3rd/hypertopo/pkg/topology"
)

// Service is the service interface for HyperTopo.
// It enables middleware to be added to the service.
type Service interface {
	// NodeSettings returns the effective settings of the node at ordinal
	NodeSettings(ctx context.Context, ordinal int) (settings.Settings, error)
	// ClientSettings returns the settings a client of the topology starts with
	ClientSettings(ctx context.Context) (settings.Settings, error)
	// Identity returns the identity of the node at ordinal
	Identity(ctx context.Context, ordinal int) (topology.Identity, error)
	// Nodes returns the identity of every node
	Nodes(ctx context.Context) ([]topology.Identity, error)
	// SeedAddresses returns the seed-host list every node dials
	SeedAddresses(ctx context.Context) ([]string, error)
	// Topology returns the underlying topology
	Topology() *topology.Topology
}

// Middleware describes a service middleware.
type Middleware func(Service) Service

// ApplyMiddleware applies middlewares to a service.
func ApplyMiddleware(svc Service, mw ...Middleware) Service {
	// Apply each middleware in the chain
	for _, m := range mw {
		svc = m(svc)
	}
	// Return the decorated service
	return svc
}
