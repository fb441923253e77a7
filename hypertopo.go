// Package hypertopo generates deterministic, collision-free cluster topologies for
// tests: per-node settings, seed-host lists and port windows for clusters simulated
// either in-process or over localhost.
//
// HyperTopo exposes a topology through the Service interface so it can be decorated
// with the middlewares in pkg/middleware.
package hypertopo

import (
	"context"

	"github.com/hyp3rd/hypertopo/pkg/settings"
	"github.com/hyp3rd/hypertopo/pkg/topology"
)

// HyperTopo serves the settings of one topology.
type HyperTopo struct {
	topo *topology.Topology
}

// New wraps an existing topology.
func New(topo *topology.Topology) *HyperTopo {
	return &HyperTopo{topo: topo}
}

// NewUnicast builds a unicast topology and wraps it.
func NewUnicast(nodeCount int, scope topology.Scope, opts ...topology.Option) (*HyperTopo, error) {
	topo, err := topology.NewUnicast(nodeCount, scope, opts...)
	if err != nil {
		return nil, err
	}

	return New(topo), nil
}

// NodeSettings returns the effective settings of the node at ordinal.
func (h *HyperTopo) NodeSettings(ctx context.Context, ordinal int) (settings.Settings, error) {
	err := ctx.Err()
	if err != nil {
		return settings.Settings{}, err
	}

	return h.topo.NodeSettings(ordinal)
}

// ClientSettings returns the settings a client of the topology starts with.
func (h *HyperTopo) ClientSettings(ctx context.Context) (settings.Settings, error) {
	err := ctx.Err()
	if err != nil {
		return settings.Settings{}, err
	}

	return h.topo.ClientSettings(), nil
}

// Identity returns the identity of the node at ordinal.
func (h *HyperTopo) Identity(ctx context.Context, ordinal int) (topology.Identity, error) {
	err := ctx.Err()
	if err != nil {
		return topology.Identity{}, err
	}

	return h.topo.Identity(ordinal)
}

// Nodes returns the identity of every node.
func (h *HyperTopo) Nodes(ctx context.Context) ([]topology.Identity, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	return h.topo.Nodes()
}

// SeedAddresses returns the seed-host list every node dials.
func (h *HyperTopo) SeedAddresses(ctx context.Context) ([]string, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	return h.topo.SeedAddresses()
}

// Topology returns the underlying topology.
func (h *HyperTopo) Topology() *topology.Topology { return h.topo }
