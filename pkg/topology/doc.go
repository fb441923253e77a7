// Package topology generates deterministic per-node settings for simulated
// multi-node test clusters. A Topology fixes a node count, a set of seed
// ordinals and (for unicast topologies) a reserved port window; from those it
// derives, on demand, the transport address and seed-host list of every node
// so independently started node processes can find each other without an
// external coordination service.
//
// Port windows are carved out of a shared range without a shared allocator:
// see BasePort for the arithmetic and the scheduling precondition it relies on.
//
// Seed selection and port-slot draws use a random.Source, injectable with
// WithRandom for reproducible topologies.
//
// 2014-11: the explicit unicast configuration exists to work around discovery
// fixes that were pending release at the time; once every supported node
// version ships them, NewUnicast can fall back to plain topologies.
package topology
