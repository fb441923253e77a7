// Package attrs provides reusable OpenTelemetry attribute key constants
// to avoid duplication across middlewares.
package attrs

const (
	// AttrOrdinal is the ordinal of the node a call was made for.
	AttrOrdinal = "node.ordinal"
	// AttrNodeCount is the number of nodes of the topology.
	AttrNodeCount = "topology.nodes"
	// AttrUnicast reports whether the topology pins seeds and addresses.
	AttrUnicast = "topology.unicast"
	// AttrScope is the scope the port window was reserved for.
	AttrScope = "topology.scope"
	// AttrSettingsCount is the number of keys in returned settings.
	AttrSettingsCount = "settings.count"
	// AttrSeedsCount is the number of seed hosts returned.
	AttrSeedsCount = "seeds.count"
	// AttrMethod names the service method in metrics.
	AttrMethod = "method"
	// AttrError reports whether the call failed.
	AttrError = "error"
)
