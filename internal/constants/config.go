// Package constants defines default configuration values, port arithmetic and
// settings keys for the hypertopo system. It provides the standard values the
// topology generator uses to derive node addresses, seed lists and port windows.
package constants

const (
	// PortRangeStart is the first port of the range shared by all test processes.
	// Every topology window is carved out of the range starting here.
	PortRangeStart = 30000
	// PortsPerProcess is the width of the range reserved for a single process.
	// Ten scope slots of PortsPerScopeSlot ports fit inside it.
	PortsPerProcess = 1000
	// MaxConcurrentProcesses bounds how many processes get distinct ranges; the
	// process id is taken modulo this value.
	MaxConcurrentProcesses = 60
	// PortsPerScopeSlot is the number of consecutive ports owned by one topology.
	// It is also the largest node count a networked topology can address.
	PortsPerScopeSlot = 100
	// GlobalScopeSlot is the slot pinned to the process-lifetime global topology.
	GlobalScopeSlot = 0
	// MinTransientScopeSlot is the lowest slot drawn for suite and test topologies.
	MinTransientScopeSlot = 1
	// MaxTransientScopeSlot is the highest slot drawn for suite and test topologies.
	MaxTransientScopeSlot = 9

	// EmbeddedAddressPrefix prefixes the in-memory transport address of a node.
	EmbeddedAddressPrefix = "node_"
	// NetworkedHost is the host every networked node binds and advertises.
	NetworkedHost = "localhost"

	// ProcessIDEnv names the environment variable holding the test process id.
	// When unset (or not numeric) the operating system pid is used instead.
	ProcessIDEnv = "HYPERTOPO_PROCESS_ID"
	// NodeModeEnv names the environment variable holding the process-wide default node mode.
	NodeModeEnv = "HYPERTOPO_NODE_MODE"
)

const (
	// DefaultNodeCount is the node count topogen uses when none is configured.
	DefaultNodeCount = 3
	// DefaultSerializer is the output format of topogen.
	DefaultSerializer = "json"
	// EnvPrefix prefixes every environment variable bound by topogen.
	EnvPrefix = "HYPERTOPO"
	// AutoProcessID asks the configuration layer to detect the process id.
	AutoProcessID = -1
	// InstrumentationName names the tracer and meter of the service middlewares.
	InstrumentationName = "github.com/hyp3rd/hypertopo"
)
