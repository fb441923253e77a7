package constants

// Settings keys produced and consumed by the topology generator. The schema is owned by the
// node bootstrap code; these are the names it reads.
const (
	// KeyMulticastEnabled toggles broadcast-based discovery.
	KeyMulticastEnabled = "discovery.multicast.enabled"
	// KeyUnicastHosts holds the ordered seed-host address list.
	KeyUnicastHosts = "discovery.unicast.hosts"
	// KeyDiscoveryType selects the discovery implementation.
	KeyDiscoveryType = "discovery.type"
	// KeyGatewayType selects the gateway implementation.
	KeyGatewayType = "gateway.type"
	// KeyLocalAddress is the in-memory transport address of an embedded node.
	KeyLocalAddress = "transport.local.address"
	// KeyTransportPort is the TCP port of a networked node.
	KeyTransportPort = "transport.tcp.port"
	// KeyTransportHost is the host of a networked node.
	KeyTransportHost = "transport.host"
	// KeyNodeMode selects embedded or networked transport.
	KeyNodeMode = "node.mode"
)

// Default values for the base settings every topology starts from.
const (
	DefaultGatewayType   = "local"
	DefaultDiscoveryType = "unicast"
)
