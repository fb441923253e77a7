package topology

import (
	"slices"
	"strconv"

	"github.com/google/uuid"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/hypertopo/internal/constants"
	"github.com/hyp3rd/hypertopo/internal/sentinel"
	"github.com/hyp3rd/hypertopo/pkg/settings"
)

// Topology holds the parameters of one simulated cluster. It is immutable once built and
// derives every node's settings on demand, so it is safe for concurrent use.
type Topology struct {
	id          string
	nodeCount   int
	unicast     bool
	scope       Scope
	seeds       []int
	basePort    int
	processID   int
	defaultMode NodeMode
	base        settings.Settings
}

// New builds a plain topology: every node and every client receives the base settings
// (defaults plus WithExtraSettings) and discovery is left to the node's own defaults.
func New(nodeCount int, opts ...Option) (*Topology, error) {
	return newTopology(nodeCount, applyOptions(opts))
}

func newTopology(nodeCount int, o options) (*Topology, error) {
	if nodeCount <= 0 {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidNodeCount, "nodeCount=%d", nodeCount)
	}

	return &Topology{
		id:          uuid.NewString(),
		nodeCount:   nodeCount,
		processID:   o.processID,
		defaultMode: o.mode,
		base:        settings.Merge(DefaultSettings(), o.extra),
	}, nil
}

// NewUnicast builds a topology whose nodes discover each other through an explicit seed list
// instead of multicast. All nodes are seeds unless WithSeedCount or WithSeedOrdinals narrows
// the set. The port window is reserved according to scope; see BasePort.
func NewUnicast(nodeCount int, scope Scope, opts ...Option) (*Topology, error) {
	o := applyOptions(opts)

	t, err := newTopology(nodeCount, o)
	if err != nil {
		return nil, err
	}

	if nodeCount > constants.PortsPerScopeSlot {
		return nil, ewrap.Wrapf(sentinel.ErrPortWindowExceeded, "nodeCount=%d window=%d", nodeCount, constants.PortsPerScopeSlot)
	}

	seeds, err := resolveSeeds(nodeCount, o)
	if err != nil {
		return nil, err
	}

	basePort, err := BasePort(scope, o.processID, o.src)
	if err != nil {
		return nil, err
	}

	t.unicast = true
	t.scope = scope
	t.seeds = seeds
	t.basePort = basePort

	return t, nil
}

func resolveSeeds(nodeCount int, o options) ([]int, error) {
	if o.hasOrdinals && o.hasSeedCount {
		return nil, sentinel.ErrConflictingSeedOptions
	}

	if o.hasOrdinals {
		err := ValidateSeedOrdinals(nodeCount, o.seedOrdinals)
		if err != nil {
			return nil, err
		}

		return slices.Clone(o.seedOrdinals), nil
	}

	seedCount := nodeCount
	if o.hasSeedCount {
		seedCount = o.seedCount
	}

	return SelectSeeds(nodeCount, seedCount, o.src)
}

// ID returns a unique id for this topology instance.
func (t *Topology) ID() string { return t.id }

// NodeCount returns the number of nodes.
func (t *Topology) NodeCount() int { return t.nodeCount }

// IsUnicast reports whether the topology pins seeds and addresses.
func (t *Topology) IsUnicast() bool { return t.unicast }

// Scope returns the scope of a unicast topology. Plain topologies report ScopeGlobal.
func (t *Topology) Scope() Scope { return t.scope }

// ProcessID returns the process id the port window was derived from.
func (t *Topology) ProcessID() int { return t.processID }

// SeedOrdinals returns a copy of the seed ordinals. Plain topologies have none.
func (t *Topology) SeedOrdinals() []int { return slices.Clone(t.seeds) }

// BasePort returns the first port of the reserved window (0 for plain topologies).
func (t *Topology) BasePort() int { return t.basePort }

// PortWindow returns the reserved window. Plain topologies reserve none.
func (t *Topology) PortWindow() (PortWindow, bool) {
	if !t.unicast {
		return PortWindow{}, false
	}

	return WindowAt(t.basePort), true
}

// ClientSettings returns the base settings unchanged: a client shares the topology's
// configuration but has no ordinal of its own.
func (t *Topology) ClientSettings() settings.Settings { return t.base }

// Mode resolves the transport mode from the effective node.mode setting.
func (t *Topology) Mode() (NodeMode, error) {
	raw, ok := t.base.Get(constants.KeyNodeMode)
	if !ok {
		return t.defaultMode, nil
	}

	return ParseNodeMode(raw)
}

// NodeSettings returns the settings for the node at ordinal.
//
// For unicast topologies the computed discovery layer (multicast off, transport address or
// port, seed-host list) is the base, and the topology's own settings are merged on top: any
// key the caller supplied through WithExtraSettings wins over the computed value.
func (t *Topology) NodeSettings(ordinal int) (settings.Settings, error) {
	err := t.checkOrdinal(ordinal)
	if err != nil {
		return settings.Settings{}, err
	}

	if !t.unicast {
		return t.base, nil
	}

	mode, err := t.Mode()
	if err != nil {
		return settings.Settings{}, err
	}

	b := settings.NewBuilder().PutBool(constants.KeyMulticastEnabled, false)

	switch mode {
	case ModeEmbedded:
		b.Put(constants.KeyLocalAddress, embeddedAddress(ordinal))
	case ModeNetworked:
		b.PutInt(constants.KeyTransportPort, t.basePort+ordinal)
		b.Put(constants.KeyTransportHost, constants.NetworkedHost)
	}

	b.PutList(constants.KeyUnicastHosts, t.seedAddresses(mode)...)

	return settings.Merge(b.Build(), t.base), nil
}

// SeedAddresses returns the seed-host list every node dials. Plain topologies return nil.
func (t *Topology) SeedAddresses() ([]string, error) {
	if !t.unicast {
		return nil, nil
	}

	mode, err := t.Mode()
	if err != nil {
		return nil, err
	}

	return t.seedAddresses(mode), nil
}

func (t *Topology) seedAddresses(mode NodeMode) []string {
	hosts := make([]string, len(t.seeds))
	for i, s := range t.seeds {
		hosts[i] = t.address(mode, s)
	}

	return hosts
}

func (t *Topology) address(mode NodeMode, ordinal int) string {
	if !t.unicast {
		return ""
	}

	if mode == ModeEmbedded {
		return embeddedAddress(ordinal)
	}

	return networkedAddress(t.basePort + ordinal)
}

// Identity derives the identity of the node at ordinal.
func (t *Topology) Identity(ordinal int) (Identity, error) {
	err := t.checkOrdinal(ordinal)
	if err != nil {
		return Identity{}, err
	}

	mode, err := t.Mode()
	if err != nil {
		return Identity{}, err
	}

	return t.identity(mode, ordinal), nil
}

// Nodes derives the identity of every node, in ordinal order.
func (t *Topology) Nodes() ([]Identity, error) {
	mode, err := t.Mode()
	if err != nil {
		return nil, err
	}

	out := make([]Identity, t.nodeCount)
	for i := range out {
		out[i] = t.identity(mode, i)
	}

	return out, nil
}

func (t *Topology) identity(mode NodeMode, ordinal int) Identity {
	addr := t.address(mode, ordinal)

	key := addr
	if key == "" {
		key = t.id + "#" + strconv.Itoa(ordinal)
	}

	return Identity{Ordinal: ordinal, Mode: mode, Address: addr, ID: deriveNodeID(key)}
}

func (t *Topology) checkOrdinal(ordinal int) error {
	if ordinal < 0 || ordinal >= t.nodeCount {
		return ewrap.Wrapf(sentinel.ErrOrdinalOutOfRange, "ordinal %d not in [0,%d)", ordinal, t.nodeCount)
	}

	return nil
}
