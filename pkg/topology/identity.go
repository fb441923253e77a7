package topology

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/hypertopo/internal/constants"
	"github.com/hyp3rd/hypertopo/internal/sentinel"
)

// NodeMode is the transport a node uses to reach its peers.
type NodeMode int

// Node mode enumeration.
const (
	// ModeEmbedded nodes talk over named in-memory channels.
	ModeEmbedded NodeMode = iota
	// ModeNetworked nodes talk over TCP on localhost.
	ModeNetworked
)

// internal constants.
const (
	nodeIDBytes = 8
	byteShift   = 8 // bits per byte for id derivation
)

func (m NodeMode) String() string {
	switch m {
	case ModeEmbedded:
		return "embedded"
	case ModeNetworked:
		return "networked"
	}

	return "unknown"
}

// ParseNodeMode parses a node.mode value. "local" and "network" are accepted as aliases.
func ParseNodeMode(raw string) (NodeMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "embedded", "local":
		return ModeEmbedded, nil
	case "networked", "network":
		return ModeNetworked, nil
	}

	return 0, ewrap.Wrap(sentinel.ErrInvalidNodeMode, raw)
}

// Identity describes one node of a topology. It is derived from the topology and its
// effective settings on every request, never stored.
type Identity struct {
	Ordinal int
	Mode    NodeMode
	// Address is node_<ordinal> for embedded nodes and localhost:<port> for networked ones.
	// Plain (non-unicast) topologies do not pin addresses, leaving it empty.
	Address string
	// ID is a short hex id derived with xxhash64 from Address, or from the topology id and
	// ordinal when Address is empty.
	ID string
}

// IsSeed reports whether the identity's ordinal is one of seeds.
func (id Identity) IsSeed(seeds []int) bool {
	for _, s := range seeds {
		if s == id.Ordinal {
			return true
		}
	}

	return false
}

func embeddedAddress(ordinal int) string {
	return constants.EmbeddedAddressPrefix + strconv.Itoa(ordinal)
}

func networkedAddress(port int) string {
	return constants.NetworkedHost + ":" + strconv.Itoa(port)
}

// deriveNodeID hashes key with xxhash64 into a short hex id.
func deriveNodeID(key string) string {
	hv := xxhash.Sum64String(key)

	b := make([]byte, nodeIDBytes)
	for i := range nodeIDBytes {
		b[i] = byte(hv >> (byteShift * i))
	}

	return hex.EncodeToString(b)
}
