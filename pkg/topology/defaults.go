package topology

import (
	"os"
	"strings"
	"sync"

	"github.com/hyp3rd/hypertopo/internal/constants"
	"github.com/hyp3rd/hypertopo/pkg/settings"
)

//nolint:gochecknoglobals
var defaultSettings = sync.OnceValue(func() settings.Settings {
	return settings.NewBuilder().
		Put(constants.KeyGatewayType, constants.DefaultGatewayType).
		Put(constants.KeyDiscoveryType, constants.DefaultDiscoveryType).
		Build()
})

// DefaultSettings returns the read-only settings every topology starts from.
func DefaultSettings() settings.Settings { return defaultSettings() }

//nolint:gochecknoglobals
var defaultNodeMode = sync.OnceValue(func() NodeMode {
	raw := strings.TrimSpace(os.Getenv(constants.NodeModeEnv))
	if raw == "" {
		return ModeEmbedded
	}

	mode, err := ParseNodeMode(raw)
	if err != nil {
		return ModeEmbedded
	}

	return mode
})

// DefaultNodeMode is the mode used when neither the topology nor its settings pick one.
// It reads HYPERTOPO_NODE_MODE once and falls back to embedded.
func DefaultNodeMode() NodeMode { return defaultNodeMode() }
