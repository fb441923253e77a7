package hypertopo

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/hypertopo/internal/constants"
	"github.com/hyp3rd/hypertopo/internal/libs/serializer"
	"github.com/hyp3rd/hypertopo/internal/sentinel"
	"github.com/hyp3rd/hypertopo/pkg/random"
	"github.com/hyp3rd/hypertopo/pkg/settings"
	"github.com/hyp3rd/hypertopo/pkg/topology"
)

// Config is a flat description of a topology, decodable from files, flags and the environment.
type Config struct {
	// Nodes is the number of nodes in the topology.
	Nodes int `mapstructure:"nodes"`
	// Unicast pins seeds and addresses. When false every node receives the base settings.
	Unicast bool `mapstructure:"unicast"`
	// Scope is one of global, suite or test.
	Scope string `mapstructure:"scope"`
	// SeedCount is the number of random seeds. A negative value makes every node a seed.
	SeedCount int `mapstructure:"seed_count"`
	// SeedOrdinals fixes the seeds explicitly when not empty. It cannot be combined with a non-negative SeedCount.
	SeedOrdinals []int `mapstructure:"seed_ordinals"`
	// ProcessID separates concurrent processes. AutoProcessID detects it.
	ProcessID int `mapstructure:"process_id"`
	// Mode is the default node mode; a node.mode key in the settings still wins.
	Mode string `mapstructure:"mode"`
	// RandomSeed makes seed and slot draws reproducible. Zero draws from the process-wide source.
	RandomSeed uint64 `mapstructure:"random_seed"`
	// SettingsFile is a json, yaml, msgpack or cbor document layered under Settings.
	SettingsFile string `mapstructure:"settings_file"`
	// Settings are extra keys applied on top of the computed node settings.
	Settings map[string]any `mapstructure:"settings"`
}

// NewConfig returns a `Config` with default values:
//   - `Nodes` is set to constants.DefaultNodeCount
//   - `Unicast` is enabled with the global scope
//   - every node is a seed
//   - the process id is detected
func NewConfig() *Config {
	return &Config{
		Nodes:     constants.DefaultNodeCount,
		Unicast:   true,
		Scope:     topology.ScopeGlobal.String(),
		SeedCount: -1,
		ProcessID: constants.AutoProcessID,
	}
}

// Options translates the configuration into topology options.
func (c *Config) Options() ([]topology.Option, error) {
	opts := []topology.Option{}

	extra, err := c.extraSettings()
	if err != nil {
		return nil, err
	}

	opts = append(opts, topology.WithExtraSettings(extra))

	if c.SeedCount >= 0 {
		opts = append(opts, topology.WithSeedCount(c.SeedCount))
	}

	if len(c.SeedOrdinals) > 0 {
		opts = append(opts, topology.WithSeedOrdinals(c.SeedOrdinals...))
	}

	if c.ProcessID != constants.AutoProcessID {
		opts = append(opts, topology.WithProcessID(c.ProcessID))
	}

	if c.Mode != "" {
		mode, err := topology.ParseNodeMode(c.Mode)
		if err != nil {
			return nil, err
		}

		opts = append(opts, topology.WithDefaultNodeMode(mode))
	}

	if c.RandomSeed != 0 {
		opts = append(opts, topology.WithRandom(random.NewSeeded(c.RandomSeed)))
	}

	return opts, nil
}

func (c *Config) extraSettings() (settings.Settings, error) {
	layer := settings.Empty()

	if c.SettingsFile != "" {
		fromFile, err := LoadSettingsFile(c.SettingsFile)
		if err != nil {
			return settings.Settings{}, err
		}

		layer = fromFile
	}

	if len(c.Settings) > 0 {
		inline, err := settings.FromMap(c.Settings)
		if err != nil {
			return settings.Settings{}, err
		}

		layer = settings.Merge(layer, inline)
	}

	return layer, nil
}

// NewFromConfig builds the topology described by cfg.
func NewFromConfig(cfg *Config) (*HyperTopo, error) {
	if cfg == nil {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "cfg")
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	if !cfg.Unicast {
		topo, err := topology.New(cfg.Nodes, opts...)
		if err != nil {
			return nil, err
		}

		return New(topo), nil
	}

	scope, err := topology.ParseScope(cfg.Scope)
	if err != nil {
		return nil, err
	}

	return NewUnicast(cfg.Nodes, scope, opts...)
}

// LoadSettingsFile decodes a settings layer, picking the serializer from the file extension.
func LoadSettingsFile(path string) (settings.Settings, error) {
	name, err := serializerForPath(path)
	if err != nil {
		return settings.Settings{}, err
	}

	ser, err := serializer.New(name)
	if err != nil {
		return settings.Settings{}, err
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return settings.Settings{}, ewrap.Wrapf(err, "failed to read settings file %s", path)
	}

	return serializer.UnmarshalSettings(ser, data)
}

func serializerForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return serializer.TypeJSON, nil
	case ".yaml", ".yml":
		return serializer.TypeYAML, nil
	case ".msgpack", ".mp":
		return serializer.TypeMsgpack, nil
	case ".cbor":
		return serializer.TypeCBOR, nil
	}

	return "", ewrap.Wrapf(sentinel.ErrSerializerNotFound, "no serializer for %s", path)
}
