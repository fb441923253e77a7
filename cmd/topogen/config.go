package main

import (
	"errors"
	"strings"

	"github.com/hyp3rd/ewrap"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hyp3rd/hypertopo"
	"github.com/hyp3rd/hypertopo/internal/constants"
	"github.com/hyp3rd/hypertopo/internal/sentinel"
)

// bindFlags registers the persistent flags and binds them to viper keys.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	def := hypertopo.NewConfig()
	f := cmd.PersistentFlags()

	f.String("config", "", "config file path (json, yaml, toml)")
	f.Int("nodes", def.Nodes, "number of nodes")
	f.Bool("unicast", def.Unicast, "pin seeds and addresses instead of relying on multicast")
	f.String("scope", def.Scope, "port scope (global, suite, test)")
	f.Int("seeds", def.SeedCount, "number of random seed nodes (negative: every node)")
	f.IntSlice("seed-ordinals", nil, "explicit seed ordinals")
	f.Int("process-id", def.ProcessID, "process id for port separation (-1: detect)")
	f.String("mode", def.Mode, "default node mode (embedded, networked)")
	f.Uint64("random-seed", def.RandomSeed, "seed for reproducible draws (0: random)")
	f.String("settings-file", "", "extra settings document (json, yaml, msgpack, cbor)")
	f.StringArray("set", nil, "extra setting as key=value, repeatable")
	f.StringP("output", "o", constants.DefaultSerializer, "output format (text, json, yaml, msgpack, cbor)")
	f.String("log-level", "warn", "log level (debug, info, warn, error)")
	f.String("log-format", "text", "log format (json, text)")
	f.String("otlp-endpoint", "", "OTLP collector endpoint; tracing is off when empty")
	f.String("otlp-protocol", "http", "OTLP protocol (http, grpc)")
	f.Bool("metrics", false, "print call metrics to stderr on exit")

	for key, flag := range map[string]string{
		"nodes":                       "nodes",
		"unicast":                     "unicast",
		"scope":                       "scope",
		"seed_count":                  "seeds",
		"seed_ordinals":               "seed-ordinals",
		"process_id":                  "process-id",
		"mode":                        "mode",
		"random_seed":                 "random-seed",
		"settings_file":               "settings-file",
		"output":                      "output",
		"observability.log_level":     "log-level",
		"observability.log_format":    "log-format",
		"observability.otlp_endpoint": "otlp-endpoint",
		"observability.otlp_protocol": "otlp-protocol",
		"observability.metrics":       "metrics",
	} {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}
}

// loadConfig reads the config file and environment, then decodes the topology configuration.
func loadConfig(v *viper.Viper, configFile string, sets []string) (*hypertopo.Config, error) {
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)

		err := v.ReadInConfig()
		if err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, ewrap.Wrapf(err, "read config %s", configFile)
			}
		}
	}

	cfg := hypertopo.NewConfig()

	err := v.Unmarshal(cfg)
	if err != nil {
		return nil, ewrap.Wrap(err, "decode config")
	}

	extra, err := parseSets(sets)
	if err != nil {
		return nil, err
	}

	if len(extra) > 0 {
		if cfg.Settings == nil {
			cfg.Settings = map[string]any{}
		}

		for k, val := range extra {
			cfg.Settings[k] = val
		}
	}

	return cfg, nil
}

// parseSets turns key=value pairs into a settings map. A later pair wins over an earlier one.
func parseSets(sets []string) (map[string]any, error) {
	out := make(map[string]any, len(sets))
	for _, kv := range sets {
		key, val, ok := strings.Cut(kv, "=")

		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, ewrap.Wrapf(sentinel.ErrInvalidSettingValue, "--set %q: expected key=value", kv)
		}

		out[key] = val
	}

	return out, nil
}
