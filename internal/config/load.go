package config

import (
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/lgbarn/pgn-ingest-go/internal/errors"
)

// EnvPrefix is the prefix for environment overrides, e.g. PGNINGEST_STORE_TABLE.
const EnvPrefix = "PGNINGEST"

// SetDefaults registers every configuration key with its default so that
// environment variables and Unmarshal see the full key set.
func SetDefaults(v *viper.Viper) {
	d := NewConfig()
	v.SetDefault("verbosity", d.Verbosity)
	v.SetDefault("jobs", d.Jobs)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("selection.start", d.Selection.Start)
	v.SetDefault("selection.end", d.Selection.End)
	v.SetDefault("selection.skip_first", d.Selection.SkipFirst)
	v.SetDefault("selection.count", d.Selection.Count)
	v.SetDefault("output.format", string(d.Output.Format))
	v.SetDefault("output.path", d.Output.Path)
	v.SetDefault("output.max_line_length", d.Output.MaxLineLength)
	v.SetDefault("output.split", d.Output.Split)
	v.SetDefault("store.backend", string(d.Store.Backend))
	v.SetDefault("store.postgres_uri", d.Store.PostgresURI)
	v.SetDefault("store.sqlite_path", d.Store.SQLitePath)
	v.SetDefault("store.table", d.Store.Table)
	v.SetDefault("store.rate", d.Store.Rate)
	v.SetDefault("store.burst", d.Store.Burst)
	v.SetDefault("duplicate.suppress", d.Duplicate.Suppress)
	v.SetDefault("duplicate.capacity", d.Duplicate.Capacity)
}

// BindEnv enables PGNINGEST_* overrides, mapping nested keys with '_'.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load builds a validated Config from v. Streams keep their defaults.
func Load(v *viper.Viper) (*Config, error) {
	cfg := NewConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Dump renders the serializable part of cfg as YAML.
func Dump(cfg *Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, "marshal configuration")
	}
	return string(data), nil
}
