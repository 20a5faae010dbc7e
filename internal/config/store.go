package config

import (
	"fmt"
	"regexp"

	"github.com/lgbarn/pgn-ingest-go/internal/errors"
)

// Backend names a persistence target.
type Backend string

const (
	Postgres Backend = "postgres"
	SQLite   Backend = "sqlite"
)

// DefaultPostgresURI is used when no URI is configured.
const DefaultPostgresURI = "postgres://localhost/mudfish"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// StoreConfig holds settings for the store command.
type StoreConfig struct {
	Backend     Backend `yaml:"backend" mapstructure:"backend"`
	PostgresURI string  `yaml:"postgres_uri" mapstructure:"postgres_uri"`
	SQLitePath  string  `yaml:"sqlite_path" mapstructure:"sqlite_path"`
	Table       string  `yaml:"table" mapstructure:"table"`

	// Rate limits upserts per second; 0 is unlimited
	Rate float64 `yaml:"rate" mapstructure:"rate"`

	// Burst is the token bucket size when Rate is set
	Burst int `yaml:"burst" mapstructure:"burst"`
}

// NewStoreConfig creates a StoreConfig with default values.
func NewStoreConfig() *StoreConfig {
	return &StoreConfig{
		Backend:     Postgres,
		PostgresURI: DefaultPostgresURI,
		SQLitePath:  "pgn.db",
		Table:       "pgn",
		Burst:       1,
	}
}

// Validate checks the backend, table name and rate.
func (s *StoreConfig) Validate() error {
	switch s.Backend {
	case Postgres, SQLite:
	default:
		return fmt.Errorf("%q: %w", s.Backend, errors.ErrUnsupportedBackend)
	}
	if err := ValidateTable(s.Table); err != nil {
		return err
	}
	if s.Rate < 0 || s.Burst < 0 {
		return fmt.Errorf("rate (%g) and burst (%d) must not be negative: %w", s.Rate, s.Burst, errors.ErrInvalidConfig)
	}
	return nil
}

// ValidateTable checks that name can be used as an unquoted SQL identifier.
func ValidateTable(name string) error {
	if !tableName.MatchString(name) {
		return fmt.Errorf("invalid table name %q: %w", name, errors.ErrInvalidConfig)
	}
	return nil
}
