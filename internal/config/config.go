// Package config provides configuration for pgn-ingest.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/pgn-ingest-go/internal/errors"
	"github.com/lgbarn/pgn-ingest-go/internal/hashing"
)

// Config holds all program configuration.
//
// Streams are runtime-only and never serialized; everything else can come
// from defaults, a YAML file, PGNINGEST_* environment variables or flags.
type Config struct {
	// Verbosity: 0=nothing, 1=summary per archive, 2=running progress
	Verbosity int `yaml:"verbosity" mapstructure:"verbosity"`

	// Jobs is the number of archives processed in parallel
	Jobs int `yaml:"jobs" mapstructure:"jobs"`

	// Seed keys the move-list fingerprint
	Seed uint64 `yaml:"seed" mapstructure:"seed"`

	Selection SelectionConfig `yaml:"selection" mapstructure:"selection"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Duplicate DuplicateConfig `yaml:"duplicate" mapstructure:"duplicate"`

	// Output streams
	OutputFile io.Writer `yaml:"-" mapstructure:"-"`
	LogFile    io.Writer `yaml:"-" mapstructure:"-"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Jobs:       1,
		Seed:       hashing.DefaultSeed,
		Selection:  *NewSelectionConfig(),
		Output:     *NewOutputConfig(),
		Store:      *NewStoreConfig(),
		Duplicate:  *NewDuplicateConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("jobs (%d) must be at least 1: %w", c.Jobs, errors.ErrInvalidConfig)
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity (%d) must not be negative: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	if err := c.Selection.Validate(); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	return c.Duplicate.Validate()
}

// Logf writes a diagnostic line when Verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c.LogFile == nil || c.Verbosity < level {
		return
	}
	fmt.Fprintf(c.LogFile, format, args...)
}
