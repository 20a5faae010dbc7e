package config

import (
	"fmt"

	"github.com/lgbarn/pgn-ingest-go/internal/errors"
)

// DuplicateConfig holds settings for fingerprint-based duplicate detection.
type DuplicateConfig struct {
	// Suppress drops games whose move list was already seen in this run
	Suppress bool `yaml:"suppress" mapstructure:"suppress"`

	// Capacity bounds the fingerprint index; 0 is unbounded
	Capacity int `yaml:"capacity" mapstructure:"capacity"`
}

// NewDuplicateConfig creates a DuplicateConfig with default values.
func NewDuplicateConfig() *DuplicateConfig {
	return &DuplicateConfig{}
}

// Validate checks the capacity.
func (d *DuplicateConfig) Validate() error {
	if d.Capacity < 0 {
		return fmt.Errorf("duplicate capacity (%d) must not be negative: %w", d.Capacity, errors.ErrInvalidConfig)
	}
	return nil
}
