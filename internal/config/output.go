package config

import (
	"fmt"

	"github.com/lgbarn/pgn-ingest-go/internal/errors"
)

// OutputFormat selects how accepted games are printed.
type OutputFormat string

const (
	TextFormat      OutputFormat = "text"       // id, blank line, raw tags, raw moves
	PGNFormat       OutputFormat = "pgn"        // tags and moves re-rendered as export PGN
	JSONFormat      OutputFormat = "json"       // one JSON object per line
	JSONArrayFormat OutputFormat = "json-array" // one {"records": [...]} document at the end
)

// OutputConfig holds settings related to printing games.
type OutputConfig struct {
	// Format is "text", "pgn", "json" or "json-array"
	Format OutputFormat `yaml:"format" mapstructure:"format"`

	// Path redirects output to a file; empty means stdout
	Path string `yaml:"path" mapstructure:"path"`

	// MaxLineLength wraps movetext in pgn format
	MaxLineLength int `yaml:"max_line_length" mapstructure:"max_line_length"`

	// Split starts a new numbered output file every Split games; 0 disables
	Split int `yaml:"split" mapstructure:"split"`
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:        TextFormat,
		MaxLineLength: 80,
	}
}

// Validate checks the format name.
func (o *OutputConfig) Validate() error {
	switch o.Format {
	case TextFormat, PGNFormat, JSONFormat:
	case JSONArrayFormat:
		if o.Split > 0 {
			return fmt.Errorf("%s output cannot be split: %w", o.Format, errors.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("unknown output format %q: %w", o.Format, errors.ErrInvalidConfig)
	}
	if o.Split < 0 {
		return fmt.Errorf("split (%d) must not be negative: %w", o.Split, errors.ErrInvalidConfig)
	}
	if o.MaxLineLength < 0 {
		return fmt.Errorf("max line length (%d) must not be negative: %w", o.MaxLineLength, errors.ErrInvalidConfig)
	}
	return nil
}
