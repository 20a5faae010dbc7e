package config

import (
	"fmt"

	"github.com/lgbarn/pgn-ingest-go/internal/errors"
)

// SelectionConfig picks which accepted games of an archive are emitted.
// Games are counted from 1; zero bounds are open.
type SelectionConfig struct {
	// Start is the first game emitted
	Start int `yaml:"start" mapstructure:"start"`

	// End stops the archive after this game
	End int `yaml:"end" mapstructure:"end"`

	// SkipFirst drops this many leading games before storing
	SkipFirst int `yaml:"skip_first" mapstructure:"skip_first"`

	// Count prints the number of accepted games per archive
	Count bool `yaml:"count" mapstructure:"count"`
}

// NewSelectionConfig creates a SelectionConfig with default values.
// All fields use Go zero values - every game is selected.
func NewSelectionConfig() *SelectionConfig {
	return &SelectionConfig{}
}

// Validate checks that the bounds are consistent.
func (s *SelectionConfig) Validate() error {
	if s.Start < 0 || s.End < 0 || s.SkipFirst < 0 {
		return fmt.Errorf("negative game bound: %w", errors.ErrInvalidConfig)
	}
	if s.End > 0 && s.Start > s.End {
		return fmt.Errorf("start (%d) > end (%d): %w", s.Start, s.End, errors.ErrInvalidConfig)
	}
	return nil
}

// Past reports whether game n lies beyond End.
func (s *SelectionConfig) Past(n int) bool {
	return s.End > 0 && n > s.End
}

// Selected reports whether game n is emitted.
func (s *SelectionConfig) Selected(n int) bool {
	return n >= s.Start && n > s.SkipFirst && !s.Past(n)
}
