package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithOutputFormat sets the output format.
func (b *ConfigBuilder) WithOutputFormat(format OutputFormat) *ConfigBuilder {
	b.cfg.Output.Format = format
	return b
}

// WithRange sets the first and last emitted game.
func (b *ConfigBuilder) WithRange(start, end int) *ConfigBuilder {
	b.cfg.Selection.Start = start
	b.cfg.Selection.End = end
	return b
}

// WithSkipFirst drops the first n games of each archive.
func (b *ConfigBuilder) WithSkipFirst(n int) *ConfigBuilder {
	b.cfg.Selection.SkipFirst = n
	return b
}

// WithCount enables per-archive game counts.
func (b *ConfigBuilder) WithCount(enabled bool) *ConfigBuilder {
	b.cfg.Selection.Count = enabled
	return b
}

// WithDuplicateSuppression enables duplicate suppression.
func (b *ConfigBuilder) WithDuplicateSuppression(enabled bool, capacity int) *ConfigBuilder {
	b.cfg.Duplicate.Suppress = enabled
	b.cfg.Duplicate.Capacity = capacity
	return b
}

// WithBackend sets the store backend and table.
func (b *ConfigBuilder) WithBackend(backend Backend, table string) *ConfigBuilder {
	b.cfg.Store.Backend = backend
	b.cfg.Store.Table = table
	return b
}

// WithSQLitePath sets the SQLite database path.
func (b *ConfigBuilder) WithSQLitePath(path string) *ConfigBuilder {
	b.cfg.Store.SQLitePath = path
	return b
}

// WithRate limits store upserts per second.
func (b *ConfigBuilder) WithRate(rate float64, burst int) *ConfigBuilder {
	b.cfg.Store.Rate = rate
	b.cfg.Store.Burst = burst
	return b
}

// WithJobs sets the number of archives processed in parallel.
func (b *ConfigBuilder) WithJobs(n int) *ConfigBuilder {
	b.cfg.Jobs = n
	return b
}

// WithSeed sets the fingerprint seed.
func (b *ConfigBuilder) WithSeed(seed uint64) *ConfigBuilder {
	b.cfg.Seed = seed
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the diagnostics writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
