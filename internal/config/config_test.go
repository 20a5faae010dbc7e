package config

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/viper"

	pgnerrors "github.com/lgbarn/pgn-ingest-go/internal/errors"
	"github.com/lgbarn/pgn-ingest-go/internal/hashing"
)

// TestNewConfig_Defaults verifies Config has sensible defaults
func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Verbosity != 1 {
		t.Errorf("Verbosity = %d, want 1", cfg.Verbosity)
	}
	if cfg.Jobs != 1 {
		t.Errorf("Jobs = %d, want 1", cfg.Jobs)
	}
	if cfg.Seed != hashing.DefaultSeed {
		t.Errorf("Seed = %#x, want %#x", cfg.Seed, hashing.DefaultSeed)
	}
	if cfg.Output.Format != TextFormat {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, TextFormat)
	}
	if cfg.Store.Backend != Postgres {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, Postgres)
	}
	if cfg.Store.PostgresURI != "postgres://localhost/mudfish" {
		t.Errorf("Store.PostgresURI = %q", cfg.Store.PostgresURI)
	}
	if cfg.Store.Table != "pgn" {
		t.Errorf("Store.Table = %q, want pgn", cfg.Store.Table)
	}
	if cfg.Duplicate.Suppress {
		t.Error("Duplicate.Suppress should be false by default")
	}
	if cfg.OutputFile == nil || cfg.LogFile == nil {
		t.Error("default streams should be set")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

// TestConfig_Validate verifies each section is checked
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"zero jobs", func(c *Config) { c.Jobs = 0 }, pgnerrors.ErrInvalidConfig},
		{"negative verbosity", func(c *Config) { c.Verbosity = -1 }, pgnerrors.ErrInvalidConfig},
		{"start after end", func(c *Config) { c.Selection.Start, c.Selection.End = 10, 5 }, pgnerrors.ErrInvalidConfig},
		{"negative skip", func(c *Config) { c.Selection.SkipFirst = -1 }, pgnerrors.ErrInvalidConfig},
		{"bad format", func(c *Config) { c.Output.Format = "xml" }, pgnerrors.ErrInvalidConfig},
		{"split json array", func(c *Config) { c.Output.Format, c.Output.Split = JSONArrayFormat, 10 }, pgnerrors.ErrInvalidConfig},
		{"bad backend", func(c *Config) { c.Store.Backend = "mongo" }, pgnerrors.ErrUnsupportedBackend},
		{"bad table", func(c *Config) { c.Store.Table = "pgn; DROP TABLE x" }, pgnerrors.ErrInvalidConfig},
		{"negative rate", func(c *Config) { c.Store.Rate = -1 }, pgnerrors.ErrInvalidConfig},
		{"negative capacity", func(c *Config) { c.Duplicate.Capacity = -1 }, pgnerrors.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.target) {
				t.Errorf("Validate() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestValidateTable(t *testing.T) {
	for _, name := range []string{"pgn", "_games", "Games2013"} {
		if err := ValidateTable(name); err != nil {
			t.Errorf("ValidateTable(%q) = %v, want nil", name, err)
		}
	}
	for _, name := range []string{"", "2013", "pgn-games", "pgn games", `pgn"`} {
		if err := ValidateTable(name); err == nil {
			t.Errorf("ValidateTable(%q) = nil, want error", name)
		}
	}
}

func TestSelectionConfig(t *testing.T) {
	tests := []struct {
		name     string
		sel      SelectionConfig
		selected []int
		past     int // first game past the end, 0 if none in 1..6
	}{
		{"all", SelectionConfig{}, []int{1, 2, 3, 4, 5, 6}, 0},
		{"start", SelectionConfig{Start: 3}, []int{3, 4, 5, 6}, 0},
		{"end", SelectionConfig{End: 2}, []int{1, 2}, 3},
		{"window", SelectionConfig{Start: 2, End: 4}, []int{2, 3, 4}, 5},
		{"skip first", SelectionConfig{SkipFirst: 4}, []int{5, 6}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			past := 0
			for n := 1; n <= 6; n++ {
				if tt.sel.Selected(n) {
					got = append(got, n)
				}
				if past == 0 && tt.sel.Past(n) {
					past = n
				}
			}
			if len(got) != len(tt.selected) {
				t.Fatalf("selected = %v, want %v", got, tt.selected)
			}
			for i := range got {
				if got[i] != tt.selected[i] {
					t.Fatalf("selected = %v, want %v", got, tt.selected)
				}
			}
			if past != tt.past {
				t.Errorf("first past = %d, want %d", past, tt.past)
			}
		})
	}
}

func TestConfigBuilder(t *testing.T) {
	var out, log bytes.Buffer
	cfg := NewConfigBuilder().
		WithOutputFormat(JSONFormat).
		WithRange(2, 9).
		WithSkipFirst(1).
		WithCount(true).
		WithDuplicateSuppression(true, 1000).
		WithBackend(SQLite, "games").
		WithSQLitePath("/tmp/x.db").
		WithRate(50, 5).
		WithJobs(4).
		WithSeed(7).
		WithOutput(&out).
		WithLog(&log).
		WithVerbosity(2).
		Build()

	if cfg.Output.Format != JSONFormat {
		t.Errorf("Output.Format = %q", cfg.Output.Format)
	}
	if cfg.Selection != (SelectionConfig{Start: 2, End: 9, SkipFirst: 1, Count: true}) {
		t.Errorf("Selection = %+v", cfg.Selection)
	}
	if !cfg.Duplicate.Suppress || cfg.Duplicate.Capacity != 1000 {
		t.Errorf("Duplicate = %+v", cfg.Duplicate)
	}
	if cfg.Store.Backend != SQLite || cfg.Store.Table != "games" || cfg.Store.SQLitePath != "/tmp/x.db" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Store.Rate != 50 || cfg.Store.Burst != 5 {
		t.Errorf("Store rate = %g/%d", cfg.Store.Rate, cfg.Store.Burst)
	}
	if cfg.Jobs != 4 || cfg.Seed != 7 || cfg.Verbosity != 2 {
		t.Errorf("Jobs/Seed/Verbosity = %d/%d/%d", cfg.Jobs, cfg.Seed, cfg.Verbosity)
	}
	if cfg.OutputFile != &out || cfg.LogFile != &log {
		t.Error("streams not set")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLogf(t *testing.T) {
	var log bytes.Buffer
	cfg := NewConfigBuilder().WithLog(&log).WithVerbosity(1).Build()

	cfg.Logf(1, "summary %d\n", 3)
	cfg.Logf(2, "progress\n")

	if got := log.String(); got != "summary 3\n" {
		t.Errorf("log = %q, want %q", got, "summary 3\n")
	}

	cfg.LogFile = nil
	cfg.Logf(0, "dropped\n")
}

func TestLoad_FromYAML(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	yamlText := `
jobs: 3
selection:
  start: 5
store:
  backend: sqlite
  table: games
duplicate:
  suppress: true
`
	if err := v.ReadConfig(strings.NewReader(yamlText)); err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Jobs != 3 || cfg.Selection.Start != 5 {
		t.Errorf("Jobs/Start = %d/%d, want 3/5", cfg.Jobs, cfg.Selection.Start)
	}
	if cfg.Store.Backend != SQLite || cfg.Store.Table != "games" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Store.PostgresURI != DefaultPostgresURI {
		t.Errorf("PostgresURI = %q, want default", cfg.Store.PostgresURI)
	}
	if !cfg.Duplicate.Suppress {
		t.Error("Duplicate.Suppress = false, want true")
	}
	if cfg.OutputFile == nil || cfg.LogFile == nil {
		t.Error("streams should keep defaults")
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PGNINGEST_STORE_TABLE", "lichess")
	t.Setenv("PGNINGEST_JOBS", "8")

	v := viper.New()
	SetDefaults(v)
	BindEnv(v)

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store.Table != "lichess" {
		t.Errorf("Store.Table = %q, want lichess", cfg.Store.Table)
	}
	if cfg.Jobs != 8 {
		t.Errorf("Jobs = %d, want 8", cfg.Jobs)
	}
}

func TestLoad_Invalid(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("store.backend", "mongo")

	if _, err := Load(v); !errors.Is(err, pgnerrors.ErrUnsupportedBackend) {
		t.Errorf("Load() error = %v, want ErrUnsupportedBackend", err)
	}
}

func TestDump(t *testing.T) {
	out, err := Dump(NewConfig())
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	for _, want := range []string{"jobs: 1", "backend: postgres", "table: pgn", "format: text", "skip_first: 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "outputfile") || strings.Contains(out, "logfile") {
		t.Errorf("Dump() should not include streams:\n%s", out)
	}
}
