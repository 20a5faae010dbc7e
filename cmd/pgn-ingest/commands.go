package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lgbarn/pgn-ingest-go/internal/config"
	"github.com/lgbarn/pgn-ingest-go/internal/store"
)

func (a *app) newReadCmd(defaults *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <file>...",
		Short: "Print accepted games",
		Long: `Read prints every accepted game. The text format reproduces the raw tag
and movetext blocks under the game's identifier; pgn re-renders them as
export PGN; json writes one object per line and json-array one document
holding every game.

Example:
  pgn-ingest read lichess_db_standard_rated_2013-01.pgn.bz2 --start 10 --end 20
  pgn-ingest read games.pgn --format json --output games.jsonl`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, modeRead, args)
		},
	}

	flags := cmd.Flags()
	flags.Int("start", defaults.Selection.Start, "first game to print (1-based)")
	flags.Int("end", defaults.Selection.End, "last game to print (0 = all)")
	flags.Bool("count", defaults.Selection.Count, "print the number of accepted games")
	flags.String("format", string(defaults.Output.Format), "output format: text, pgn, json or json-array")
	flags.StringP("output", "o", defaults.Output.Path, "write games to this file instead of stdout")
	flags.Int("split", defaults.Output.Split, "start a new numbered output file every N games")
	flags.Int("max-line-length", defaults.Output.MaxLineLength, "movetext width for pgn format")
	a.bind(cmd, "selection.start", "start")
	a.bind(cmd, "selection.end", "end")
	a.bind(cmd, "selection.count", "count")
	a.bind(cmd, "output.format", "format")
	a.bind(cmd, "output.path", "output")
	a.bind(cmd, "output.split", "split")
	a.bind(cmd, "output.max_line_length", "max-line-length")
	return cmd
}

func (a *app) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check archives and report rejected games",
		Long: `Validate reads every archive to the end, logging each rejected game with
its line number and reason. It fails when an archive is structurally broken
or cut short.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, modeValidate, args)
		},
	}
}

func (a *app) newCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count <file>...",
		Short: "Print the number of accepted games",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			cfg.Selection = *config.NewSelectionConfig()
			cfg.Selection.Count = true
			return run(cmd.Context(), cfg, modeCount, args)
		},
	}
}

func (a *app) newStoreCmd(defaults *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store <file>...",
		Short: "Upsert accepted games into a database",
		Long: `Store writes every accepted game to a Postgres or SQLite table keyed by
the game identifier, so re-running over the same archive updates rows in
place. The table is created on first use.

Example:
  pgn-ingest store lichess_db_standard_rated_2013-01.pgn.bz2 --postgres-uri postgres://localhost/mudfish
  pgn-ingest store games.pgn --backend sqlite --sqlite-path games.db --table games`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			st, err := store.Open(cmd.Context(), &cfg.Store)
			if err != nil {
				return err
			}
			defer st.Close()
			cfg.Logf(2, "Storing into %s table %s\n", cfg.Store.Backend, cfg.Store.Table)
			return run(cmd.Context(), cfg, modeStore, args, withStore(st))
		},
	}

	flags := cmd.Flags()
	flags.String("backend", string(defaults.Store.Backend), "storage backend: postgres or sqlite")
	flags.String("postgres-uri", defaults.Store.PostgresURI, "Postgres connection URI")
	flags.String("sqlite-path", defaults.Store.SQLitePath, "SQLite database file")
	flags.String("table", defaults.Store.Table, "table name")
	flags.Int("skip-first", defaults.Selection.SkipFirst, "skip this many games at the start of each archive")
	flags.Float64("rate", defaults.Store.Rate, "maximum upserts per second (0 = unlimited)")
	flags.Int("burst", defaults.Store.Burst, "upsert burst size when --rate is set")
	a.bind(cmd, "store.backend", "backend")
	a.bind(cmd, "store.postgres_uri", "postgres-uri")
	a.bind(cmd, "store.sqlite_path", "sqlite-path")
	a.bind(cmd, "store.table", "table")
	a.bind(cmd, "selection.skip_first", "skip-first")
	a.bind(cmd, "store.rate", "rate")
	a.bind(cmd, "store.burst", "burst")
	return cmd
}

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect pgn-ingest configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  `Display the effective configuration after defaults, config file, environment and flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			if used := a.v.ConfigFileUsed(); used != "" {
				fmt.Fprintf(a.stderr, "Configuration file: %s\n\n", used)
			} else {
				fmt.Fprintf(a.stderr, "No configuration file found (using defaults)\n\n")
			}

			text, err := config.Dump(cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	})
	return cmd
}
