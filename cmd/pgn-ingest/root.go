package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lgbarn/pgn-ingest-go/internal/config"
)

// app carries the state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	stdout  io.Writer
	stderr  io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		v:      viper.New(),
		stdout: stdout,
		stderr: stderr,
	}
	config.SetDefaults(a.v)
	defaults := config.NewConfig()

	root := &cobra.Command{
		Use:   "pgn-ingest",
		Short: "Stream, validate and store PGN chess archives",
		Long: `pgn-ingest reads PGN archives (plain, .bz2, .gz or .zst) one game at a time,
checks that every game's movetext is complete and consistent with its Result
tag, and prints, counts or stores the accepted games.

Configuration hierarchy (highest to lowest priority):
  1. CLI flags
  2. Environment variables (PGNINGEST_*)
  3. Config file (~/.pgn-ingest/config.yaml or --config)
  4. Defaults`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.pgn-ingest/config.yaml)")
	flags.IntP("verbosity", "v", defaults.Verbosity, "0 quiet, 1 rejected games and summary, 2 progress")
	flags.Int("jobs", defaults.Jobs, "archives processed in parallel")
	flags.Uint64("seed", defaults.Seed, "fingerprint seed")
	flags.Bool("dedupe", defaults.Duplicate.Suppress, "skip games whose move list was already seen in this run")
	flags.Int("dedupe-capacity", defaults.Duplicate.Capacity, "maximum fingerprints remembered (0 = unbounded)")
	a.bind(root, "verbosity", "verbosity")
	a.bind(root, "jobs", "jobs")
	a.bind(root, "seed", "seed")
	a.bind(root, "duplicate.suppress", "dedupe")
	a.bind(root, "duplicate.capacity", "dedupe-capacity")

	root.AddCommand(
		a.newReadCmd(defaults),
		a.newValidateCmd(),
		a.newCountCmd(),
		a.newStoreCmd(defaults),
		a.newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// bind maps a persistent or local flag onto a configuration key.
func (a *app) bind(cmd *cobra.Command, key, flag string) {
	f := cmd.Flags().Lookup(flag)
	if f == nil {
		f = cmd.PersistentFlags().Lookup(flag)
	}
	_ = a.v.BindPFlag(key, f)
}

// initConfig reads in config file and ENV variables.
func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".pgn-ingest"))
		}
		a.v.SetConfigType("yaml")
		a.v.SetConfigName("config")
	}

	config.BindEnv(a.v)

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// loadConfig builds the effective configuration with streams attached.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.v)
	if err != nil {
		return nil, err
	}
	cfg.OutputFile = a.stdout
	cfg.LogFile = a.stderr
	if used := a.v.ConfigFileUsed(); used != "" {
		cfg.Logf(2, "Using config file: %s\n", used)
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pgn-ingest v%s\n", programVersion)
		},
	}
}
