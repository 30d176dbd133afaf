// Command b3loader downloads and parses B3 reference data files: the
// instruments file, daily and yearly COTAHIST quote files and the sector
// classification workbook. With --db the records are upserted into
// PostgreSQL.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rickgao/b3-refdata/internal/config"
)

// Flags shared by every subcommand.
var (
	configPath string
	logLevel   string
	envFile    string
	force      bool
	strategy   string
	useDB      bool
)

// Loaded in PersistentPreRunE.
var (
	cfg    *config.Config
	logger *slog.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "b3loader",
	Short: "Load B3 instruments, quotes and sector classification",
	Long: `b3loader keeps a local cache of the files B3 publishes, parses them into
typed records, joins instruments with the sector classification table and
optionally upserts everything into PostgreSQL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		if err := loadEnv(envFile); err != nil {
			return err
		}

		var err error
		cfg, err = loadConfig(configPath)
		if err != nil {
			return err
		}
		if err := applyFlags(cmd, cfg); err != nil {
			return err
		}

		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: cfg.Log.SlogLevel(),
		}))
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "configs/b3loader.yaml", "config file path")
	pf.StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config, ignored if missing")
	pf.BoolVar(&force, "force", false, "refetch files even when cached")
	pf.StringVar(&strategy, "strategy", "", "file layout override (current, legacy)")
	pf.BoolVar(&useDB, "db", false, "upsert loaded records into the configured database")

	rootCmd.AddCommand(versionCmd, instrumentsCmd, quotesCmd, historicCmd, sectorsCmd, prefetchCmd)
}

// loadEnv loads a dotenv file into the environment. Variables already set
// win over the file.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	c, err := config.LoadWithDefaults(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return c, nil
}

// applyFlags layers command-line overrides on the config and validates the
// result.
func applyFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		c.Log.Level = logLevel
	}
	if flags.Changed("strategy") {
		c.Reader.Strategy = strategy
	}
	if flags.Changed("force") {
		c.ForceRefresh = force
	}
	if flags.Changed("db") {
		c.Database.Enabled = useDB
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}
