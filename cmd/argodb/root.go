package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/oceanobs/argodb/internal/ioconfig"
	"github.com/oceanobs/argodb/internal/iofs"
	"github.com/oceanobs/argodb/internal/iologger"
	pkgconfig "github.com/oceanobs/argodb/pkg/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *pkgconfig.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "argodb",
		Short: "argodb ingests Argo float NetCDF files into PostgreSQL",
		Long: `argodb loads Argo float observation files into a PostgreSQL database.

Each float contributes up to two NetCDF files in the data directory:
  <id>_meta.nc  float metadata (launch date, serial number, PI, ...)
  <id>_prof.nc  profiles and measurements, one profile per cycle

Re-downloading and re-ingesting the same float is safe: metadata
merges without erasing known values, profiles keep their first-seen
location and time, and measurement batches are keyed per level.

Commands:
  - create: create the database tables
  - ingest: ingest one float, several floats, or a whole directory
  - status: per-float profile and measurement counts

Configuration precedence (highest to lowest):
  1. CLI flags (--data-dir, etc.)
  2. Environment variables (ARGODB_*)
  3. Config file (~/.config/argodb/config.yaml)
  4. Built-in defaults

Environment Variables:
  All configuration can be set via ARGODB_* environment variables.
  Nested fields use underscores (database.host → ARGODB_DATABASE_HOST).
  A .env file in the working directory is loaded first when present.

  Examples:
    ARGODB_DATABASE_HOST            PostgreSQL host
    ARGODB_DATABASE_PORT            PostgreSQL port
    ARGODB_DATABASE_USER            PostgreSQL user
    ARGODB_DATABASE_PASSWORD        PostgreSQL password
    ARGODB_DATABASE_DATABASE        Database name
    ARGODB_INGEST_DATA_DIR          NetCDF data directory
    ARGODB_LOG_LEVEL                Log level (debug/info/warn/error)`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The original deployment kept its connection settings in a
			// .env file; keep honoring it when present.
			_ = godotenv.Load()

			// Auto-generate config file on first run if it doesn't exist
			if cfgFile == "" {
				exists, err := ioconfig.ConfigFileExists()
				if err != nil {
					return fmt.Errorf("failed to check config file: %w", err)
				}

				if !exists {
					generatedPath, err := ioconfig.GenerateDefaultConfig()
					if err != nil {
						// Only warn, don't fail - can use defaults
						fmt.Printf("Warning: could not generate config file: %v\n", err)
					} else {
						fmt.Printf("Generated default config at: %s\n", generatedPath)
					}
				}
			}

			result, err := ioconfig.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = result.Config

			homeDir, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get user home directory: %w", err)
			}
			cfg.Update([]pkgconfig.Option{pkgconfig.OptHomeDir(homeDir)})

			if err := iofs.EnsureDirs(homeDir); err != nil {
				return err
			}
			logDir := pkgconfig.LogDir(homeDir)
			if err := iologger.Init(logDir, cfg.Log, true); err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}

			switch result.Source {
			case "file":
				fmt.Printf("Using config from: %s\n", result.SourcePath)
			case "defaults+env":
				fmt.Println("Using built-in defaults with environment variable overrides")
			case "defaults":
				fmt.Println("Using built-in defaults (no config file)")
			}

			return nil
		},
	}

	// Persistent flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/argodb/config.yaml)")

	rootCmd.Flags().BoolP("version", "V", false, "version for argodb")

	rootCmd.AddCommand(getCreateCmd())
	rootCmd.AddCommand(getIngestCmd())
	rootCmd.AddCommand(getStatusCmd())

	return rootCmd
}

// getConfig returns the loaded configuration (for use in subcommands)
func getConfig() *pkgconfig.Config {
	return cfg
}
