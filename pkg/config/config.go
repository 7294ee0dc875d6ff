// Package config provides configuration management for argodb.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Loading configuration from files and environment variables is
// done by internal/ioconfig.
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults.
//
// # Design Principles
//
//   - Default config (from New()) is always valid - no validation needed
//   - All mutations go through Option functions - the only way to modify
//     Config
//   - Invalid options are rejected with a warning - config remains in a
//     valid state
//
// # Environment Variables
//
// Use the ARGODB_ prefix with underscores for nesting:
//
//	ARGODB_DATABASE_HOST=localhost
//	ARGODB_DATABASE_PORT=5432
//	ARGODB_INGEST_DATA_DIR=/var/lib/argo/netcdf
//	ARGODB_LOG_LEVEL=info
package config

// Config represents the complete argodb configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Ingest contains settings specific to the ingest command.
	Ingest IngestConfig `mapstructure:"ingest" yaml:"ingest"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config and log directories reside.
	// It must be set by the CLI during init, there is no default for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize caps the number of measurement rows sent to the server
	// in one bulk operation. A whole profile rarely exceeds a few
	// thousand levels, so the default is generous.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// IngestConfig contains settings specific to the ingest command.
type IngestConfig struct {
	// DataDir is the directory with downloaded NetCDF files. Each float
	// contributes up to two files there: <id>_meta.nc and <id>_prof.nc.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// Replace enables delete-then-insert of measurements per profile.
	// Without it a re-ingested profile whose level count changed fails
	// on the measurements primary key. Runtime-only, set by CLI flag.
	Replace bool
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "argo",
			SSLMode:   "disable",
			BatchSize: 10_000,
		},
		Ingest: IngestConfig{
			DataDir: "netcdf_data",
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
	}

	return res
}
