// Package iotesting provides shared test utilities for integration
// tests. This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"testing"

	"github.com/oceanobs/argodb/internal/ioconfig"
	"github.com/oceanobs/argodb/pkg/config"
)

// TestDatabaseName is the database name used for all integration
// tests. This ensures tests never accidentally run against production
// databases.
const TestDatabaseName = "argo_test"

// GetTestConfig returns a configuration suitable for integration
// tests. It loads the standard config (from file or defaults) and
// overrides the database name to TestDatabaseName for safety.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	result, err := ioconfig.Load("")

	var cfg *config.Config
	if err != nil {
		cfg = config.New()
	} else {
		cfg = result.Config
	}

	// Always use test database for safety
	cfg.Database.Database = TestDatabaseName

	return cfg
}

// GetTestDatabaseConfig returns the database part of the test
// configuration for tests that only need a connection.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// SetupTempConfigDir creates a temporary config directory for a test
// and points ARGODB_CONFIG_DIR at it, so tests never touch the real
// ~/.config/argodb. Cleanup is automatic via t.Cleanup.
func SetupTempConfigDir(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()

	original := os.Getenv("ARGODB_CONFIG_DIR")
	if err := os.Setenv("ARGODB_CONFIG_DIR", tempDir); err != nil {
		t.Fatalf("Failed to set ARGODB_CONFIG_DIR: %v", err)
	}

	t.Cleanup(func() {
		if original != "" {
			os.Setenv("ARGODB_CONFIG_DIR", original)
		} else {
			os.Unsetenv("ARGODB_CONFIG_DIR")
		}
	})

	return tempDir
}
