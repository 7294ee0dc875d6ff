package argo

import (
	"context"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate, so creation is idempotent - safe to run
// multiple times. The ingestion pipeline itself assumes the tables
// already exist; only the CLI's create command goes through this.
type SchemaManager interface {
	// Create creates or updates the three ingestion tables.
	Create(ctx context.Context) error
}
