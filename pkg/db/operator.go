// Package db defines the database operator contract implemented by
// internal/iodb.
package db

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oceanobs/argodb/pkg/config"
)

// Operator defines the interface for basic database management
// operations. It provides connection lifecycle management and exposes
// the pgxpool.Pool so that the ingestion writer can use
// performance-critical features (per-float connection scoping,
// CopyFrom for measurement batches).
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool. The ingester acquires
	// one connection per float from it, bounding connection lifetime
	// to a single float's write sequence.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables in the public
	// schema. Used by schema creation to prompt before dropping.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables in the public schema.
	// Used during schema creation when overwriting existing data.
	DropAllTables(ctx context.Context) error

	// FloatSummaries reports per-float profile and measurement counts
	// for read-only verification. With no IDs it covers every float in
	// the store.
	FloatSummaries(ctx context.Context, floatIDs []int64) ([]FloatSummary, error)
}

// FloatSummary is a read-only per-float tally over the three tables.
type FloatSummary struct {
	PlatformNumber int64
	PIName         sql.NullString
	ProjectName    sql.NullString
	Profiles       int64
	Measurements   int64
	LastProfile    sql.NullTime
}
