// Package ioschema implements schema management with GORM AutoMigrate.
// This is an impure I/O package that implements the argo.SchemaManager
// contract from pkg/.
package ioschema

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oceanobs/argodb/internal/iodb"
	"github.com/oceanobs/argodb/pkg/argo"
	"github.com/oceanobs/argodb/pkg/config"
	"github.com/oceanobs/argodb/pkg/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormManager implements argo.SchemaManager.
type gormManager struct {
	cfg *config.Config
}

// New creates a SchemaManager for the configured database.
func New(cfg *config.Config) argo.SchemaManager {
	return &gormManager{cfg: cfg}
}

// Create runs GORM AutoMigrate for all ingestion tables.
func (m *gormManager) Create(ctx context.Context) error {
	dsn := iodb.DSN(&m.cfg.Database)

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect with GORM: %w", err)
	}
	defer func() {
		if sqlDB, dbErr := gdb.DB(); dbErr == nil {
			sqlDB.Close()
		}
	}()

	if err := schema.Migrate(gdb.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	slog.Info("Schema created",
		"database", m.cfg.Database.Database,
		"tables", len(schema.AllModels()),
	)
	return nil
}
