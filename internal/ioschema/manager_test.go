package ioschema_test

import (
	"context"
	"testing"

	"github.com/oceanobs/argodb/internal/iodb"
	"github.com/oceanobs/argodb/internal/ioschema"
	"github.com/oceanobs/argodb/internal/iotesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg := iotesting.GetTestConfig()

	op := iodb.NewPgxOperator()
	err := op.Connect(ctx, &cfg.Database)
	require.NoError(t, err, "Should connect to test database")
	defer op.Close()

	require.NoError(t, op.DropAllTables(ctx))

	sm := ioschema.New(cfg)
	require.NoError(t, sm.Create(ctx))

	for _, table := range []string{
		"float_metadata", "profiles", "measurements",
	} {
		exists, err := op.TableExists(ctx, table)
		require.NoError(t, err)
		assert.True(t, exists, "table %s should exist", table)
	}

	// AutoMigrate is idempotent.
	assert.NoError(t, sm.Create(ctx))
}

func TestCreate_BadConnection(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := iotesting.GetTestConfig()
	cfg.Database.Host = "invalid-host-that-does-not-exist"

	sm := ioschema.New(cfg)
	assert.Error(t, sm.Create(context.Background()))
}
