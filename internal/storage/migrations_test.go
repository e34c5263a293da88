package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradesVersionOneDatabase applies only the first migration,
// stores a report and then lets Migrate bring the schema up to date.
func TestMigrate_UpgradesVersionOneDatabase(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)

	tx, err := store.db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, migrations[0].Up(tx))
	_, err = tx.Exec("PRAGMA user_version = 1")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	id, err := store.SaveReport(ctx, testQuery("Bayern München"), testReport("DAZN"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(ctx, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	entry, err := store.GetReport(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bayern München"}, entry.Teams)
}

func TestMigrate_RejectsNewerSchema(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.db.Exec("PRAGMA user_version = 99")
	require.NoError(t, err)

	err = store.Migrate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema version mismatch")
}

func TestMigrations_AreOrdered(t *testing.T) {
	for i, m := range migrations {
		assert.Equal(t, i+1, m.Version, "migration %q", m.Description)
		assert.NotEmpty(t, m.Description)
		assert.NotNil(t, m.Up)
	}
	assert.Equal(t, len(migrations), ExpectedSchemaVersion)
}
