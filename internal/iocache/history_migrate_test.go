package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/featlens/featlens/schema"
)

func historyTableNames(t *testing.T, dbPath string) map[string]bool {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type = 'table'")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	names := make(map[string]bool)
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names[name] = true
	}
	require.NoError(t, rows.Err())
	return names
}

func TestMigrateHistorySQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	// Migrate up to the latest version
	err := MigrateHistory(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err, "Migrating up should not fail")

	tables := historyTableNames(t, dbPath)
	assert.True(t, tables[runsTableName], "Runs table should exist after migrating up")
	assert.True(t, tables[statsTableName], "Stats table should exist after migrating up")
	assert.True(t, tables["schema_migrations"], "Migration bookkeeping table should exist")

	// Migrating up again is a no-op
	err = MigrateHistory(schema.SQLiteBackend, dbPath, -1)
	assert.NoError(t, err, "Repeated up migration should not fail")

	// The migrated schema is usable by the history store
	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	runID, err := store.BeginRun(time.Now(), "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), runID)
	require.NoError(t, store.Close())

	// Roll back to version 0
	err = MigrateHistory(schema.SQLiteBackend, dbPath, 0)
	require.NoError(t, err, "Rolling back should not fail")

	tables = historyTableNames(t, dbPath)
	assert.False(t, tables[runsTableName], "Runs table should be dropped after rollback")
	assert.False(t, tables[statsTableName], "Stats table should be dropped after rollback")
}

func TestMigrateHistoryToVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	err := MigrateHistory(schema.SQLiteBackend, dbPath, 1)
	require.NoError(t, err, "Migrating to version 1 should not fail")

	tables := historyTableNames(t, dbPath)
	assert.True(t, tables[runsTableName], "Runs table should exist at version 1")

	// Already at version 1
	err = MigrateHistory(schema.SQLiteBackend, dbPath, 1)
	assert.NoError(t, err, "Migrating to the current version should be a no-op")
}

func TestMigrateHistoryErrors(t *testing.T) {
	t.Run("none backend", func(t *testing.T) {
		err := MigrateHistory(schema.NoneBackend, "", -1)
		assert.Error(t, err, "NoneBackend should not support migrations")
	})

	t.Run("unsupported backend", func(t *testing.T) {
		err := MigrateHistory("unsupported", "", -1)
		assert.Error(t, err, "Unsupported backend should error")
	})
}
