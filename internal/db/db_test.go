package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenForTesting(t *testing.T) {
	db, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	var tableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='food_items'").Scan(&tableName)
	require.NoError(t, err)
	assert.Equal(t, "food_items", tableName)
}

func TestOpenForTestingIsolated(t *testing.T) {
	first, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, first.Close()) })

	second, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, second.Close()) })

	_, err = first.Exec(`INSERT INTO food_items (name, purchase_date, expiry_date, quantity) VALUES ('milk', '2024-01-01', '2024-01-05', 1)`)
	require.NoError(t, err)

	var count int
	require.NoError(t, second.QueryRow("SELECT COUNT(*) FROM food_items").Scan(&count))
	assert.Zero(t, count)
}

func TestOpenFileIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "food_items.db")

	db, err := Open(path)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO food_items (name, purchase_date, expiry_date, quantity) VALUES ('rice', '2024-01-01', '2024-02-01', 2)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening must keep existing rows and not fail on the applied schema.
	db, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM food_items").Scan(&count))
	assert.Equal(t, 1, count)

	var version int
	require.NoError(t, db.QueryRow("SELECT version FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}
