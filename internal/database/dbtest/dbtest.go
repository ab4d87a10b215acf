// Package dbtest opens migrated throwaway databases for tests.
package dbtest

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/inventory/internal/database"
)

// Open migrates a fresh database file under t.TempDir using the cgo driver
// and closes it when the test ends.
func Open(t testing.TB) *sql.DB {
	t.Helper()
	return OpenWith(t, database.DriverCgo)
}

// OpenWith is Open for a specific driver.
func OpenWith(t testing.TB, driver string) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(driver, dbPath))

	db, err := database.Open(driver, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
