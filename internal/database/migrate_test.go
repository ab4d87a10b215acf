package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunMigrationsIsIdempotent(t *testing.T) {
	for _, driver := range []string{DriverCgo, DriverPureGo} {
		t.Run(driver, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			dbPath := filepath.Join(t.TempDir(), "inv.db")

			require.NoError(t, RunMigrations(driver, dbPath))
			require.NoError(t, RunMigrations(driver, dbPath))

			db, err := Open(driver, dbPath)
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })

			var name string
			require.NoError(t, db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name='items'`).Scan(&name))
			require.Equal(t, "items", name)
		})
	}
}

func TestSchemaRejectsInvalidRows(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "inv.db")
	require.NoError(t, RunMigrations(DriverCgo, dbPath))
	db, err := Open(DriverCgo, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, `INSERT INTO items(name, price, quantity) VALUES ('  ', '1', 1)`)
	require.Error(t, err, "blank name")
	_, err = db.ExecContext(ctx, `INSERT INTO items(name, price, quantity) VALUES ('x', '-1', 1)`)
	require.Error(t, err, "negative price")
	_, err = db.ExecContext(ctx, `INSERT INTO items(name, price, quantity) VALUES ('x', '1', -1)`)
	require.Error(t, err, "negative quantity")
	_, err = db.ExecContext(ctx, `INSERT INTO items(name, price, quantity) VALUES ('x', '1.25', 0)`)
	require.NoError(t, err)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("postgres", "x.db")
	require.Error(t, err)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "inv.db")
	require.NoError(t, RunMigrations(DriverCgo, dbPath))
	db, err := Open(DriverCgo, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO items(name, price, quantity) VALUES ('x', '1', 1)`); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.EqualError(t, err, "boom")

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n))
	require.Zero(t, n)
}
