package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("INVENTORY_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".local", "share", "inventory", "inventory.db"), cfg.Database.Path)
	require.Equal(t, "sqlite3", cfg.Database.Driver)
	require.Equal(t, "$", cfg.UI.CurrencySymbol)
	require.Equal(t, 5*time.Second, cfg.UI.StopTimeout)
	require.False(t, cfg.Notify.Enabled())
	require.Equal(t, "inventory:invalidations", cfg.Notify.Channel)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "inventory.toml")
	data := []byte(`
[database]
path = "/tmp/stock.db"
driver = "sqlite"

[ui]
currency_symbol = "€"
stop_timeout = "750ms"
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	t.Setenv("INVENTORY_CONFIG", path)
	t.Setenv("INVENTORY_NOTIFY_REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/stock.db", cfg.Database.Path)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "€", cfg.UI.CurrencySymbol)
	require.Equal(t, 750*time.Millisecond, cfg.UI.StopTimeout)
	require.True(t, cfg.Notify.Enabled())
	require.Equal(t, "localhost:6379", cfg.Notify.RedisAddr)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("INVENTORY_CONFIG", "")
	t.Setenv("INVENTORY_DATABASE_DRIVER", "postgres")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "postgres")
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "nested", "config.toml")

	want := Config{
		Database: DatabaseConfig{Path: "/data/items.db", Driver: "sqlite3"},
		UI:       UIConfig{CurrencySymbol: "£", StopTimeout: 2 * time.Second},
		Notify:   NotifyConfig{Channel: "stock"},
		Log:      LogConfig{File: "/data/items.log"},
	}
	require.NoError(t, Save(want, path))

	t.Setenv("INVENTORY_CONFIG", path)
	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, want.Database, got.Database)
	require.Equal(t, want.UI, got.UI)
	require.Equal(t, "stock", got.Notify.Channel)
	require.Equal(t, want.Log, got.Log)
}
