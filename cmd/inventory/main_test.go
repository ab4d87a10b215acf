package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/inventory/internal/config"
	"github.com/jask/inventory/internal/database/repository"
	"github.com/jask/inventory/internal/secrets"
)

// run executes the CLI against a database in dir and returns stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	return runWithInput(t, dir, "", args...)
}

func runWithInput(t *testing.T, dir, input string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	t.Setenv("INVENTORY_CONFIG", "")
	root := newRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(new(bytes.Buffer))
	root.SetIn(strings.NewReader(input))
	root.SetArgs(append([]string{"--db", filepath.Join(dir, "inventory.db")}, args...))
	err := root.Execute()
	return buf.String(), err
}

func listJSON(t *testing.T, dir string) []repository.Item {
	t.Helper()
	out, err := run(t, dir, "list", "--json")
	require.NoError(t, err)
	var items []repository.Item
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	return items
}

func TestAddListShowSellDelete(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "add", "Stapler", "8.40", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Stapler")

	_, err = run(t, dir, "add", "Stapler", "", "2")
	require.Error(t, err, "blank price is rejected")
	_, err = run(t, dir, "add", "Tape", "-1", "2")
	require.Error(t, err)

	items := listJSON(t, dir)
	require.Len(t, items, 1)
	id := items[0].ID

	out, err = run(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "$8.40")

	out, err = run(t, dir, "sell", "1", "--count", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Sold 2 Stapler, 0 left")
	assert.Contains(t, out, "out of stock")

	_, err = run(t, dir, "sell", "1")
	require.ErrorContains(t, err, "only 0 of Stapler in stock")

	out, err = run(t, dir, "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Stapler")

	out, err = run(t, dir, "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted Stapler")
	require.Empty(t, listJSON(t, dir))

	_, err = run(t, dir, "show", "1")
	require.ErrorContains(t, err, "item 1 not found")
	require.Equal(t, int64(1), id)
}

func TestEditKeepsUnchangedFields(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "add", "Ruler", "4", "6")
	require.NoError(t, err)

	_, err = run(t, dir, "edit", "1")
	require.ErrorContains(t, err, "nothing to change")

	_, err = run(t, dir, "edit", "1", "--price", "3.75")
	require.NoError(t, err)
	items := listJSON(t, dir)
	require.Len(t, items, 1)
	assert.Equal(t, "Ruler", items[0].Name)
	assert.Equal(t, "3.75", items[0].Price.String())
	assert.Equal(t, 6, items[0].Quantity)

	_, err = run(t, dir, "edit", "1", "--name", " ")
	require.Error(t, err)
	_, err = run(t, dir, "edit", "99", "--name", "x")
	require.ErrorContains(t, err, "not found")
}

func TestImportExportSeedReset(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "items.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("name,price,quantity\nPen,0.80,12\nInk,3,0\nBad,,1\n"), 0o644))

	out, err := run(t, dir, "import", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2, skipped 0")
	assert.Contains(t, out, "line 4")

	out, err = run(t, dir, "export", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: Pen")

	exported := filepath.Join(dir, "out.csv")
	_, err = run(t, dir, "export", "-o", exported)
	require.NoError(t, err)
	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Equal(t, "name,price,quantity\nInk,3,0\nPen,0.8,12\n", string(data))

	out, err = run(t, dir, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing seeded")

	_, err = run(t, dir, "reset")
	require.ErrorContains(t, err, "--yes")
	_, err = run(t, dir, "reset", "--yes")
	require.NoError(t, err)
	require.Empty(t, listJSON(t, dir))

	out, err = run(t, dir, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded")
	require.NotEmpty(t, listJSON(t, dir))
}

func TestListSearch(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"Blue pen", "Stapler", "Pencil"} {
		_, err := run(t, dir, "add", n, "1", "1")
		require.NoError(t, err)
	}
	out, err := run(t, dir, "list", "--search", "pen")
	require.NoError(t, err)
	assert.Contains(t, out, "Blue pen")
	assert.Contains(t, out, "Pencil")
	assert.NotContains(t, out, "Stapler")
}

func TestConfigInitWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf", "config.toml")

	out, err := run(t, dir, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = run(t, dir, "--config", path, "config", "init")
	require.ErrorContains(t, err, "already exists")

	out, err = run(t, dir, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "inventory.db"))
}

func TestUnknownArgsAreRejected(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "show", "abc")
	require.ErrorContains(t, err, "invalid item id")
	_, err = run(t, dir, "add", "only-name")
	require.Error(t, err)
}

func TestRedisPasswordIsStoredOutsideConfig(t *testing.T) {
	dir := t.TempDir()
	out, err := runWithInput(t, dir, "s3cret\n", "config", "redis-password")
	require.NoError(t, err)
	assert.Contains(t, out, "Stored Redis password")

	s, err := secrets.DefaultStore()
	require.NoError(t, err)
	got, ok, err := s.Get(secrets.RedisPassword)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "s3cret", got)
	assert.Equal(t, "s3cret", resolveRedisPassword(config.NotifyConfig{}))
	assert.Equal(t, "inline", resolveRedisPassword(config.NotifyConfig{RedisPassword: "inline"}))

	_, err = run(t, dir, "config", "redis-password", "--clear")
	require.NoError(t, err)
	assert.Empty(t, resolveRedisPassword(config.NotifyConfig{}))

	_, err = run(t, dir, "config", "redis-password")
	require.ErrorContains(t, err, "no password")
}
