package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func useTempStore(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", filepath.Join(dir, "paladar.db"))
	t.Setenv("STORAGE_DISK", "local")
	t.Setenv("STORAGE_LOCAL_ROOT", filepath.Join(dir, "storage"))
}

func TestRecordCommands(t *testing.T) {
	useTempStore(t)

	out, err := execute(t, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No hay usuarios registrados")

	_, err = execute(t, "users", "add", "--name", "  ")
	assert.EqualError(t, err, "Nombre requerido")

	out, err = execute(t, "users", "add", "--name", "Ana", "--description", "mesa 4")
	require.NoError(t, err)
	assert.Contains(t, out, "Added user 1")

	out, err = execute(t, "orders", "add", "--dish", "Paella", "--user", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Added order 1")

	_, err = execute(t, "orders", "add", "--dish", "Sopa")
	require.NoError(t, err)

	out, err = execute(t, "orders", "list", "--user", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Paella")
	assert.NotContains(t, out, "Sopa")

	_, err = execute(t, "users", "delete", "1")
	require.NoError(t, err)

	out, err = execute(t, "orders", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Sin usuario")

	_, err = execute(t, "users", "update", "1", "--name", "Otra")
	assert.ErrorContains(t, err, "not found")

	_, err = execute(t, "orders", "delete", "abc")
	assert.ErrorContains(t, err, `invalid id "abc"`)

	_, err = execute(t, "orders", "add", "--dish", "Flan", "--user", "18446744073709551615")
	require.NoError(t, err)
	out, err = execute(t, "orders", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Flan")

	_, err = execute(t, "orders", "delete", "18446744073709551615")
	assert.ErrorContains(t, err, "invalid id")
}

func TestMigrateAndSeed(t *testing.T) {
	useTempStore(t)

	out, err := execute(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Ran ")

	out, err = execute(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to migrate.")

	out, err = execute(t, "migrate:status")
	require.NoError(t, err)
	assert.Contains(t, out, "yes")

	out, err = execute(t, "seed", "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "Running seeder: demo")

	out, err = execute(t, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana Pérez")
}

func TestBackupCommands(t *testing.T) {
	useTempStore(t)

	out, err := execute(t, "backup:list")
	require.NoError(t, err)
	assert.Contains(t, out, "No backups.")

	out, err = execute(t, "backup")
	require.NoError(t, err)
	assert.Contains(t, out, "Backup written:")

	_, err = execute(t, "users", "add", "--name", "Ana")
	require.NoError(t, err)
	_, err = execute(t, "orders", "add", "--dish", "Paella", "--user", "1")
	require.NoError(t, err)
	_, err = execute(t, "backup")
	require.NoError(t, err)

	out, err = execute(t, "backup:list")
	require.NoError(t, err)
	assert.Contains(t, out, "backups/paladar-")
	files := strings.Fields(out)
	require.Len(t, files, 2)

	out, err = execute(t, "backup:show", files[1])
	require.NoError(t, err)
	assert.Contains(t, out, "Users: 1")
	assert.Contains(t, out, "Orders: 1")
	assert.Contains(t, out, "Paella")
	assert.Contains(t, out, "Ana")

	_, err = execute(t, "backup:show", "backups/none.json")
	assert.Error(t, err)
}

func TestRouteList(t *testing.T) {
	out, err := execute(t, "route:list")
	require.NoError(t, err)
	assert.Contains(t, out, "/api/users/{id}")
	assert.Contains(t, out, "users.store")
	assert.Contains(t, out, "/ws")
}
