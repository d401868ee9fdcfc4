package migration

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/retail-inventory/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add users table", "add_users_table"},
		{"Add-Location-Index", "add_location_index"},
		{"add__users__table", "add_users_table"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading", "leading"},
		{"trailing_", "trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "add movement index", "Speed up movement log queries")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)
	assert.Equal(t, "000001_add_movement_index.up.sql", filepath.Base(first.UpPath))
	assert.Equal(t, "000001_add_movement_index.down.sql", filepath.Base(first.DownPath))

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "Speed up movement log queries")

	second, err := CreateMigration(dir, "drop legacy column", "")
	require.NoError(t, err)
	assert.Equal(t, 2, second.Version)

	t.Run("rejects empty slug", func(t *testing.T) {
		_, err := CreateMigration(dir, "!!!", "")
		assert.Error(t, err)
	})

	t.Run("creates missing directory", func(t *testing.T) {
		nested := filepath.Join(t.TempDir(), "nested", "migrations")
		_, err := CreateMigration(nested, "init", "")
		require.NoError(t, err)
		info, err := os.Stat(nested)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{
		"000010_add_suppliers.up.sql",
		"000010_add_suppliers.down.sql",
		"000002_add_users.up.sql",
		"000002_add_users.down.sql",
		"README.md",
		"notes.up.sql",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("-- test"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "000003_dir.up.sql"), 0o755))

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000002_add_users", "000010_add_suppliers"}, names)

	names, err = ListMigrations(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrations.FS, "*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		down := up[:len(up)-len(".up.sql")] + ".down.sql"
		_, err := fs.Stat(migrations.FS, down)
		assert.NoError(t, err, "missing rollback for %s", up)
	}
}
