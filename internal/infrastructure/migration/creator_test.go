package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"add users table", "add_users_table"},
		{"Add-Users-Table", "add_users_table"},
		{"ADD_USERS_TABLE", "add_users_table"},
		{"add__users__table", "add_users_table"},
		{"Add Users 123", "add_users_123"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.input), "input %q", tt.input)
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	pair, err := CreateMigration(dir, "add grn returns", "return rows against received goods")
	require.NoError(t, err)

	assert.Len(t, pair.Version, len(versionLayout))
	assert.Equal(t, "add_grn_returns", pair.Name)

	upBase := strings.TrimSuffix(filepath.Base(pair.UpPath), ".up.sql")
	downBase := strings.TrimSuffix(filepath.Base(pair.DownPath), ".down.sql")
	assert.Equal(t, upBase, downBase)

	up, err := os.ReadFile(pair.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "add grn returns (up)")
	assert.Contains(t, string(up), "return rows against received goods")

	down, err := os.ReadFile(pair.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "add grn returns (down)")
}

func TestCreateMigrationMakesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "db", "migrations")

	_, err := CreateMigration(nested, "init", "")
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestListMigrations(t *testing.T) {
	write := func(t *testing.T, dir string, names ...string) {
		t.Helper()
		for _, n := range names {
			require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("-- sql"), 0o644))
		}
	}

	t.Run("pairs collapse to base names", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir,
			"000001_init.up.sql", "000001_init.down.sql",
			"000002_users.up.sql", "000002_users.down.sql",
		)

		got, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_init", "000002_users"}, got)
	})

	t.Run("unrelated files are skipped", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "000001_init.up.sql", "000001_init.down.sql", "README.md", ".gitkeep")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.up.sql"), 0o755))

		got, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_init"}, got)
	})

	t.Run("missing directory is empty", func(t *testing.T) {
		got, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
