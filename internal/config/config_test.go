package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8000", c.Server.Addr)
	require.Equal(t, "internal/database/migrations", c.Database.Migrations)
	require.NotEmpty(t, c.Database.Path)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("KORTKOLL_DATABASE_PATH", "/tmp/override.db")
	t.Setenv("KORTKOLL_SERVER_ADDR", ":9999")

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/override.db", c.Database.Path)
	require.Equal(t, ":9999", c.Server.Addr)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[database]\npath = \"/tmp/from-file.db\"\n\n[server]\naddr = \":7070\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("KORTKOLL_CONFIG", path)

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/from-file.db", c.Database.Path)
	require.Equal(t, ":7070", c.Server.Addr)
}
