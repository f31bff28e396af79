package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrateConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DB_DSN", "")
		t.Setenv("MIGRATIONS_DIR", "")

		cfg := loadMigrateConfig()
		assert.Equal(t, defaultDSN, cfg.DSN)
		assert.Equal(t, "db/migrations", cfg.Dir)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://contest@db:5432/gamecontest")
		t.Setenv("MIGRATIONS_DIR", "/srv/migrations")

		cfg := loadMigrateConfig()
		assert.Equal(t, "postgres://contest@db:5432/gamecontest", cfg.DSN)
		assert.Equal(t, "/srv/migrations", cfg.Dir)
	})
}

func TestValidateCommand(t *testing.T) {
	for _, cmd := range []string{"up", "down", "status"} {
		assert.NoError(t, validateCommand(cmd, ""), cmd)
	}
	assert.NoError(t, validateCommand("create", "add_reviews_index"))
	assert.Error(t, validateCommand("create", ""))
	assert.Error(t, validateCommand("redo", ""))
}

func TestLoadEnvFiles_KeepsRuntimeEnv(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("DB_DSN=from_file\nMIGRATIONS_DIR=from_file\n"), 0o644))

	t.Setenv("DB_DSN", "from_env")
	t.Setenv("MIGRATIONS_DIR", "")
	require.NoError(t, os.Unsetenv("MIGRATIONS_DIR"))
	t.Chdir(tmp)

	loadEnvFiles()

	assert.Equal(t, "from_env", os.Getenv("DB_DSN"))
	assert.Equal(t, "from_file", os.Getenv("MIGRATIONS_DIR"))
}
