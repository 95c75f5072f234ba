package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("BEACON_STATE_DIR", "")
	t.Setenv("BEACON_STORAGE", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.True(t, cfg.Storage.Watch)
	assert.Equal(t, 90, cfg.Dashboard.SalesDays)
	assert.Equal(t, 50, cfg.Dashboard.Products)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
state_dir: /tmp/beacon-state
storage:
  backend: sqlite
  watch: false
logging:
  level: debug
dashboard:
  seed: 7
  sales_days: 14
  products: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Run("file values", func(t *testing.T) {
		t.Setenv("BEACON_STORAGE", "")
		t.Setenv("BEACON_SEED", "")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "/tmp/beacon-state", cfg.StateDir)
		assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
		assert.False(t, cfg.Storage.Watch)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, int64(7), cfg.Dashboard.Seed)
		assert.Equal(t, filepath.Join("/tmp/beacon-state", "storage.db"), cfg.StoragePath())
	})

	t.Run("env wins over file", func(t *testing.T) {
		t.Setenv("BEACON_STORAGE", "MEMORY")
		t.Setenv("BEACON_SEED", "99")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, BackendMemory, cfg.Storage.Backend)
		assert.Equal(t, int64(99), cfg.Dashboard.Seed)
		assert.Empty(t, cfg.StoragePath())
	})
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("BEACON_STORAGE", "redis")

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unterminated"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestStoragePath_ExplicitPathWins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StateDir = "/var/beacon"
	assert.Equal(t, filepath.Join("/var/beacon", "storage.json"), cfg.StoragePath())

	cfg.Storage.Path = "/elsewhere/kv.json"
	assert.Equal(t, "/elsewhere/kv.json", cfg.StoragePath())
	assert.Equal(t, filepath.Join("/var/beacon", "debug.log"), cfg.DebugLogPath())
}

func TestLoad_MalformedEnvValue(t *testing.T) {
	t.Setenv("BEACON_SEED", "not-a-number")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}
