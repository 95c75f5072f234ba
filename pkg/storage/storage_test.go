package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"beacon/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()
	dir := t.TempDir()

	sqliteKV, err := NewSQLiteKV(filepath.Join(dir, "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteKV.Close() })

	return map[string]KV{
		"file":   NewFileKV(filepath.Join(dir, "nested", "kv.json")),
		"sqlite": sqliteKV,
		"memory": NewMemoryKV(),
	}
}

func TestKVContract(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set("a", `{"x":1}`))
			require.NoError(t, kv.Set("b", "two"))
			require.NoError(t, kv.Set("a", "overwritten"))

			v, ok, err := kv.Get("a")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "overwritten", v)

			require.NoError(t, kv.Delete("a"))
			_, ok, err = kv.Get("a")
			require.NoError(t, err)
			assert.False(t, ok)

			v, ok, err = kv.Get("b")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "two", v)

			require.NoError(t, kv.Delete("never-set"))
		})
	}
}

func TestFileKV_SharedAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	first := NewFileKV(path)
	second := NewFileKV(path)

	require.NoError(t, first.Set("k", "from-first"))
	v, ok, err := second.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "from-first", v)

	require.NoError(t, second.Set("k", "from-second"))
	v, _, err = first.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "from-second", v)
}

func TestFileKV_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))
	kv := NewFileKV(path)

	_, _, err := kv.Get("k")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorrupt)

	require.NoError(t, kv.Set("k", "v"))
	v, ok, err := kv.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestFileKV_EmptyFileIsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, ok, err := NewFileKV(path).Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryKV_InjectedFailures(t *testing.T) {
	kv := NewMemoryKV()
	boom := errors.New("quota exceeded")

	kv.FailWrites(boom)
	assert.ErrorIs(t, kv.Set("k", "v"), boom)
	assert.ErrorIs(t, kv.Delete("k"), boom)

	kv.FailWrites(nil)
	require.NoError(t, kv.Set("k", "v"))

	kv.FailReads(boom)
	_, _, err := kv.Get("k")
	assert.ErrorIs(t, err, boom)
}

func TestOpen(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.StateDir = t.TempDir()

	tests := []struct {
		backend string
		want    interface{}
		wantErr error
	}{
		{backend: config.BackendFile, want: &FileKV{}},
		{backend: config.BackendSQLite, want: &SQLiteKV{}},
		{backend: config.BackendMemory, want: &MemoryKV{}},
		{backend: "etcd", wantErr: ErrUnknownBackend},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg.Storage.Backend = tt.backend
			kv, err := Open(cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { _ = kv.Close() })
			assert.IsType(t, tt.want, kv)
		})
	}
}
