package debug

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugLoggerWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")

	d := InitDebugLogger(path, "debug")
	DebugLog("loaded %d steps", 4)
	Named("store").Info("state persisted")
	d.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `"msg":"loaded 4 steps"`)
	assert.Contains(t, out, `"logger":"store"`)
	assert.Contains(t, out, "debug session ended")
}

func TestDebugLoggerRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	d := NewDebugLogger(path, "warn")
	d.Log("hidden %s", "detail")
	d.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden detail")
}
