package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"beacon/pkg/config"
	"beacon/pkg/onboarding"
	"beacon/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes beacon with args against an isolated state directory.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("BEACON_STATE_DIR", filepath.Join(dir, "state"))
	t.Setenv("BEACON_STORAGE", "")
	t.Setenv("BEACON_STORAGE_PATH", "")
	return dir
}

func TestOnboardingCommandsRoundTrip(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "onboarding", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Onboarding: not completed")
	assert.Contains(t, out, "Completed steps: none")

	out, _, err = runCLI(t, "onboarding", "complete")
	require.NoError(t, err)
	assert.Contains(t, out, "Onboarding: completed")
	assert.Contains(t, out, "Last step: verify-data")

	out, _, err = runCLI(t, "onboarding", "status", "--json")
	require.NoError(t, err)
	var state onboarding.State
	require.NoError(t, json.Unmarshal([]byte(out), &state))
	assert.True(t, state.IsCompleted)
	assert.Equal(t, onboarding.CanonicalSteps, state.CompletedSteps)

	out, _, err = runCLI(t, "onboarding", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Onboarding: not completed")
}

func TestOnboardingCompleteStep(t *testing.T) {
	isolate(t)

	out, stderr, err := runCLI(t, "onboarding", "complete-step", "connect-store")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Contains(t, out, "Completed steps: connect-store")

	// Unknown ids are recorded as-is, with a warning.
	out, stderr, err = runCLI(t, "onboarding", "complete-step", "bogus")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"bogus" is not a known setup step`)
	assert.Contains(t, out, "Completed steps: connect-store, bogus")
	assert.Contains(t, out, "Onboarding: not completed")
}

func TestOnboardingSQLiteBackend(t *testing.T) {
	isolate(t)

	_, _, err := runCLI(t, "--storage", "sqlite", "onboarding", "complete")
	require.NoError(t, err)

	out, _, err := runCLI(t, "--storage", "sqlite", "onboarding", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Onboarding: completed")

	// The file backend is independent of the SQLite one.
	out, _, err = runCLI(t, "onboarding", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Onboarding: not completed")
}

func TestUnknownStorageBackend(t *testing.T) {
	isolate(t)

	_, _, err := runCLI(t, "--storage", "redis", "onboarding", "status")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestVersionFlag(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "beacon")
}

// countingKV counts reads of the wrapped store.
type countingKV struct {
	storage.KV
	gets int
}

func (c *countingKV) Get(key string) (string, bool, error) {
	c.gets++
	return c.KV.Get(key)
}

func TestOpenRuntimeReadsStateOnce(t *testing.T) {
	isolate(t)

	var kv *countingKV
	orig := openStorage
	openStorage = func(cfg *config.Config) (storage.KV, error) {
		inner, err := orig(cfg)
		if err != nil {
			return nil, err
		}
		kv = &countingKV{KV: inner}
		return kv, nil
	}
	t.Cleanup(func() { openStorage = orig })

	out, _, err := runCLI(t, "onboarding", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Onboarding: not completed")
	require.NotNil(t, kv)
	assert.Equal(t, 1, kv.gets)
}
