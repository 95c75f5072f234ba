package main

import (
	"encoding/json"
	"errors"
	"math/rand"
	"testing"
	"time"

	"beacon/pkg/analytics"
	"beacon/pkg/common"
	"beacon/pkg/gui/components"
	"beacon/pkg/gui/overlays"
	"beacon/pkg/gui/pages"
	"beacon/pkg/onboarding"
	"beacon/pkg/storage"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestModel(t *testing.T, kv storage.KV) model {
	t.Helper()

	store := onboarding.NewStore(kv, zap.NewNop())

	rng := rand.New(rand.NewSource(7))
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	data := analytics.NewDataset(rng, 20, 30, now)

	m := initialModel(store, data, zap.NewNop())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(model)
}

func press(t *testing.T, m model, k string) (model, tea.Cmd) {
	t.Helper()

	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}

	updated, cmd := m.Update(msg)
	return updated.(model), cmd
}

func finishWizard(t *testing.T, m model) (model, tea.Cmd) {
	t.Helper()

	m, cmd := press(t, m, "enter")
	require.True(t, m.showWizard, "expected setup wizard to open")
	require.NotNil(t, cmd)

	for i := 0; i < len(onboarding.CanonicalSteps); i++ {
		m, _ = press(t, m, "enter")
	}
	require.True(t, m.wizardDialog.Wizard().AllCompleted())

	return press(t, m, "enter")
}

func TestFreshStartShowsSetupPrompt(t *testing.T) {
	m := newTestModel(t, storage.NewMemoryKV())

	view := m.View()
	assert.Contains(t, view, "Start Setup")
	assert.Contains(t, view, "Complete the setup to access advanced analytics features")
	assert.NotContains(t, view, "Reset Setup")
	assert.Equal(t, common.ModeGate, m.shortcutOverlay.Mode())
}

func TestWizardCompletionUnlocksAndPersists(t *testing.T) {
	kv := storage.NewMemoryKV()
	m := newTestModel(t, kv)

	m, cmd := finishWizard(t, m)
	require.NotNil(t, cmd)
	assert.Equal(t, overlays.WizardClosedMsg{Completed: true}, cmd())

	// The completion callback has already run.
	assert.True(t, m.store.IsCompleted())

	raw, ok, err := kv.Get(onboarding.StorageKey)
	require.NoError(t, err)
	require.True(t, ok)

	var saved onboarding.State
	require.NoError(t, json.Unmarshal([]byte(raw), &saved))
	assert.True(t, saved.IsCompleted)
	assert.Equal(t, onboarding.CanonicalSteps, saved.CompletedSteps)

	updated, _ := m.Update(overlays.WizardClosedMsg{Completed: true})
	m = updated.(model)
	assert.False(t, m.showWizard)
	assert.Nil(t, m.wizardDialog)
	assert.Equal(t, common.ModeContent, m.shortcutOverlay.Mode())

	view := m.View()
	assert.Contains(t, view, "Reset Setup")
	assert.NotContains(t, view, "Start Setup")
}

func TestResetSetupLocksPagesAndDeletesKey(t *testing.T) {
	kv := storage.NewMemoryKV()
	m := newTestModel(t, kv)
	require.NoError(t, m.store.Complete())

	m, _ = press(t, m, "R")

	assert.False(t, m.store.IsCompleted())
	_, ok, err := kv.Get(onboarding.StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, m.View(), "Start Setup")
}

func TestWizardDismissKeepsGate(t *testing.T) {
	kv := storage.NewMemoryKV()
	m := newTestModel(t, kv)

	m, _ = press(t, m, "enter")
	m, _ = press(t, m, "enter")
	m, cmd := press(t, m, "esc")
	require.NotNil(t, cmd)
	assert.Equal(t, overlays.WizardClosedMsg{Completed: false}, cmd())

	updated, _ := m.Update(cmd())
	m = updated.(model)

	assert.False(t, m.showWizard)
	assert.False(t, m.store.IsCompleted())
	_, ok, _ := kv.Get(onboarding.StorageKey)
	assert.False(t, ok, "dismissing the wizard must not persist anything")
	assert.Contains(t, m.View(), "Start Setup")
}

func TestWizardCapturesPageKeys(t *testing.T) {
	m := newTestModel(t, storage.NewMemoryKV())

	m, _ = press(t, m, "s")
	require.True(t, m.showWizard)

	// 3 selects a wizard step instead of switching pages.
	m, _ = press(t, m, "3")
	assert.Equal(t, 0, m.active)
	assert.Equal(t, 2, m.wizardDialog.Wizard().Current())
	assert.Contains(t, m.View(), "Welcome to Analytics")
}

func TestCompletionWriteFailureKeepsMirror(t *testing.T) {
	kv := storage.NewMemoryKV()
	kv.FailWrites(errors.New("disk full"))
	m := newTestModel(t, kv)

	m, _ = finishWizard(t, m)

	assert.True(t, m.store.IsCompleted())
	assert.Contains(t, m.footer.Status(), "could not be saved")
	_, ok, _ := kv.Get(onboarding.StorageKey)
	assert.False(t, ok)
}

func TestExternalChangeReloadsGate(t *testing.T) {
	kv := storage.NewMemoryKV()
	m := newTestModel(t, kv)

	other := onboarding.NewStore(kv, zap.NewNop())
	require.NoError(t, other.Complete())
	require.True(t, m.store.Reload())

	updated, cmd := m.Update(storeReloadedMsg{})
	m = updated.(model)

	assert.NotNil(t, cmd, "dashboard welcome should be scheduled once unlocked")
	assert.Equal(t, common.ModeContent, m.shortcutOverlay.Mode())
	assert.Contains(t, m.View(), "Reset Setup")
}

func TestPageSwitching(t *testing.T) {
	m := newTestModel(t, storage.NewMemoryKV())

	m, _ = press(t, m, "tab")
	assert.Equal(t, 1, m.active)
	assert.True(t, m.pages[1].IsActive())
	assert.False(t, m.pages[0].IsActive())

	m, _ = press(t, m, "shift+tab")
	m, _ = press(t, m, "shift+tab")
	assert.Equal(t, len(m.pages)-1, m.active)

	m, _ = press(t, m, "4")
	assert.Equal(t, 3, m.active)
	assert.Contains(t, m.View(), m.pages[3].GetTitle())
}

func TestAttributionPageIsNotGated(t *testing.T) {
	m := newTestModel(t, storage.NewMemoryKV())

	m, _ = press(t, m, "6")
	_, ok := m.activePage().(*pages.AttributionPage)
	require.True(t, ok)
	assert.Equal(t, common.ModePage, m.shortcutOverlay.Mode())
	assert.NotContains(t, m.View(), "Start Setup")

	m, cmd := press(t, m, "s")
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, components.ShowToastMsg{}, msg)

	updated, expire := m.Update(msg)
	m = updated.(model)
	assert.NotNil(t, expire)
	assert.True(t, m.toast.Visible())
	assert.Contains(t, m.View(), pages.SavedMessage)

	// Saving attribution never touches onboarding.
	assert.False(t, m.store.IsCompleted())
	assert.False(t, m.showWizard)
}

func TestHelpOverlayClosesOnAnyKey(t *testing.T) {
	m := newTestModel(t, storage.NewMemoryKV())

	m, _ = press(t, m, "?")
	require.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Beacon - Store Analytics")

	m, _ = press(t, m, "enter")
	assert.False(t, m.showHelp)
	assert.False(t, m.showWizard, "closing help must not start setup")
}

func TestToastExpiryIgnoresStaleID(t *testing.T) {
	m := newTestModel(t, storage.NewMemoryKV())

	updated, _ := m.Update(components.ShowToastMsg{Text: "first"})
	m = updated.(model)
	updated, _ = m.Update(components.ShowToastMsg{Text: "second"})
	m = updated.(model)

	updated, _ = m.Update(components.ToastExpiredMsg{ID: 1})
	m = updated.(model)
	assert.True(t, m.toast.Visible())
	assert.Equal(t, "second", m.toast.Text())

	updated, _ = m.Update(components.ToastExpiredMsg{ID: 2})
	m = updated.(model)
	assert.False(t, m.toast.Visible())
}

func TestPageKeysFollowNavigationOrder(t *testing.T) {
	m := newTestModel(t, storage.NewMemoryKV())
	require.Len(t, m.pages, 8)

	want := map[string]string{
		"1": "Dashboard",
		"2": "Products",
		"3": "Product Analytics",
		"4": "Sales Analytics",
		"5": "Google Ads Ranking",
		"6": "Attribution Intelligence",
		"7": "Revenue Analytics",
		"8": "Settings",
	}
	for k, title := range want {
		m, _ = press(t, m, k)
		assert.Equal(t, title, m.activePage().GetTitle(), "key %s", k)
	}

	_, ok := m.pages[2].(*pages.ProductAnalyticsPage)
	assert.True(t, ok)
	assert.True(t, m.pages[2].Gated())
	assert.False(t, m.pages[7].Gated())
}

func TestSettingsEditCapturesGlobalKeys(t *testing.T) {
	m := newTestModel(t, storage.NewMemoryKV())

	m, _ = press(t, m, "8")
	settings, ok := m.activePage().(*pages.SettingsPage)
	require.True(t, ok)
	assert.NotContains(t, m.View(), "Start Setup")

	m, _ = press(t, m, "enter")
	require.True(t, settings.Editing())

	// Quit, page and help keys are typed into the field.
	m, _ = press(t, m, "q")
	m, _ = press(t, m, "3")
	m, _ = press(t, m, "?")
	assert.Equal(t, 7, m.active)
	assert.False(t, m.showHelp)

	m, _ = press(t, m, "enter")
	assert.False(t, settings.Editing())
	assert.Equal(t, "Sales Beaconq3?", settings.Value("General", "Store Name"))

	m, cmd := press(t, m, "s")
	require.NotNil(t, cmd)
	updated, _ := m.Update(cmd())
	m = updated.(model)
	assert.Contains(t, m.View(), pages.SettingsSavedMessage("General"))
	assert.False(t, m.store.IsCompleted())
}
