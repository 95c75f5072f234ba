package common

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
)

func shortcutKeys(shortcuts []Shortcut) []string {
	keys := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		keys = append(keys, s.Key)
	}
	return keys
}

func TestShortcutOverlayModes(t *testing.T) {
	km := NewGlobalKeyMap()
	s := NewShortcutOverlay(km)

	s.SetMode(ModeGate)
	assert.Contains(t, shortcutKeys(s.FormatShortcuts()), "↵/s")
	assert.NotContains(t, shortcutKeys(s.FormatShortcuts()), "R")

	s.SetMode(ModeContent)
	s.SetPageBindings([]key.Binding{km.Filter})
	keys := shortcutKeys(s.FormatShortcuts())
	assert.Contains(t, keys, "R")
	assert.Contains(t, keys, "f")

	s.SetMode(ModeWizard)
	keys = shortcutKeys(s.FormatShortcuts())
	assert.NotContains(t, keys, "q")
	assert.Contains(t, keys, "esc")
}

func TestAllShortcutsCoversHelpSections(t *testing.T) {
	all := AllShortcuts(NewGlobalKeyMap())
	for _, section := range HelpSectionOrder {
		assert.NotEmpty(t, all[section], section)
	}
	for _, s := range all["Global"] {
		assert.True(t, s.IsGlobal)
	}
}

func TestFooterStatusReplacesShortcuts(t *testing.T) {
	f := NewFooter()
	f.SetShortcutOverlay(NewShortcutOverlay(NewGlobalKeyMap()))
	f.SetSize(120, 1)

	assert.Contains(t, f.View(), "quit")

	f.SetStatus("failed to save onboarding state")
	view := f.View()
	assert.Contains(t, view, "failed to save onboarding state")
	assert.NotContains(t, view, "quit")
}
