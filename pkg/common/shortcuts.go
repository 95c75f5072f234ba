package common

import (
	"github.com/charmbracelet/bubbles/key"
)

// Footer modes.
const (
	ModeGate    = "gate"    // prompt card is blocking a gated page
	ModeContent = "content" // gated page content is visible
	ModeWizard  = "wizard"  // setup wizard dialog is open
	ModePage    = "page"    // ungated page
)

// ShortcutOverlay manages the display of contextual shortcuts
type ShortcutOverlay struct {
	keyMap *GlobalKeyMap
	mode   string
	page   []key.Binding // page-specific bindings for the active page
}

// NewShortcutOverlay creates a new shortcut overlay
func NewShortcutOverlay(keyMap *GlobalKeyMap) *ShortcutOverlay {
	return &ShortcutOverlay{
		keyMap: keyMap,
		mode:   ModeGate,
	}
}

// SetMode updates the interaction mode
func (s *ShortcutOverlay) SetMode(mode string) {
	s.mode = mode
}

// Mode returns the interaction mode.
func (s *ShortcutOverlay) Mode() string {
	return s.mode
}

// SetPageBindings sets the bindings contributed by the active page.
func (s *ShortcutOverlay) SetPageBindings(bindings []key.Binding) {
	s.page = bindings
}

// GetContextualShortcuts returns shortcuts relevant to current context
func (s *ShortcutOverlay) GetContextualShortcuts() []key.Binding {
	// Always show global shortcuts
	shortcuts := []key.Binding{s.keyMap.Quit, s.keyMap.Keybindings}

	switch s.mode {
	case ModeGate:
		shortcuts = append(shortcuts, s.keyMap.StartSetup, s.keyMap.NextPage)
	case ModeContent:
		shortcuts = append(shortcuts, s.page...)
		shortcuts = append(shortcuts, s.keyMap.ResetSetup, s.keyMap.NextPage)
	case ModePage:
		shortcuts = append(shortcuts, s.page...)
		shortcuts = append(shortcuts, s.keyMap.NextPage)
	case ModeWizard:
		// The wizard replaces global shortcuts entirely
		shortcuts = []key.Binding{
			s.keyMap.WizardAdvance,
			s.keyMap.WizardPrevious,
			s.keyMap.WizardSkip,
			s.keyMap.WizardSelect,
			s.keyMap.WizardClose,
		}
	}

	return shortcuts
}

// FormatShortcuts formats the shortcuts for display
func (s *ShortcutOverlay) FormatShortcuts() []Shortcut {
	bindings := s.GetContextualShortcuts()
	shortcuts := make([]Shortcut, 0, len(bindings))

	for _, binding := range bindings {
		if binding.Enabled() {
			shortcuts = append(shortcuts, Shortcut{
				Key:         binding.Help().Key,
				Description: binding.Help().Desc,
				IsGlobal:    s.isGlobalKey(binding),
			})
		}
	}

	return shortcuts
}

// isGlobalKey checks if a keybinding is global
func (s *ShortcutOverlay) isGlobalKey(binding key.Binding) bool {
	// Compare by the key help text since we can't compare structs directly
	helpKey := binding.Help().Key
	return helpKey == s.keyMap.Quit.Help().Key || helpKey == s.keyMap.Keybindings.Help().Key
}

// Shortcut represents a keyboard shortcut with its description
type Shortcut struct {
	Key         string
	Description string
	IsGlobal    bool
}

// AllShortcuts returns all available shortcuts for the help dialog
func AllShortcuts(keyMap *GlobalKeyMap) map[string][]Shortcut {
	sections := keyMap.GetHelpSections()
	result := make(map[string][]Shortcut)

	for sectionName, bindings := range sections {
		shortcuts := make([]Shortcut, 0, len(bindings))
		for _, binding := range bindings {
			shortcuts = append(shortcuts, Shortcut{
				Key:         binding.Help().Key,
				Description: binding.Help().Desc,
				IsGlobal:    binding.Help().Key == keyMap.Quit.Help().Key || binding.Help().Key == keyMap.Keybindings.Help().Key,
			})
		}
		result[sectionName] = shortcuts
	}

	return result
}
