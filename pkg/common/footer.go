package common

import (
	"strings"

	"beacon/pkg/gui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Footer manages the bottom footer bar with keyboard shortcuts
type Footer struct {
	width           int
	height          int
	status          string // transient status line (errors, notices)
	shortcutOverlay *ShortcutOverlay
}

// Styling for footer elements
var (
	footerKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextDescription))

	footerDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextDescription))

	footerSeparatorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.SeparatorColor))

	footerStatusStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.ErrorStatus))

	footerStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// NewFooter creates a new footer component
func NewFooter() *Footer {
	return &Footer{
		height: 1,
	}
}

// SetShortcutOverlay sets the shortcut overlay for the footer
func (f *Footer) SetShortcutOverlay(overlay *ShortcutOverlay) {
	f.shortcutOverlay = overlay
}

// SetSize updates the footer dimensions
func (f *Footer) SetSize(width, height int) {
	f.width = width
	f.height = height
}

// SetStatus shows msg in place of the shortcuts until cleared with "".
func (f *Footer) SetStatus(msg string) {
	f.status = msg
}

// Status returns the current status line.
func (f *Footer) Status() string {
	return f.status
}

// GetShortcuts returns the current shortcuts to display based on mode
func (f *Footer) GetShortcuts() []Shortcut {
	if f.shortcutOverlay != nil {
		return f.shortcutOverlay.FormatShortcuts()
	}
	return []Shortcut{}
}

// View renders the footer
func (f *Footer) View() string {
	if f.width == 0 {
		return ""
	}

	if f.status != "" {
		return lipgloss.Place(f.width, f.height, lipgloss.Center, lipgloss.Center,
			footerStyle.Render(footerStatusStyle.Render(f.status)))
	}

	shortcuts := f.GetShortcuts()
	if len(shortcuts) == 0 {
		return ""
	}

	// Page and mode shortcuts are highlighted; quit/help trail in gray.
	var contextual []Shortcut
	var global []Shortcut
	for _, shortcut := range shortcuts {
		if shortcut.IsGlobal {
			global = append(global, shortcut)
		} else {
			contextual = append(contextual, shortcut)
		}
	}

	var parts []string
	for i, shortcut := range contextual {
		if i > 0 {
			parts = append(parts, footerSeparatorStyle.Render(" • "))
		}
		keyStyle := footerKeyStyle.Bold(true).Foreground(lipgloss.Color(theme.TextPrimary))
		descStyle := footerDescStyle.Foreground(lipgloss.Color(theme.TextPrimary))
		parts = append(parts, keyStyle.Render(shortcut.Key)+" "+descStyle.Render(shortcut.Description))
	}

	if len(contextual) > 0 && len(global) > 0 {
		parts = append(parts, footerSeparatorStyle.Render(" │ "))
	}

	for i, shortcut := range global {
		if i > 0 {
			parts = append(parts, footerSeparatorStyle.Render(" • "))
		}
		keyStyle := footerKeyStyle.Bold(true)
		parts = append(parts, keyStyle.Render(shortcut.Key)+" "+footerDescStyle.Render(shortcut.Description))
	}

	content := strings.Join(parts, "")

	// Center the footer content
	return lipgloss.Place(
		f.width,
		f.height,
		lipgloss.Center,
		lipgloss.Center,
		footerStyle.Render(content),
	)
}
