// Package pages holds the analytics views shown in the main content pane.
package pages

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Page represents a common interface for all pages in the application
type Page interface {
	// Core page functionality
	SetSize(width, height int)
	SetActive(active bool)
	IsActive() bool
	GetIndex() int

	// Title management
	GetTitle() string
	GetSubtitle() string

	// Gated pages are hidden behind onboarding until it is completed
	Gated() bool

	// OnShow runs each time the page becomes visible
	OnShow() tea.Cmd

	// Content and rendering
	View() string
	Update(msg tea.Msg) (Page, tea.Cmd)

	// Navigation and key handling
	HandleKey(msg tea.KeyMsg) (handled bool, cmd tea.Cmd)
	MoveUp() bool   // returns true if navigation occurred, false if not supported
	MoveDown() bool // returns true if navigation occurred, false if not supported

	// Keybindings shown in the footer while this page is active
	GetPageSpecificKeybindings() []key.Binding
}

// BasePage provides default implementations for common page functionality
type BasePage struct {
	index    int
	width    int
	height   int
	isActive bool
	gated    bool
	title    string
	subtitle string
}

// NewBasePage creates a new BasePage
func NewBasePage(index int, title, subtitle string, gated bool) *BasePage {
	return &BasePage{
		index:    index,
		title:    title,
		subtitle: subtitle,
		gated:    gated,
	}
}

// SetSize updates the page dimensions
func (p *BasePage) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetActive sets whether this page is currently shown
func (p *BasePage) SetActive(active bool) {
	p.isActive = active
}

// IsActive returns whether this page is currently shown
func (p *BasePage) IsActive() bool {
	return p.isActive
}

// GetIndex returns the page's index (used for keybindings like 1, 2, 3)
func (p *BasePage) GetIndex() int {
	return p.index
}

// GetTitle returns the page's title
func (p *BasePage) GetTitle() string {
	return p.title
}

// GetSubtitle returns the page's subtitle
func (p *BasePage) GetSubtitle() string {
	return p.subtitle
}

// Gated reports whether the page sits behind onboarding
func (p *BasePage) Gated() bool {
	return p.gated
}

// OnShow does nothing by default
func (p *BasePage) OnShow() tea.Cmd {
	return nil
}

// View returns a default empty view - should be overridden by implementations
func (p *BasePage) View() string {
	return ""
}

// HandleKey processes keyboard input - default implementation handles nothing
func (p *BasePage) HandleKey(msg tea.KeyMsg) (handled bool, cmd tea.Cmd) {
	return false, nil
}

// MoveUp provides default no-navigation implementation
func (p *BasePage) MoveUp() bool {
	return false
}

// MoveDown provides default no-navigation implementation
func (p *BasePage) MoveDown() bool {
	return false
}

// GetPageSpecificKeybindings returns page-specific keybindings - default is empty
func (p *BasePage) GetPageSpecificKeybindings() []key.Binding {
	return []key.Binding{}
}

// GetWidth returns the current width
func (p *BasePage) GetWidth() int {
	return p.width
}

// GetHeight returns the current height
func (p *BasePage) GetHeight() int {
	return p.height
}

// InputCapturer is implemented by pages that edit text. While capturing,
// keys go straight to the page instead of the global bindings.
type InputCapturer interface {
	CapturingInput() bool
}
