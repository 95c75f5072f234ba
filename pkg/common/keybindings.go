package common

import (
	"github.com/charmbracelet/bubbles/key"
)

// GlobalKeyMap defines keybindings shared across pages and dialogs.
//
// Some bindings are conceptually owned by a single page (for example Save on
// the attribution page) but live here so the footer and help dialog can list
// them in one place.
type GlobalKeyMap struct {
	// Truly global keys
	Quit        key.Binding // q, Ctrl+C - quit application
	Keybindings key.Binding // ? - show help

	// Page switching
	NextPage             key.Binding // tab
	PrevPage             key.Binding // shift+tab
	PageDashboard        key.Binding // 1
	PageProducts         key.Binding // 2
	PageProductAnalytics key.Binding // 3
	PageSales            key.Binding // 4
	PageAds              key.Binding // 5
	PageAttribution      key.Binding // 6
	PageRevenue          key.Binding // 7
	PageSettings         key.Binding // 8

	// Navigation within a page
	Up    key.Binding // ↑, k
	Down  key.Binding // ↓, j
	Left  key.Binding // ←, h - previous section or column
	Right key.Binding // →, l - next section or column

	// Onboarding gate
	StartSetup key.Binding // Enter, s - open the setup wizard
	ResetSetup key.Binding // R - reset onboarding

	// Wizard dialog
	WizardAdvance  key.Binding // Enter, space - complete current step
	WizardPrevious key.Binding // ←, h
	WizardSkip     key.Binding // →, l
	WizardSelect   key.Binding // 1-4 - jump to a step
	WizardClose    key.Binding // Esc

	// Page actions
	Filter key.Binding // f - cycle product type filter
	Range  key.Binding // r - cycle sales time range
	Toggle key.Binding // space - expand details, flip a switch
	Save   key.Binding // s - save settings

	// Dialog actions
	Confirm key.Binding // Enter, y
	Cancel  key.Binding // Esc, n
}

// GlobalKeys is the keymap used by the application.
var GlobalKeys = NewGlobalKeyMap()

// NewGlobalKeyMap creates a new GlobalKeyMap with default keybindings
func NewGlobalKeyMap() *GlobalKeyMap {
	return &GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Keybindings: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "keybindings"),
		),

		NextPage: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous page"),
		),
		PageDashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "dashboard"),
		),
		PageProducts: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "products"),
		),
		PageProductAnalytics: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "product analytics"),
		),
		PageSales: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "sales"),
		),
		PageAds: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "ads ranking"),
		),
		PageAttribution: key.NewBinding(
			key.WithKeys("6"),
			key.WithHelp("6", "attribution"),
		),
		PageRevenue: key.NewBinding(
			key.WithKeys("7"),
			key.WithHelp("7", "revenue"),
		),
		PageSettings: key.NewBinding(
			key.WithKeys("8"),
			key.WithHelp("8", "settings"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),

		StartSetup: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("↵/s", "start setup"),
		),
		ResetSetup: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset setup"),
		),

		WizardAdvance: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("↵/space", "complete step"),
		),
		WizardPrevious: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		WizardSkip: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "skip"),
		),
		WizardSelect: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "jump to step"),
		),
		WizardClose: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),

		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter type"),
		),
		Range: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "time range"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter", "y"),
			key.WithHelp("↵/y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "n"),
			key.WithHelp("esc/n", "cancel"),
		),
	}
}

// ShortHelp returns a slice of key bindings to show in the short help view
func (k *GlobalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Keybindings,
		k.Quit,
	}
}

// FullHelp returns a slice of key bindings to show in the full help view
func (k *GlobalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quit, k.Keybindings},
		{k.NextPage, k.PrevPage},
		{k.PageDashboard, k.PageProducts, k.PageProductAnalytics, k.PageSales, k.PageAds, k.PageAttribution, k.PageRevenue, k.PageSettings},
		{k.Up, k.Down, k.Left, k.Right},
		{k.StartSetup, k.ResetSetup},
		{k.WizardAdvance, k.WizardPrevious, k.WizardSkip, k.WizardSelect, k.WizardClose},
		{k.Filter, k.Range, k.Toggle, k.Save},
	}
}

// HelpSectionOrder is the order sections appear in the help dialog.
var HelpSectionOrder = []string{"Global", "Pages", "Navigation", "Onboarding", "Setup Wizard", "Page Actions"}

// GetHelpSections returns help sections with categorized keybindings
func (k *GlobalKeyMap) GetHelpSections() map[string][]key.Binding {
	return map[string][]key.Binding{
		"Global": {
			k.Quit,
			k.Keybindings,
		},
		"Pages": {
			k.NextPage,
			k.PrevPage,
			k.PageDashboard,
			k.PageProducts,
			k.PageProductAnalytics,
			k.PageSales,
			k.PageAds,
			k.PageAttribution,
			k.PageRevenue,
			k.PageSettings,
		},
		"Navigation": {
			k.Up,
			k.Down,
			k.Left,
			k.Right,
		},
		"Onboarding": {
			k.StartSetup,
			k.ResetSetup,
		},
		"Setup Wizard": {
			k.WizardAdvance,
			k.WizardPrevious,
			k.WizardSkip,
			k.WizardSelect,
			k.WizardClose,
		},
		"Page Actions": {
			k.Filter,
			k.Range,
			k.Toggle,
			k.Save,
		},
	}
}
