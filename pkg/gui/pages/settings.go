package pages

import (
	"fmt"
	"strings"

	"beacon/pkg/common"
	"beacon/pkg/gui/components"
	"beacon/pkg/gui/icons"
	"beacon/pkg/gui/theme"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
)

// ClearedMessage is shown after browsing data is cleared.
const ClearedMessage = "Your browsing data has been cleared"

// SettingsSavedMessage is the toast text shown after saving a section.
func SettingsSavedMessage(label string) string {
	return label + " settings saved successfully!"
}

type settingKind int

const (
	settingToggle settingKind = iota
	settingText
	settingReadOnly
	settingAction
)

type setting struct {
	label string
	hint  string
	// group is a subheading rendered above the first setting carrying it.
	group string
	kind  settingKind
	on    bool
	value string
}

type settingsSection struct {
	name        string
	title       string
	description string
	// saveLabel names the section in the saved toast.
	saveLabel string
	items     []setting
}

func defaultSettingsSections() []settingsSection {
	return []settingsSection{
		{
			name:        "General",
			title:       "General Settings",
			description: "Manage your basic application settings",
			saveLabel:   "General",
			items: []setting{
				{label: "Store Name", kind: settingText, value: "Sales Beacon"},
				{label: "Dark Mode", kind: settingToggle, hint: "Enable dark theme for the application"},
			},
		},
		{
			name:        "Profile",
			title:       "Profile Settings",
			description: "Update your personal information",
			saveLabel:   "Profile",
			items: []setting{
				{label: "Your Name", kind: settingText, value: "John Doe"},
				{label: "Email Address", kind: settingText, value: "john@example.com"},
				{label: "Role", kind: settingReadOnly, value: "Administrator", hint: "Contact an administrator to change your role"},
			},
		},
		{
			name:        "Notifications",
			title:       "Notification Preferences",
			description: "Choose when and how you want to be notified",
			saveLabel:   "Notification",
			items: []setting{
				{label: "Sales Reports", group: "Email Notifications", kind: settingToggle, on: true},
				{label: "New Orders", group: "Email Notifications", kind: settingToggle, on: true},
				{label: "Inventory Updates", group: "Email Notifications", kind: settingToggle},
				{label: "Sales Updates", group: "Push Notifications", kind: settingToggle, on: true},
				{label: "New Orders", group: "Push Notifications", kind: settingToggle},
				{label: "Inventory Alerts", group: "Push Notifications", kind: settingToggle},
			},
		},
		{
			name:        "Privacy",
			title:       "Privacy Settings",
			description: "Configure your data sharing and privacy preferences",
			saveLabel:   "Privacy",
			items: []setting{
				{label: "Data Sharing", kind: settingToggle, hint: "Allow sharing of anonymized usage data"},
				{label: "Analytics Collection", kind: settingToggle, on: true, hint: "Allow collection of performance analytics"},
				{label: "Session History", kind: settingToggle, on: true, hint: "Store activity history for personalization"},
				{label: "Clear Browsing Data", kind: settingAction, hint: "Remove locally stored activity"},
			},
		},
	}
}

var (
	sectionTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextMuted)).
			Padding(0, 1)

	activeSectionTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.TextPrimary)).
				Background(lipgloss.Color(theme.RowHighlight)).
				Bold(true).
				Padding(0, 1)

	groupStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextDescription)).
			Underline(true)
)

// SettingsPage holds the application preferences, split into sections.
// Values live only as long as the page; saving confirms a section.
type SettingsPage struct {
	*BasePage
	keyMap   *common.GlobalKeyMap
	logger   *zap.Logger
	sections []settingsSection
	section  int
	cursor   int
	editing  bool
	input    textinput.Model
}

// NewSettingsPage creates the settings page on its first section.
func NewSettingsPage(index int, keyMap *common.GlobalKeyMap, logger *zap.Logger) *SettingsPage {
	if logger == nil {
		logger = zap.NewNop()
	}

	input := textinput.New()
	input.CharLimit = 100
	input.Width = 40
	input.PlaceholderStyle = mutedStyle

	return &SettingsPage{
		BasePage: NewBasePage(index, "Settings", "Configure your application preferences", false),
		keyMap:   keyMap,
		logger:   logger,
		sections: defaultSettingsSections(),
		input:    input,
	}
}

// Section returns the name of the shown section.
func (p *SettingsPage) Section() string {
	return p.sections[p.section].name
}

// Editing reports whether a text setting is being edited.
func (p *SettingsPage) Editing() bool {
	return p.editing
}

// CapturingInput reports whether every key should reach the page.
func (p *SettingsPage) CapturingInput() bool {
	return p.editing
}

func (p *SettingsPage) find(section, label string) *setting {
	for si := range p.sections {
		if p.sections[si].name != section {
			continue
		}
		for i := range p.sections[si].items {
			if p.sections[si].items[i].label == label {
				return &p.sections[si].items[i]
			}
		}
	}
	return nil
}

// Enabled reports whether the toggle label in section is on. The first
// setting with that label wins.
func (p *SettingsPage) Enabled(section, label string) bool {
	if s := p.find(section, label); s != nil {
		return s.on
	}
	return false
}

// Value returns the text of label in section.
func (p *SettingsPage) Value(section, label string) string {
	if s := p.find(section, label); s != nil {
		return s.value
	}
	return ""
}

func (p *SettingsPage) current() *setting {
	items := p.sections[p.section].items
	return &items[p.cursor]
}

// NextSection shows the following section, wrapping around.
func (p *SettingsPage) NextSection() {
	p.section = (p.section + 1) % len(p.sections)
	p.cursor = 0
}

// PrevSection shows the previous section, wrapping around.
func (p *SettingsPage) PrevSection() {
	p.section = (p.section + len(p.sections) - 1) % len(p.sections)
	p.cursor = 0
}

// Save confirms the shown section. Nothing is persisted.
func (p *SettingsPage) Save() tea.Cmd {
	sec := p.sections[p.section]
	enabled := 0
	for _, s := range sec.items {
		if s.kind == settingToggle && s.on {
			enabled++
		}
	}
	p.logger.Info("saved settings",
		zap.String("section", sec.name),
		zap.Int("enabled", enabled))
	return components.ShowToast("", SettingsSavedMessage(sec.saveLabel), components.ToastSuccess)
}

// activate runs the default action of the setting under the cursor.
func (p *SettingsPage) activate() tea.Cmd {
	s := p.current()
	switch s.kind {
	case settingToggle:
		s.on = !s.on
	case settingText:
		p.editing = true
		p.input.SetValue(s.value)
		p.input.Placeholder = s.label
		p.input.CursorEnd()
		p.input.Focus()
		return textinput.Blink
	case settingAction:
		p.logger.Info("cleared browsing data")
		return components.ShowToast("", ClearedMessage, components.ToastInfo)
	}
	return nil
}

func (p *SettingsPage) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		if v := strings.TrimSpace(p.input.Value()); v != "" {
			p.current().value = v
		}
		fallthrough
	case tea.KeyEsc:
		p.editing = false
		p.input.Blur()
		return nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// HandleKey handles section switching, toggles, text editing and save
func (p *SettingsPage) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if p.editing {
		return true, p.handleEditKey(msg)
	}

	switch {
	case key.Matches(msg, p.keyMap.Save):
		return true, p.Save()
	case key.Matches(msg, p.keyMap.Left):
		p.PrevSection()
		return true, nil
	case key.Matches(msg, p.keyMap.Right):
		p.NextSection()
		return true, nil
	case key.Matches(msg, p.keyMap.Toggle):
		if s := p.current(); s.kind == settingToggle {
			s.on = !s.on
		}
		return true, nil
	case key.Matches(msg, p.keyMap.Confirm):
		return true, p.activate()
	}
	return false, nil
}

// MoveUp moves the setting cursor up
func (p *SettingsPage) MoveUp() bool {
	if p.cursor == 0 {
		return false
	}
	p.cursor--
	return true
}

// MoveDown moves the setting cursor down
func (p *SettingsPage) MoveDown() bool {
	if p.cursor >= len(p.sections[p.section].items)-1 {
		return false
	}
	p.cursor++
	return true
}

// Update keeps the text input cursor blinking while editing.
func (p *SettingsPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	if !p.editing {
		return p, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// GetPageSpecificKeybindings returns the settings bindings
func (p *SettingsPage) GetPageSpecificKeybindings() []key.Binding {
	if p.editing {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("↵", "apply")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	sectionBinding := key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "section"))
	changeBinding := key.NewBinding(key.WithKeys("enter"), key.WithHelp("↵", "change"))
	return []key.Binding{sectionBinding, p.keyMap.Up, p.keyMap.Down, changeBinding, p.keyMap.Toggle, p.keyMap.Save}
}

func (p *SettingsPage) renderTabs() string {
	tabs := make([]string, 0, len(p.sections))
	for i, sec := range p.sections {
		if i == p.section {
			tabs = append(tabs, activeSectionTabStyle.Render(sec.name))
		} else {
			tabs = append(tabs, sectionTabStyle.Render(sec.name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// View renders the section tabs and the settings of the shown section
func (p *SettingsPage) View() string {
	sec := p.sections[p.section]

	labelWidth := 0
	for _, s := range sec.items {
		labelWidth = max(labelWidth, runewidth.StringWidth(s.label))
	}

	lines := []string{
		p.renderTabs(),
		"",
		sectionStyle.Render(icons.Settings.Get() + "  " + sec.title),
		mutedStyle.Render(sec.description),
		"",
	}

	group := ""
	for i, s := range sec.items {
		if s.group != "" && s.group != group {
			group = s.group
			lines = append(lines, indent(groupStyle.Render(group), 2))
		}

		cursor := "  "
		if i == p.cursor {
			cursor = cursorStyle.Render(icons.Selected.Get()) + " "
		}
		label := optionTitleStyle.Render(runewidth.FillRight(s.label, labelWidth))

		var value string
		switch s.kind {
		case settingToggle:
			if s.on {
				value = upStyle.Render("[x] on")
			} else {
				value = mutedStyle.Render("[ ] off")
			}
		case settingText:
			if p.editing && i == p.cursor {
				value = p.input.View()
			} else {
				value = s.value
			}
		case settingReadOnly:
			value = mutedStyle.Render(s.value)
		case settingAction:
			label = downStyle.Render(runewidth.FillRight(s.label, labelWidth))
			value = mutedStyle.Render("press enter")
		}

		lines = append(lines, fmt.Sprintf("%s%s  %s", cursor, label, value))
		if s.hint != "" {
			lines = append(lines, indent(mutedStyle.Render(s.hint), 4))
		}
	}

	lines = append(lines, "", mutedStyle.Render("Press s to save "+strings.ToLower(sec.saveLabel)+" settings"))
	return strings.Join(lines, "\n")
}
