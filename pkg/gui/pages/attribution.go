package pages

import (
	"strings"

	"beacon/pkg/analytics"
	"beacon/pkg/common"
	"beacon/pkg/gui/components"
	"beacon/pkg/gui/icons"
	"beacon/pkg/gui/theme"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"go.uber.org/zap"
)

// SavedMessage is shown after the attribution settings are saved.
const SavedMessage = "Attribution settings saved successfully!"

var (
	optionTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.TextPrimary)).
				Bold(true)

	recommendedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.InfoStatus))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.BeaconColor)).
			Bold(true)
)

// AttributionPage lets the user pick an attribution model. The choice lives
// only as long as the page; saving just confirms it.
type AttributionPage struct {
	*BasePage
	keyMap   *common.GlobalKeyMap
	logger   *zap.Logger
	cursor   int
	selected analytics.AttributionModel
	expanded map[analytics.AttributionModel]bool
}

// NewAttributionPage creates the attribution settings page with the
// default model selected.
func NewAttributionPage(index int, keyMap *common.GlobalKeyMap, logger *zap.Logger) *AttributionPage {
	if logger == nil {
		logger = zap.NewNop()
	}
	selected := analytics.AttributionOptions[0].Model
	for _, opt := range analytics.AttributionOptions {
		if opt.IsDefault {
			selected = opt.Model
		}
	}
	return &AttributionPage{
		BasePage: NewBasePage(index, "Attribution Intelligence", "Configure your advanced click tracking attribution model", false),
		keyMap:   keyMap,
		logger:   logger,
		selected: selected,
		expanded: map[analytics.AttributionModel]bool{},
	}
}

// Selected returns the chosen model.
func (p *AttributionPage) Selected() analytics.AttributionModel {
	return p.selected
}

// Expanded reports whether the details of m are shown.
func (p *AttributionPage) Expanded(m analytics.AttributionModel) bool {
	return p.expanded[m]
}

// Save confirms the current selection. Nothing is persisted.
func (p *AttributionPage) Save() tea.Cmd {
	p.logger.Info("selected attribution model", zap.String("model", string(p.selected)))
	return components.ShowToast("", SavedMessage, components.ToastSuccess)
}

// HandleKey handles selection, expansion and save
func (p *AttributionPage) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	opt := analytics.AttributionOptions[p.cursor]
	switch {
	case key.Matches(msg, p.keyMap.Save):
		return true, p.Save()
	case key.Matches(msg, p.keyMap.Toggle):
		p.expanded[opt.Model] = !p.expanded[opt.Model]
		return true, nil
	case key.Matches(msg, p.keyMap.Confirm):
		p.selected = opt.Model
		return true, nil
	}
	return false, nil
}

// MoveUp moves the option cursor up
func (p *AttributionPage) MoveUp() bool {
	if p.cursor == 0 {
		return false
	}
	p.cursor--
	return true
}

// MoveDown moves the option cursor down
func (p *AttributionPage) MoveDown() bool {
	if p.cursor >= len(analytics.AttributionOptions)-1 {
		return false
	}
	p.cursor++
	return true
}

// Update does nothing; the page is driven by HandleKey.
func (p *AttributionPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	return p, nil
}

// GetPageSpecificKeybindings returns the attribution bindings
func (p *AttributionPage) GetPageSpecificKeybindings() []key.Binding {
	selectBinding := key.NewBinding(key.WithKeys("enter"), key.WithHelp("↵", "select"))
	return []key.Binding{p.keyMap.Up, p.keyMap.Down, selectBinding, p.keyMap.Toggle, p.keyMap.Save}
}

// View renders the option list
func (p *AttributionPage) View() string {
	width := max(p.GetWidth()-6, 20)

	var lines []string
	lines = append(lines, sectionStyle.Render(icons.TrendingUp.Get()+"  Smart Attribution Models"))
	lines = append(lines, mutedStyle.Render("Choose how you want to track and attribute your conversions"))
	lines = append(lines, "")

	for i, opt := range analytics.AttributionOptions {
		cursor := "  "
		if i == p.cursor {
			cursor = cursorStyle.Render(icons.Selected.Get()) + " "
		}
		radio := "( )"
		if opt.Model == p.selected {
			radio = cursorStyle.Render("(•)")
		}

		title := optionTitleStyle.Render(opt.Title)
		if opt.IsDefault {
			title += " " + recommendedStyle.Render("Recommended")
		}
		arrow := icons.ArrowDown.Get()
		if p.expanded[opt.Model] {
			arrow = icons.ArrowUp.Get()
		}

		lines = append(lines, cursor+radio+" "+title+" "+mutedStyle.Render(arrow))
		lines = append(lines, indent(mutedStyle.Render(opt.Subtitle), 6))
		lines = append(lines, indent(wordwrap.String(opt.Description, width), 6))

		if p.expanded[opt.Model] {
			for _, b := range opt.Benefits {
				lines = append(lines, indent(upStyle.Render(icons.Check.Get())+" "+b, 8))
			}
			lines = append(lines, indent(mutedStyle.Render(wordwrap.String("Use case: "+opt.UseCase, width-2)), 8))
		}
		lines = append(lines, "")
	}

	current, _ := analytics.FindAttributionOption(p.selected)
	lines = append(lines, mutedStyle.Render("Current model: ")+optionTitleStyle.Render(current.Title))
	return strings.Join(lines, "\n")
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}
