package overlays

import (
	"fmt"
	"strings"

	"beacon/pkg/common"
	"beacon/pkg/gui/components"
	"beacon/pkg/gui/icons"
	"beacon/pkg/gui/theme"
	"beacon/pkg/onboarding"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"
	"go.uber.org/zap"
)

// WizardDialog drives an onboarding.Wizard from key presses.
type WizardDialog struct {
	wizard    *onboarding.Wizard
	keyMap    *common.GlobalKeyMap
	progress  progress.Model
	loader    *components.Loader
	logger    *zap.Logger
	sessionID string
	width     int
	height    int
}

// WizardClosedMsg is emitted when the dialog closes. Completed is true only
// when the wizard finished with every step done.
type WizardClosedMsg struct {
	Completed bool
}

const (
	wizardContentWidth = 68
	wizardTileWidth    = 16
)

var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.TextDescription)).
			Padding(1, 2)

	dialogTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.TextPrimary)).
				Bold(true)

	dialogSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.TextDescription))

	dialogInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.InfoStatus)).
			Bold(true)

	dialogHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextMuted))

	primaryDialogButtonStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color(theme.White)).
					Background(lipgloss.Color(theme.BeaconColor)).
					Padding(0, 2).
					Bold(true)

	choiceButtonStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color(theme.BorderMuted)).
				Foreground(lipgloss.Color(theme.TextPrimary)).
				Padding(0, 1)

	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Width(wizardTileWidth - 2).
			Align(lipgloss.Center)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.SuccessStatus))

	badgeStyles = map[string]lipgloss.Style{
		onboarding.BadgeRequired:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ErrorStatus)),
		onboarding.BadgeRecommended: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.WarningStatus)),
		onboarding.BadgeOptional:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TextMuted)),
	}
)

// NewWizardDialog creates a dialog over wizard.
func NewWizardDialog(wizard *onboarding.Wizard, keyMap *common.GlobalKeyMap, logger *zap.Logger) *WizardDialog {
	if logger == nil {
		logger = zap.NewNop()
	}
	sessionID := uuid.NewString()

	bar := progress.New(
		progress.WithSolidFill(theme.BeaconColor),
		progress.WithoutPercentage(),
		progress.WithWidth(wizardContentWidth),
	)

	return &WizardDialog{
		wizard:    wizard,
		keyMap:    keyMap,
		progress:  bar,
		loader:    components.NewLoader(),
		logger:    logger.With(zap.String("wizard_session", sessionID)),
		sessionID: sessionID,
	}
}

// Init implements tea.Model
func (d *WizardDialog) Init() tea.Cmd {
	d.logger.Info("setup wizard opened")
	return d.loader.TickCmd()
}

// Wizard returns the underlying state machine.
func (d *WizardDialog) Wizard() *onboarding.Wizard {
	return d.wizard
}

// SessionID identifies this dialog instance in logs.
func (d *WizardDialog) SessionID() string {
	return d.sessionID
}

// SetSize updates the dialog dimensions
func (d *WizardDialog) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Update implements tea.Model
func (d *WizardDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return d, d.handleKey(msg)
	case spinner.TickMsg:
		// Nothing is pending once every step is done.
		if d.wizard.AllCompleted() {
			d.loader.Stop()
		}
		return d, d.loader.Update(msg)
	}
	return d, nil
}

func (d *WizardDialog) handleKey(msg tea.KeyMsg) tea.Cmd {
	w := d.wizard

	switch {
	case key.Matches(msg, d.keyMap.WizardClose):
		w.Close()
		d.logger.Info("setup wizard dismissed", zap.Int("completed_steps", w.CompletedCount()))
		return closeWizard(false)

	case key.Matches(msg, d.keyMap.WizardAdvance):
		if w.AllCompleted() {
			if !w.Finish() {
				return nil
			}
			d.logger.Info("setup wizard finished")
			return closeWizard(true)
		}
		step := w.CurrentStep()
		if err := w.Advance(w.Current()); err != nil {
			d.logger.Error("failed to advance wizard", zap.Error(err))
			return nil
		}
		d.logger.Debug("wizard step completed",
			zap.String("step", string(step.ID)),
			zap.Float64("progress", w.Progress()))

	case key.Matches(msg, d.keyMap.WizardPrevious):
		w.Previous()

	case key.Matches(msg, d.keyMap.WizardSkip):
		w.Skip()

	case key.Matches(msg, d.keyMap.WizardSelect):
		var i int
		if _, err := fmt.Sscanf(msg.String(), "%d", &i); err == nil {
			w.Select(i - 1)
		}
	}
	return nil
}

func closeWizard(completed bool) tea.Cmd {
	return func() tea.Msg {
		return WizardClosedMsg{Completed: completed}
	}
}

// View implements tea.Model and renders the dialog
func (d *WizardDialog) View() string {
	w := d.wizard
	width := d.contentWidth()

	var content []string
	content = append(content, lipgloss.PlaceHorizontal(width, lipgloss.Center, dialogTitleStyle.Render("Welcome to Analytics")))
	content = append(content, lipgloss.PlaceHorizontal(width, lipgloss.Center, dialogSubtitleStyle.Render("Complete the setup to unlock powerful insights")))
	content = append(content, "")

	counter := dialogInfoStyle.Render(fmt.Sprintf("%d/%d completed", w.CompletedCount(), w.Len()))
	label := dialogSubtitleStyle.Render("Setup Progress")
	gap := width - lipgloss.Width(label) - lipgloss.Width(counter)
	if gap < 1 {
		gap = 1
	}
	content = append(content, label+strings.Repeat(" ", gap)+counter)

	d.progress.Width = width
	content = append(content, d.progress.ViewAs(w.Progress()))
	content = append(content, "")

	content = append(content, d.renderTiles())
	content = append(content, "")

	if w.AllCompleted() {
		content = append(content, d.renderComplete(width))
	} else {
		content = append(content, d.renderStep(width))
		content = append(content, "")
		content = append(content, d.renderNavigation(width))
	}

	return dialogStyle.Width(width + dialogStyle.GetHorizontalPadding()).Render(strings.Join(content, "\n"))
}

func (d *WizardDialog) contentWidth() int {
	width := wizardContentWidth
	if d.width > 0 {
		if maxWidth := d.width - dialogStyle.GetHorizontalFrameSize(); maxWidth < width {
			width = maxWidth
		}
	}
	if width < wizardTileWidth {
		width = wizardTileWidth
	}
	return width
}

func (d *WizardDialog) renderTiles() string {
	w := d.wizard
	tiles := make([]string, 0, w.Len())
	for i, step := range w.Steps() {
		style := tileStyle.BorderForeground(lipgloss.Color(theme.BorderMuted))
		glyph := dialogHintStyle.Render(icons.StepState(false))
		switch {
		case step.Completed:
			style = style.BorderForeground(lipgloss.Color(theme.SuccessStatus))
			glyph = successStyle.Render(icons.StepState(true))
		case i == w.Current():
			style = style.BorderForeground(lipgloss.Color(theme.InfoStatus))
		}
		title := wordwrap.String(step.Title, wizardTileWidth-4)
		tiles = append(tiles, style.Render(glyph+"\n"+title))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

func (d *WizardDialog) renderStep(width int) string {
	step := d.wizard.CurrentStep()
	body := onboarding.Content(step.ID)

	var lines []string
	lines = append(lines, dialogTitleStyle.Render(icons.ForStep(step.ID)+"  "+step.Title))
	lines = append(lines, dialogSubtitleStyle.Render(wordwrap.String(step.Description, width)))
	lines = append(lines, "")

	if body.Heading != "" {
		lines = append(lines, dialogInfoStyle.Render(body.Heading))
	}

	if len(body.Choices) > 0 {
		choices := make([]string, 0, len(body.Choices))
		for _, c := range body.Choices {
			choices = append(choices, choiceButtonStyle.Render(c))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, choices...))
	}

	for _, item := range body.Items {
		lines = append(lines, d.renderItem(item, width))
	}

	lines = append(lines, "")
	if step.Completed {
		lines = append(lines, successStyle.Render(icons.Check.Get()+" Completed"))
	} else {
		button := body.Button
		if button == "" {
			button = step.Action
		}
		lines = append(lines, primaryDialogButtonStyle.Render(button+" (↵)"))
	}

	return strings.Join(lines, "\n")
}

func (d *WizardDialog) renderItem(item onboarding.ContentItem, width int) string {
	switch {
	case item.Pending:
		return "  " + dialogInfoStyle.Render(d.loader.View(item.Label))
	case item.Done:
		return "  " + successStyle.Render(icons.Check.Get()) + " " + item.Label
	}

	line := "  • " + item.Label
	if style, ok := badgeStyles[item.Badge]; ok {
		badge := style.Render(item.Badge)
		gap := width - lipgloss.Width(line) - lipgloss.Width(badge)
		if gap < 1 {
			gap = 1
		}
		line += strings.Repeat(" ", gap) + badge
	}
	return line
}

func (d *WizardDialog) renderNavigation(width int) string {
	w := d.wizard
	prev := dialogHintStyle.Render("← Previous")
	if !w.CanGoBack() {
		prev = dialogHintStyle.Faint(true).Render("← Previous")
	}
	skip := dialogHintStyle.Render("Skip Step →")
	if !w.CanSkip() {
		skip = dialogHintStyle.Faint(true).Render("Skip Step →")
	}
	gap := width - lipgloss.Width(prev) - lipgloss.Width(skip)
	if gap < 1 {
		gap = 1
	}
	return prev + strings.Repeat(" ", gap) + skip
}

func (d *WizardDialog) renderComplete(width int) string {
	lines := []string{
		successStyle.Bold(true).Render(icons.Check.Get()),
		"",
		dialogTitleStyle.Render("Setup Complete!"),
		dialogSubtitleStyle.Render("Your analytics dashboard is ready to use"),
		"",
		primaryDialogButtonStyle.Render("Start Using Analytics →"),
		dialogHintStyle.Render("press ↵"),
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Center, lines...))
}
