package main

import (
	"fmt"
	"strings"

	"beacon/internal/debug"
	"beacon/pkg/analytics"
	"beacon/pkg/common"
	"beacon/pkg/gui/components"
	"beacon/pkg/gui/gate"
	"beacon/pkg/gui/icons"
	"beacon/pkg/gui/layout"
	"beacon/pkg/gui/overlays"
	"beacon/pkg/gui/pages"
	"beacon/pkg/gui/theme"
	"beacon/pkg/onboarding"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/ansi"
	"go.uber.org/zap"
)

// storeReloadedMsg is posted by the storage watcher after another process
// changed the onboarding state.
type storeReloadedMsg struct{}

// toastMargin keeps the toast off the right border.
const toastMargin = 2

var (
	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextMuted)).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.White)).
			Background(lipgloss.Color(theme.BeaconColor)).
			Bold(true).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextPrimary)).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextDescription))
)

type model struct {
	layout *layout.Layout
	ready  bool

	store  *onboarding.Store
	gate   *gate.Gate
	pages  []pages.Page
	active int

	keyMap          *common.GlobalKeyMap
	shortcutOverlay *common.ShortcutOverlay
	footer          *common.Footer

	helpDialog *overlays.HelpDialog
	showHelp   bool

	wizardDialog *overlays.WizardDialog
	showWizard   bool

	toast  *components.Toast
	logger *zap.Logger
}

func initialModel(store *onboarding.Store, data analytics.Dataset, logger *zap.Logger) model {
	keyMap := common.GlobalKeys

	shortcutOverlay := common.NewShortcutOverlay(keyMap)
	footer := common.NewFooter()
	footer.SetShortcutOverlay(shortcutOverlay)

	m := model{
		layout:          layout.NewLayout(80, 24),
		store:           store,
		gate:            gate.New(),
		keyMap:          keyMap,
		shortcutOverlay: shortcutOverlay,
		footer:          footer,
		helpDialog:      overlays.NewHelpDialog(keyMap),
		toast:           components.NewToast(),
		logger:          logger,
	}

	m.pages = []pages.Page{
		pages.NewDashboardPage(0, data),
		pages.NewProductsPage(1, keyMap, data.Products),
		pages.NewProductAnalyticsPage(2, keyMap, data.Products),
		pages.NewSalesPage(3, keyMap, data),
		pages.NewAdsPage(4, data.Campaigns),
		pages.NewAttributionPage(5, keyMap, logger.Named("attribution")),
		pages.NewRevenuePage(6, data),
		pages.NewSettingsPage(7, keyMap, logger.Named("settings")),
	}
	m.pages[0].SetActive(true)
	m.refreshMode()

	return m
}

func (m model) Init() tea.Cmd {
	return m.showPage()
}

func (m model) activePage() pages.Page {
	return m.pages[m.active]
}

// contentVisible reports whether the active page renders its own content
// rather than the onboarding prompt.
func (m model) contentVisible() bool {
	page := m.activePage()
	return !page.Gated() || gate.Decide(m.store.IsCompleted()) == gate.ShowContent
}

// showPage runs the active page's OnShow hook once its content is visible.
func (m model) showPage() tea.Cmd {
	if !m.contentVisible() {
		return nil
	}
	return m.activePage().OnShow()
}

func (m model) switchToPage(index int) (model, tea.Cmd) {
	if index < 0 || index >= len(m.pages) || index == m.active {
		return m, nil
	}

	m.activePage().SetActive(false)
	m.active = index
	m.activePage().SetActive(true)
	m.refreshMode()

	debug.DebugLog("switched to page %s", m.activePage().GetTitle())
	return m, m.showPage()
}

// refreshMode points the footer at the shortcuts of the current context.
func (m *model) refreshMode() {
	page := m.activePage()

	switch {
	case m.showWizard:
		m.shortcutOverlay.SetMode(common.ModeWizard)
		m.shortcutOverlay.SetPageBindings(nil)
	case !page.Gated():
		m.shortcutOverlay.SetMode(common.ModePage)
		m.shortcutOverlay.SetPageBindings(page.GetPageSpecificKeybindings())
	case m.store.IsCompleted():
		m.shortcutOverlay.SetMode(common.ModeContent)
		m.shortcutOverlay.SetPageBindings(page.GetPageSpecificKeybindings())
	default:
		m.shortcutOverlay.SetMode(common.ModeGate)
		m.shortcutOverlay.SetPageBindings(nil)
	}
}

func (m model) resize(width, height int) model {
	m.layout.Update(width, height)
	m.ready = true

	m.footer.SetSize(width, layout.FooterRows)
	m.helpDialog.SetSize(width, height)
	if m.wizardDialog != nil {
		m.wizardDialog.SetSize(width, height)
	}

	contentWidth, contentHeight := m.layout.GetContentDimensions()
	m.gate.SetSize(contentWidth, contentHeight)
	for _, page := range m.pages {
		if page.Gated() {
			// The reset hint takes the first row.
			page.SetSize(contentWidth, contentHeight-1)
			continue
		}
		page.SetSize(contentWidth, contentHeight)
	}
	return m
}

func (m model) openWizard() (model, tea.Cmd) {
	store := m.store
	footer := m.footer
	logger := m.logger

	wizard := onboarding.NewWizard(func() {
		if err := store.Complete(); err != nil {
			logger.Error("failed to persist onboarding completion", zap.Error(err))
			footer.SetStatus("Setup finished but could not be saved: " + err.Error())
		}
	})

	m.wizardDialog = overlays.NewWizardDialog(wizard, m.keyMap, m.logger.Named("wizard"))
	m.wizardDialog.SetSize(m.layout.GetWidth(), m.layout.GetHeight())
	m.showWizard = true
	m.refreshMode()

	return m, m.wizardDialog.Init()
}

func (m model) resetSetup() model {
	if err := m.store.Reset(); err != nil {
		m.logger.Error("failed to reset onboarding", zap.Error(err))
		m.footer.SetStatus("Reset applied but could not be saved: " + err.Error())
	}
	m.refreshMode()
	return m
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case overlays.WizardClosedMsg:
		m.showWizard = false
		m.wizardDialog = nil
		m.refreshMode()
		if msg.Completed {
			m.logger.Info("onboarding completed from wizard")
			return m, m.showPage()
		}
		return m, nil

	case storeReloadedMsg:
		m.refreshMode()
		return m, m.showPage()

	case components.ShowToastMsg:
		return m, m.toast.Show(msg)

	case components.ToastExpiredMsg:
		m.toast.Expire(msg)
		return m, nil

	case spinner.TickMsg:
		if m.wizardDialog != nil {
			_, cmd := m.wizardDialog.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	page, cmd := m.activePage().Update(msg)
	m.pages[m.active] = page
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.showWizard && m.wizardDialog != nil {
		_, cmd := m.wizardDialog.Update(msg)
		return m, cmd
	}

	m.footer.SetStatus("")

	if c, ok := m.activePage().(pages.InputCapturer); ok && c.CapturingInput() && msg.Type != tea.KeyCtrlC {
		_, cmd := m.activePage().HandleKey(msg)
		m.refreshMode()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keyMap.Keybindings):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keyMap.NextPage):
		return m.switchToPage((m.active + 1) % len(m.pages))
	case key.Matches(msg, m.keyMap.PrevPage):
		return m.switchToPage((m.active + len(m.pages) - 1) % len(m.pages))
	case key.Matches(msg, m.keyMap.PageDashboard):
		return m.switchToPage(0)
	case key.Matches(msg, m.keyMap.PageProducts):
		return m.switchToPage(1)
	case key.Matches(msg, m.keyMap.PageProductAnalytics):
		return m.switchToPage(2)
	case key.Matches(msg, m.keyMap.PageSales):
		return m.switchToPage(3)
	case key.Matches(msg, m.keyMap.PageAds):
		return m.switchToPage(4)
	case key.Matches(msg, m.keyMap.PageAttribution):
		return m.switchToPage(5)
	case key.Matches(msg, m.keyMap.PageRevenue):
		return m.switchToPage(6)
	case key.Matches(msg, m.keyMap.PageSettings):
		return m.switchToPage(7)
	}

	page := m.activePage()
	if page.Gated() {
		if !m.store.IsCompleted() {
			if key.Matches(msg, m.keyMap.StartSetup) {
				return m.openWizard()
			}
			return m, nil
		}
		if key.Matches(msg, m.keyMap.ResetSetup) {
			return m.resetSetup(), nil
		}
	}

	if handled, cmd := page.HandleKey(msg); handled {
		// Pages may swap their footer bindings on a key.
		m.refreshMode()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keyMap.Up):
		page.MoveUp()
	case key.Matches(msg, m.keyMap.Down):
		page.MoveDown()
	}
	return m, nil
}

func (m model) renderTabs() string {
	tabs := m.tabLabels(false)
	if lipgloss.Width(tabs) > m.layout.GetWidth()-2*layout.HorizontalMargin {
		// Too narrow for every title: only the active tab keeps its name.
		tabs = m.tabLabels(true)
	}
	return tabs
}

func (m model) tabLabels(compact bool) string {
	completed := m.store.IsCompleted()

	tabs := make([]string, 0, len(m.pages))
	for i, page := range m.pages {
		label := fmt.Sprintf("%d", i+1)
		if !compact || i == m.active {
			label += " " + page.GetTitle()
		}
		if page.Gated() && !completed {
			label += " " + icons.Lock.Get()
		}
		if i == m.active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m model) renderTitle() string {
	page := m.activePage()
	title := titleStyle.Render(page.GetTitle())
	if sub := page.GetSubtitle(); sub != "" {
		title += "  " + subtitleStyle.Render(sub)
	}
	return title
}

func (m model) renderContent() string {
	page := m.activePage()
	if !page.Gated() {
		return page.View()
	}

	completed := m.store.IsCompleted()
	if gate.Decide(completed) == gate.ShowPrompt {
		return m.gate.View("", completed)
	}
	return m.gate.View(page.View(), completed)
}

func (m model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	pane := m.layout.RenderPane(m.renderContent(), true)
	frame := m.layout.Frame(m.renderTabs(), m.renderTitle(), pane)

	bottomComponents := []string{frame, m.footer.View()}
	for i := 0; i < layout.BottomMarginRows; i++ {
		bottomComponents = append(bottomComponents, "")
	}
	mainView := lipgloss.JoinVertical(lipgloss.Left, bottomComponents...)

	if m.toast.Visible() {
		toast := m.toast.View()
		x := m.layout.GetWidth() - toastWidth(toast) - toastMargin
		if x < 0 {
			x = 0
		}
		mainView = overlays.PlaceOverlay(x, layout.TopPaddingRows, toast, mainView, false)
	}

	if m.showHelp {
		return overlays.PlaceOverlay(0, 0, m.helpDialog.View(), mainView, true)
	}

	if m.showWizard && m.wizardDialog != nil {
		return overlays.PlaceOverlay(0, 0, m.wizardDialog.View(), mainView, true)
	}

	return mainView
}

func toastWidth(view string) int {
	width := 0
	for _, line := range strings.Split(view, "\n") {
		if w := ansi.PrintableRuneWidth(line); w > width {
			width = w
		}
	}
	return width
}
