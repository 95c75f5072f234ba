package overlays

import (
	"testing"

	"beacon/pkg/common"
	"beacon/pkg/gui/icons"
	"beacon/pkg/onboarding"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestDialog(t *testing.T) (*WizardDialog, *int) {
	t.Helper()
	icons.SetNerdFonts(false)
	calls := 0
	w := onboarding.NewWizard(func() { calls++ })
	d := NewWizardDialog(w, common.NewGlobalKeyMap(), zap.NewNop())
	d.SetSize(120, 50)
	return d, &calls
}

// press feeds msg to the dialog and runs the returned command, if any.
func press(t *testing.T, d *WizardDialog, msg tea.Msg) tea.Msg {
	t.Helper()
	_, cmd := d.Update(msg)
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestWizardDialogCompletesOnlyAfterAllSteps(t *testing.T) {
	d, calls := newTestDialog(t)

	for i := 0; i < 4; i++ {
		assert.Nil(t, press(t, d, enterKey), "step %d should not close the dialog", i)
	}
	assert.True(t, d.Wizard().AllCompleted())
	assert.Equal(t, 0, *calls)
	assert.Contains(t, d.View(), "Setup Complete!")

	msg := press(t, d, enterKey)
	assert.Equal(t, WizardClosedMsg{Completed: true}, msg)
	assert.Equal(t, 1, *calls)
	assert.True(t, d.Wizard().Closed())
}

func TestWizardDialogEscapeDiscardsProgress(t *testing.T) {
	d, calls := newTestDialog(t)

	press(t, d, enterKey)
	msg := press(t, d, escKey)

	assert.Equal(t, WizardClosedMsg{Completed: false}, msg)
	assert.Equal(t, 0, *calls)
	assert.True(t, d.Wizard().Closed())
}

func TestWizardDialogNavigation(t *testing.T) {
	d, _ := newTestDialog(t)
	w := d.Wizard()

	press(t, d, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, w.Current())

	press(t, d, tea.KeyMsg{Type: tea.KeyRight})
	press(t, d, runeKey("l"))
	press(t, d, runeKey("l"))
	press(t, d, runeKey("l"))
	assert.Equal(t, 3, w.Current())
	assert.Equal(t, 0, w.CompletedCount())

	press(t, d, runeKey("h"))
	assert.Equal(t, 2, w.Current())

	press(t, d, runeKey("1"))
	assert.Equal(t, 0, w.Current())

	// Completed steps cannot be selected.
	press(t, d, enterKey)
	press(t, d, runeKey("1"))
	assert.Equal(t, 1, w.Current())
}

func TestWizardDialogSpaceAdvances(t *testing.T) {
	d, _ := newTestDialog(t)

	press(t, d, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, 1, d.Wizard().CompletedCount())
	assert.Equal(t, 1, d.Wizard().Current())
}

func TestWizardDialogViewShowsStepContent(t *testing.T) {
	d, _ := newTestDialog(t)

	view := d.View()
	assert.Contains(t, view, "Welcome to Analytics")
	assert.Contains(t, view, "0/4 completed")
	assert.Contains(t, view, "Choose Your Platform")
	assert.Contains(t, view, "Shopify")

	press(t, d, enterKey)
	view = d.View()
	assert.Contains(t, view, "1/4 completed")
	assert.Contains(t, view, "Google Analytics")
	assert.Contains(t, view, onboarding.BadgeRequired)

	press(t, d, runeKey("4"))
	view = d.View()
	assert.Contains(t, view, "Store Connected")
	assert.Contains(t, view, "Collecting Data...")
}

func TestWizardDialogLoaderStopsOnceAllStepsDone(t *testing.T) {
	d, _ := newTestDialog(t)

	tick := d.Init()()
	_, cmd := d.Update(tick)
	assert.NotNil(t, cmd, "the loader keeps ticking while a step is open")

	for i := 0; i < 4; i++ {
		press(t, d, enterKey)
	}
	require.True(t, d.Wizard().AllCompleted())

	_, cmd = d.Update(tick)
	assert.Nil(t, cmd)
}

func TestWizardDialogLogsWithSessionID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := onboarding.NewWizard(nil)
	d := NewWizardDialog(w, common.NewGlobalKeyMap(), zap.New(core))
	require.NotEmpty(t, d.SessionID())

	d.Init()
	press(t, d, escKey)

	entries := logs.FilterField(zap.String("wizard_session", d.SessionID())).All()
	require.Len(t, entries, 2)
	assert.Equal(t, "setup wizard opened", entries[0].Message)
	assert.Equal(t, "setup wizard dismissed", entries[1].Message)
}
