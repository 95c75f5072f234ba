package pages

import (
	"math/rand"
	"testing"
	"time"

	"beacon/pkg/analytics"
	"beacon/pkg/common"
	"beacon/pkg/gui/components"
	"beacon/pkg/gui/icons"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func testDataset() analytics.Dataset {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	return analytics.NewDataset(rand.New(rand.NewSource(11)), 40, 90, now)
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBasePageDefaults(t *testing.T) {
	p := NewBasePage(3, "Title", "Sub", true)
	p.SetSize(10, 5)
	p.SetActive(true)

	assert.Equal(t, 3, p.GetIndex())
	assert.Equal(t, "Title", p.GetTitle())
	assert.Equal(t, "Sub", p.GetSubtitle())
	assert.True(t, p.Gated())
	assert.True(t, p.IsActive())
	assert.Equal(t, 10, p.GetWidth())
	assert.Equal(t, 5, p.GetHeight())
	assert.Nil(t, p.OnShow())
	assert.False(t, p.MoveUp())
	handled, cmd := p.HandleKey(runeKey("x"))
	assert.False(t, handled)
	assert.Nil(t, cmd)
}

func TestDashboardWelcomeToastOnce(t *testing.T) {
	p := NewDashboardPage(0, testDataset())
	p.SetActive(true)
	require.NotNil(t, p.OnShow())

	_, cmd := p.Update(welcomeTickMsg{gen: 0})
	require.NotNil(t, cmd)
	msg, ok := cmd().(components.ShowToastMsg)
	require.True(t, ok)
	assert.Equal(t, welcomeTitle, msg.Title)

	// Shown once per session.
	assert.Nil(t, p.OnShow())
	_, cmd = p.Update(welcomeTickMsg{gen: 0})
	assert.Nil(t, cmd)
}

func TestDashboardWelcomeCancelledWhenLeft(t *testing.T) {
	p := NewDashboardPage(0, testDataset())
	p.SetActive(true)
	p.OnShow()
	p.SetActive(false)

	_, cmd := p.Update(welcomeTickMsg{gen: 0})
	assert.Nil(t, cmd, "stale tick after leaving the page")

	// Coming back schedules a fresh tick that does fire.
	p.SetActive(true)
	require.NotNil(t, p.OnShow())
	_, cmd = p.Update(welcomeTickMsg{gen: 1})
	assert.NotNil(t, cmd)
}

func TestDashboardView(t *testing.T) {
	icons.SetNerdFonts(false)
	p := NewDashboardPage(0, testDataset())
	p.SetSize(100, 40)

	cards := p.Cards()
	require.Len(t, cards, 4)
	assert.Equal(t, "Revenue", cards[0].Title)
	assert.True(t, cards[0].HasChange)

	view := p.View()
	assert.Contains(t, view, "Repeat Customer Rate")
	assert.Contains(t, view, "vs last week")
	assert.Contains(t, view, "Revenue Trend")
	assert.Contains(t, view, "Top Products")
}

func TestProductsFilterCycles(t *testing.T) {
	data := testDataset()
	p := NewProductsPage(1, common.NewGlobalKeyMap(), data.Products)
	p.SetSize(100, 30)

	assert.Equal(t, "", p.Filter())
	assert.Len(t, p.Visible(), len(data.Products))
	for i := 1; i < len(p.Visible()); i++ {
		assert.GreaterOrEqual(t, p.Visible()[i-1].ViewSessions, p.Visible()[i].ViewSessions)
	}

	handled, _ := p.HandleKey(runeKey("f"))
	require.True(t, handled)
	assert.Equal(t, analytics.ProductTypes[0], p.Filter())
	for _, pr := range p.Visible() {
		assert.Equal(t, analytics.ProductTypes[0], pr.ProductType)
	}
	assert.Contains(t, p.View(), analytics.ProductTypes[0])

	for range analytics.ProductTypes {
		p.CycleFilter()
	}
	assert.Equal(t, "", p.Filter(), "filter wraps back to all")
}

func TestSalesRangeCycles(t *testing.T) {
	p := NewSalesPage(2, common.NewGlobalKeyMap(), testDataset())
	p.SetSize(100, 40)
	assert.Equal(t, "Month", p.Range().Label)

	handled, _ := p.HandleKey(runeKey("r"))
	require.True(t, handled)
	assert.Equal(t, "Quarter", p.Range().Label)

	p.CycleRange()
	assert.Equal(t, "Week", p.Range().Label)

	view := p.View()
	assert.Contains(t, view, "Total Revenue")
	assert.Contains(t, view, "Average Order Value")
}

func TestRevenueCards(t *testing.T) {
	p := NewRevenuePage(3, testDataset())
	p.SetSize(100, 40)

	cards := p.Cards()
	require.Len(t, cards, 4)
	assert.Equal(t, "Customer Lifetime Value", cards[3].Title)
	assert.Contains(t, p.View(), "Net Revenue")
}

func TestAdsRankedByROAS(t *testing.T) {
	data := testDataset()
	p := NewAdsPage(4, data.Campaigns)
	p.SetSize(100, 40)

	ranked := p.Ranked()
	require.Len(t, ranked, len(data.Campaigns))
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].ROAS(), ranked[i].ROAS())
	}
	assert.Contains(t, p.View(), ranked[0].Name)
}

func TestAttributionSelectExpandSave(t *testing.T) {
	icons.SetNerdFonts(false)
	core, logs := observer.New(zapcore.InfoLevel)
	p := NewAttributionPage(5, common.NewGlobalKeyMap(), zap.New(core))
	assert.False(t, p.Gated())
	assert.Equal(t, analytics.AttributionLastClick, p.Selected())

	assert.False(t, p.MoveUp())
	require.True(t, p.MoveDown())

	handled, _ := p.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, handled)
	assert.Equal(t, analytics.AttributionFirstClick, p.Selected())

	p.HandleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, p.Expanded(analytics.AttributionFirstClick))
	assert.Contains(t, p.View(), "Rewards top-of-funnel marketing efforts")

	handled, cmd := p.HandleKey(runeKey("s"))
	require.True(t, handled)
	require.NotNil(t, cmd)
	msg := cmd().(components.ShowToastMsg)
	assert.Equal(t, SavedMessage, msg.Text)
	assert.Equal(t, components.ToastSuccess, msg.Level)

	entries := logs.FilterMessage("selected attribution model").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "first-click", entries[0].ContextMap()["model"])
}

func TestSparklineAndBars(t *testing.T) {
	assert.Equal(t, "▁█", sparkline([]float64{1, 2}))
	assert.Equal(t, "██", sparkline([]float64{3, 3}))
	assert.Empty(t, sparkline(nil))

	bars := renderBars([]string{"a", "b"}, []float64{1, 2}, func(v float64) string { return "x" }, 20)
	assert.Contains(t, bars, "a ")
	assert.Contains(t, bars, "█")
	assert.Contains(t, renderBars(nil, nil, nil, 10), "No data")
}

func TestProductAnalyticsColumnsAndRates(t *testing.T) {
	icons.SetNerdFonts(false)
	data := testDataset()
	p := NewProductAnalyticsPage(2, common.NewGlobalKeyMap(), data.Products)
	p.SetSize(180, 30)
	assert.True(t, p.Gated())
	assert.Equal(t, FunnelView, p.Mode())

	first := data.Products[0]
	view := p.View()
	for _, title := range []string{"Checkout Sessions", "Purchase Sessions", "Qty Purchased"} {
		assert.Contains(t, view, title)
	}
	assert.Contains(t, view, analytics.FormatNumber(first.CheckoutSessions))
	assert.Contains(t, view, analytics.FormatNumber(first.QuantityPurchased))
	assert.Contains(t, view, "Name: Product name")
	// Only the leading products are listed.
	assert.NotContains(t, view, data.Products[productAnalyticsLimit].Name)

	handled, _ := p.HandleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.True(t, handled)
	assert.Equal(t, ConversionView, p.Mode())

	view = p.View()
	for _, title := range []string{"View to Cart", "Cart to Checkout", "Checkout to Purchase", "View to Purchase"} {
		assert.Contains(t, view, title)
	}
	assert.Contains(t, view, analytics.FormatPercent(first.ViewToCartRate))
	assert.Contains(t, view, analytics.FormatPercent(first.ViewCartToCheckoutRate))
	assert.Contains(t, view, analytics.FormatPercent(first.ViewCheckoutToPurchaseRate))
}

func TestProductAnalyticsColumnHelp(t *testing.T) {
	keys := common.NewGlobalKeyMap()
	p := NewProductAnalyticsPage(2, keys, testDataset().Products)
	p.SetSize(180, 30)
	p.ToggleView()

	assert.False(t, p.PrevColumn())
	handled, _ := p.HandleKey(tea.KeyMsg{Type: tea.KeyRight})
	require.True(t, handled)
	assert.Equal(t, "View to Cart", p.SelectedColumn())
	assert.Contains(t, p.ColumnHelp(), "Formula: SUM(view_and_cart_sessions)/SUM(view_sessions)")
	assert.Contains(t, p.View(), "SUM(view_and_cart_sessions)")

	for p.NextColumn() {
	}
	assert.Equal(t, "View to Purchase", p.SelectedColumn())

	// Switching views starts again at the first column.
	p.ToggleView()
	assert.Equal(t, "Name", p.SelectedColumn())
	p.HandleKey(runeKey("l"))
	p.HandleKey(runeKey("h"))
	assert.Equal(t, "Name", p.SelectedColumn())
}

func TestSettingsSectionsToggleAndSave(t *testing.T) {
	icons.SetNerdFonts(false)
	core, logs := observer.New(zapcore.InfoLevel)
	p := NewSettingsPage(7, common.NewGlobalKeyMap(), zap.New(core))
	assert.False(t, p.Gated())
	assert.Equal(t, "General", p.Section())
	assert.Contains(t, p.View(), "Sales Beacon")

	handled, _ := p.HandleKey(tea.KeyMsg{Type: tea.KeyLeft})
	require.True(t, handled)
	assert.Equal(t, "Privacy", p.Section())
	p.HandleKey(tea.KeyMsg{Type: tea.KeyRight})
	p.HandleKey(tea.KeyMsg{Type: tea.KeyRight})
	p.HandleKey(tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, "Notifications", p.Section())

	// Inventory Updates is the third email setting and starts off.
	assert.False(t, p.Enabled("Notifications", "Inventory Updates"))
	p.MoveDown()
	p.MoveDown()
	p.HandleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, p.Enabled("Notifications", "Inventory Updates"))
	assert.Contains(t, p.View(), "Push Notifications")

	handled, cmd := p.HandleKey(runeKey("s"))
	require.True(t, handled)
	require.NotNil(t, cmd)
	msg := cmd().(components.ShowToastMsg)
	assert.Equal(t, "Notification settings saved successfully!", msg.Text)
	assert.Equal(t, components.ToastSuccess, msg.Level)

	entries := logs.FilterMessage("saved settings").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Notifications", entries[0].ContextMap()["section"])
	assert.EqualValues(t, 4, entries[0].ContextMap()["enabled"])
}

func TestSettingsEditTextAndClearData(t *testing.T) {
	p := NewSettingsPage(7, common.NewGlobalKeyMap(), nil)

	// Enter edits the store name; every key is captured until enter or esc.
	handled, cmd := p.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, handled)
	assert.NotNil(t, cmd)
	require.True(t, p.CapturingInput())

	p.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlU})
	p.HandleKey(runeKey("Beacon Shop"))
	handled, _ = p.HandleKey(runeKey("s"))
	require.True(t, handled)
	p.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, p.Editing())
	assert.Equal(t, "Beacon Shops", p.Value("General", "Store Name"))

	// Esc abandons the edit.
	p.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	p.HandleKey(runeKey("!"))
	p.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "Beacon Shops", p.Value("General", "Store Name"))

	// The role is read-only.
	p.NextSection()
	p.MoveDown()
	p.MoveDown()
	_, cmd = p.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, p.Editing())
	assert.Equal(t, "Administrator", p.Value("Profile", "Role"))

	p.NextSection()
	p.NextSection()
	for p.MoveDown() {
	}
	_, cmd = p.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ClearedMessage, cmd().(components.ShowToastMsg).Text)
}
