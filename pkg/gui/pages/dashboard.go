package pages

import (
	"strings"
	"time"

	"beacon/pkg/analytics"
	"beacon/pkg/gui/components"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// WelcomeDelay is how long the dashboard waits before its welcome toast.
const WelcomeDelay = time.Second

const (
	welcomeTitle = "Welcome to Sales Beacon Insights"
	welcomeText  = "Your latest analytics data is ready to review"
	trendDays    = 14
	topProducts  = 5
)

// welcomeTickMsg fires WelcomeDelay after the dashboard is shown. Ticks from
// an earlier visit carry a stale generation and are dropped.
type welcomeTickMsg struct {
	gen int
}

// DashboardPage is the overview of recent sales performance.
type DashboardPage struct {
	*BasePage
	data     analytics.Dataset
	summary  analytics.WeekSummary
	gen      int
	welcomed bool
}

// NewDashboardPage creates the dashboard over data.
func NewDashboardPage(index int, data analytics.Dataset) *DashboardPage {
	return &DashboardPage{
		BasePage: NewBasePage(index, "Dashboard", "Overview of your sales performance", true),
		data:     data,
		summary:  analytics.Summarize(data.Sales),
	}
}

// SetActive cancels any pending welcome toast when the page is left.
func (p *DashboardPage) SetActive(active bool) {
	if p.IsActive() && !active {
		p.gen++
	}
	p.BasePage.SetActive(active)
}

// OnShow schedules the one-time welcome toast.
func (p *DashboardPage) OnShow() tea.Cmd {
	if p.welcomed {
		return nil
	}
	gen := p.gen
	return tea.Tick(WelcomeDelay, func(time.Time) tea.Msg {
		return welcomeTickMsg{gen: gen}
	})
}

// Update handles the welcome tick.
func (p *DashboardPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	if tick, ok := msg.(welcomeTickMsg); ok {
		if tick.gen != p.gen || !p.IsActive() || p.welcomed {
			return p, nil
		}
		p.welcomed = true
		return p, components.ShowToast(welcomeTitle, welcomeText, components.ToastInfo)
	}
	return p, nil
}

// Cards returns the four headline metrics.
func (p *DashboardPage) Cards() []Card {
	s := p.summary
	return []Card{
		{
			Title:     "Revenue",
			Value:     analytics.FormatCurrencyWhole(s.Revenue),
			HasChange: true,
			Change:    analytics.PercentChange(s.Revenue, s.PrevRevenue),
		},
		{
			Title:     "Orders",
			Value:     analytics.FormatNumber(s.Orders),
			HasChange: true,
			Change:    analytics.PercentChange(float64(s.Orders), float64(s.PrevOrders)),
		},
		{
			Title:     "Customers",
			Value:     analytics.FormatNumber(s.Customers),
			HasChange: true,
			Change:    analytics.PercentChange(float64(s.Customers), float64(s.PrevCustomers)),
		},
		{
			Title:     "Repeat Customer Rate",
			Value:     analytics.FormatPercent(s.RepeatRate),
			HasChange: true,
			Change:    analytics.PercentChange(s.RepeatRate, s.PrevRepeatRate),
		},
	}
}

// View renders the dashboard
func (p *DashboardPage) View() string {
	width := p.GetWidth()
	var sections []string

	sections = append(sections, renderCards(p.Cards(), width))

	recent := p.data.Recent(trendDays)
	labels := make([]string, 0, len(recent))
	revenue := make([]float64, 0, len(recent))
	orders := make([]float64, 0, len(recent))
	// Oldest first reads left to right / top to bottom.
	for i := len(recent) - 1; i >= 0; i-- {
		d := recent[i]
		labels = append(labels, d.Date.Format("Jan 02"))
		revenue = append(revenue, d.Revenue)
		orders = append(orders, float64(d.TotalOrders))
	}

	sections = append(sections, sectionStyle.Render("Revenue Trend"))
	sections = append(sections, renderBars(labels, revenue, analytics.FormatCurrencyWhole, width))
	sections = append(sections, sectionStyle.Render("Orders Trend")+"  "+barStyle.Render(sparkline(orders)))

	sections = append(sections, sectionStyle.Render("Top Products"))
	var rows []string
	for _, pr := range analytics.TopProductsByPurchases(p.data.Products, topProducts) {
		rows = append(rows, strings.Join([]string{
			lipgloss.NewStyle().Width(14).Render(pr.Name),
			lipgloss.NewStyle().Width(10).Render(pr.ProductType),
			lipgloss.NewStyle().Width(10).Render(analytics.FormatCurrency(pr.Price)),
			mutedStyle.Render(analytics.FormatNumber(pr.PurchaseSessions) + " purchases"),
			mutedStyle.Render(analytics.FormatPercent(pr.ViewToPurchaseRate)),
		}, " "))
	}
	sections = append(sections, strings.Join(rows, "\n"))

	return strings.Join(sections, "\n")
}
