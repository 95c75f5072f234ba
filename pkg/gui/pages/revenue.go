package pages

import (
	"beacon/pkg/analytics"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const revenueDays = 30

var revenueColumns = []table.Column{
	{Title: "Date", Width: 10},
	{Title: "Revenue", Width: 11},
	{Title: "Net Revenue", Width: 11},
	{Title: "Gross Profit", Width: 12},
	{Title: "Net Profit", Width: 11},
	{Title: "Margin", Width: 7},
}

// RevenuePage tracks revenue and profit over the last month.
type RevenuePage struct {
	*BasePage
	days  []analytics.SalesDay
	table table.Model
}

// NewRevenuePage creates the revenue page.
func NewRevenuePage(index int, data analytics.Dataset) *RevenuePage {
	days := data.Recent(revenueDays)
	rows := make([]table.Row, 0, len(days))
	for _, d := range days {
		rows = append(rows, table.Row{
			d.Date.Format("2006-01-02"),
			analytics.FormatCurrency(d.Revenue),
			analytics.FormatCurrency(d.NetRevenue),
			analytics.FormatCurrency(d.GrossProfit),
			analytics.FormatCurrency(d.NetProfit),
			analytics.FormatPercent(d.ProfitMargin),
		})
	}
	return &RevenuePage{
		BasePage: NewBasePage(index, "Revenue Analytics", "Track your sales performance and revenue metrics", true),
		days:     days,
		table:    newTable(revenueColumns, rows, 10),
	}
}

// Cards returns the revenue headline metrics.
func (p *RevenuePage) Cards() []Card {
	tot := analytics.Total(p.days)
	avg := analytics.Average(p.days)
	return []Card{
		{Title: "Total Revenue", Value: analytics.FormatCurrencyWhole(tot.Revenue)},
		{Title: "Net Revenue", Value: analytics.FormatCurrencyWhole(tot.NetRevenue)},
		{Title: "Average Order Value", Value: analytics.FormatCurrency(tot.AverageOrderValue())},
		{Title: "Customer Lifetime Value", Value: analytics.FormatCurrency(avg.LifetimeValue)},
	}
}

// SetSize resizes the table to what is left under the cards
func (p *RevenuePage) SetSize(width, height int) {
	p.BasePage.SetSize(width, height)
	p.table.SetColumns(scaleColumns(revenueColumns, width))
	p.table.SetWidth(width)
	cards := lipgloss.Height(renderCards(p.Cards(), width))
	p.table.SetHeight(max(height-cards-3, 1))
}

// Update forwards messages to the table.
func (p *RevenuePage) Update(msg tea.Msg) (Page, tea.Cmd) {
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

// MoveUp moves the table cursor up
func (p *RevenuePage) MoveUp() bool {
	p.table.MoveUp(1)
	return true
}

// MoveDown moves the table cursor down
func (p *RevenuePage) MoveDown() bool {
	p.table.MoveDown(1)
	return true
}

// View renders the revenue page
func (p *RevenuePage) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		renderCards(p.Cards(), p.GetWidth()),
		"",
		p.table.View(),
	)
}
