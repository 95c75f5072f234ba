package pages

import (
	"fmt"

	"beacon/pkg/analytics"
	"beacon/pkg/common"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TimeRange is a window over the newest sales days.
type TimeRange struct {
	Label string
	Days  int
}

// TimeRanges are the selectable sales windows.
var TimeRanges = []TimeRange{
	{Label: "Week", Days: 7},
	{Label: "Month", Days: 30},
	{Label: "Quarter", Days: 90},
}

var salesColumns = []table.Column{
	{Title: "Date", Width: 10},
	{Title: "Orders", Width: 7},
	{Title: "Revenue", Width: 11},
	{Title: "AOV", Width: 9},
	{Title: "Customers", Width: 9},
	{Title: "Net Profit", Width: 11},
	{Title: "ROAS", Width: 6},
}

// SalesPage shows sales totals and a daily table over a time range.
type SalesPage struct {
	*BasePage
	keyMap *common.GlobalKeyMap
	data   analytics.Dataset
	rng    int // index into TimeRanges
	table  table.Model
}

// NewSalesPage creates the sales page, starting on the month range.
func NewSalesPage(index int, keyMap *common.GlobalKeyMap, data analytics.Dataset) *SalesPage {
	p := &SalesPage{
		BasePage: NewBasePage(index, "Sales Analytics", "Detailed metrics and trends for your sales performance", true),
		keyMap:   keyMap,
		data:     data,
		rng:      1,
		table:    newTable(salesColumns, nil, 10),
	}
	p.refresh()
	return p
}

// Range returns the selected time range.
func (p *SalesPage) Range() TimeRange {
	return TimeRanges[p.rng]
}

// CycleRange moves to the next time range.
func (p *SalesPage) CycleRange() {
	p.rng = (p.rng + 1) % len(TimeRanges)
	p.refresh()
}

func (p *SalesPage) days() []analytics.SalesDay {
	return p.data.Recent(p.Range().Days)
}

func (p *SalesPage) refresh() {
	days := p.days()
	rows := make([]table.Row, 0, len(days))
	for _, d := range days {
		rows = append(rows, table.Row{
			d.Date.Format("2006-01-02"),
			analytics.FormatNumber(d.TotalOrders),
			analytics.FormatCurrency(d.Revenue),
			analytics.FormatCurrency(d.AverageOrderValue),
			analytics.FormatNumber(d.TotalCustomers),
			analytics.FormatCurrency(d.NetProfit),
			fmt.Sprintf("%.2f", d.ReturnOnAdSpend),
		})
	}
	p.table.SetRows(rows)
	p.table.GotoTop()
}

// Cards returns the headline metrics for the selected range.
func (p *SalesPage) Cards() []Card {
	days := p.days()
	tot := analytics.Total(days)
	avg := analytics.Average(days)
	return []Card{
		{Title: "Total Revenue", Value: analytics.FormatCurrencyWhole(tot.Revenue)},
		{Title: "Total Orders", Value: analytics.FormatNumber(tot.Orders)},
		{Title: "Total Customers", Value: analytics.FormatNumber(tot.Customers)},
		{Title: "Average Order Value", Value: analytics.FormatCurrency(tot.AverageOrderValue())},
		{Title: "Return on Ad Spend (ROAS)", Value: fmt.Sprintf("%.2f", avg.ROAS)},
		{Title: "Return on Investment (ROI)", Value: analytics.FormatPercent(avg.ROI)},
		{Title: "Customer Retention Rate", Value: analytics.FormatPercent(avg.Retention)},
		{Title: "Refund Rate", Value: analytics.FormatPercent(avg.RefundRate)},
	}
}

// SetSize resizes the table to what is left under the cards
func (p *SalesPage) SetSize(width, height int) {
	p.BasePage.SetSize(width, height)
	p.table.SetColumns(scaleColumns(salesColumns, width))
	p.table.SetWidth(width)
	cards := lipgloss.Height(renderCards(p.Cards(), width))
	p.table.SetHeight(max(height-cards-4, 1))
}

// Update forwards messages to the table.
func (p *SalesPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

// HandleKey handles the range key
func (p *SalesPage) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if key.Matches(msg, p.keyMap.Range) {
		p.CycleRange()
		return true, nil
	}
	return false, nil
}

// MoveUp moves the table cursor up
func (p *SalesPage) MoveUp() bool {
	p.table.MoveUp(1)
	return true
}

// MoveDown moves the table cursor down
func (p *SalesPage) MoveDown() bool {
	p.table.MoveDown(1)
	return true
}

// GetPageSpecificKeybindings returns the range binding
func (p *SalesPage) GetPageSpecificKeybindings() []key.Binding {
	return []key.Binding{p.keyMap.Range, p.keyMap.Up, p.keyMap.Down}
}

// View renders the sales page
func (p *SalesPage) View() string {
	var tabs string
	for i, r := range TimeRanges {
		label := " " + r.Label + " "
		if i == p.rng {
			tabs += sectionStyle.Reverse(true).Render(label)
		} else {
			tabs += mutedStyle.Render(label)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("Key Metrics")+"  "+tabs,
		renderCards(p.Cards(), p.GetWidth()),
		"",
		p.table.View(),
	)
}
