package pages

import (
	"fmt"

	"beacon/pkg/analytics"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var adsColumns = []table.Column{
	{Title: "#", Width: 3},
	{Title: "Campaign", Width: 20},
	{Title: "Channel", Width: 15},
	{Title: "Spend", Width: 10},
	{Title: "Revenue", Width: 10},
	{Title: "ROAS", Width: 6},
	{Title: "CTR", Width: 6},
	{Title: "Conv.", Width: 6},
}

// AdsPage ranks ad campaigns by return on ad spend.
type AdsPage struct {
	*BasePage
	ranked []analytics.Campaign
	table  table.Model
}

// NewAdsPage creates the ads ranking page.
func NewAdsPage(index int, campaigns []analytics.Campaign) *AdsPage {
	ranked := analytics.RankCampaigns(campaigns)
	rows := make([]table.Row, 0, len(ranked))
	for i, c := range ranked {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			c.Name,
			c.Channel,
			analytics.FormatCurrencyWhole(c.Spend),
			analytics.FormatCurrencyWhole(c.Revenue),
			fmt.Sprintf("%.2f", c.ROAS()),
			analytics.FormatPercent(c.CTR()),
			analytics.FormatNumber(c.Conversions),
		})
	}
	return &AdsPage{
		BasePage: NewBasePage(index, "Google Ads Ranking", "Track your ads performance and ranking changes over time", true),
		ranked:   ranked,
		table:    newTable(adsColumns, rows, len(rows)),
	}
}

// Ranked returns campaigns in rank order.
func (p *AdsPage) Ranked() []analytics.Campaign {
	return p.ranked
}

// SetSize resizes the table
func (p *AdsPage) SetSize(width, height int) {
	p.BasePage.SetSize(width, height)
	p.table.SetColumns(scaleColumns(adsColumns, width))
	p.table.SetWidth(width)
	p.table.SetHeight(max(min(len(p.ranked), height-6), 1))
}

// Update forwards messages to the table.
func (p *AdsPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

// MoveUp moves the table cursor up
func (p *AdsPage) MoveUp() bool {
	p.table.MoveUp(1)
	return true
}

// MoveDown moves the table cursor down
func (p *AdsPage) MoveDown() bool {
	p.table.MoveDown(1)
	return true
}

// View renders the ranking table and a ROAS bar chart
func (p *AdsPage) View() string {
	labels := make([]string, 0, len(p.ranked))
	values := make([]float64, 0, len(p.ranked))
	for _, c := range p.ranked {
		labels = append(labels, c.Name)
		values = append(values, c.ROAS())
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		p.table.View(),
		"",
		sectionStyle.Render("ROAS by Campaign"),
		renderBars(labels, values, func(v float64) string { return fmt.Sprintf("%.2fx", v) }, p.GetWidth()),
	)
}
