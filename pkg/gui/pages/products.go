package pages

import (
	"beacon/pkg/analytics"
	"beacon/pkg/common"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var productColumns = []table.Column{
	{Title: "ID", Width: 6},
	{Title: "Name", Width: 14},
	{Title: "Type", Width: 10},
	{Title: "Price", Width: 8},
	{Title: "Views", Width: 7},
	{Title: "Cart", Width: 6},
	{Title: "Purchases", Width: 9},
	{Title: "Conv. Rate", Width: 10},
}

// ProductsPage lists products by views with a product type filter.
type ProductsPage struct {
	*BasePage
	keyMap   *common.GlobalKeyMap
	products []analytics.Product
	filter   int // 0 is "All", otherwise an index into ProductTypes+1
	visible  []analytics.Product
	table    table.Model
}

// NewProductsPage creates the products page.
func NewProductsPage(index int, keyMap *common.GlobalKeyMap, products []analytics.Product) *ProductsPage {
	p := &ProductsPage{
		BasePage: NewBasePage(index, "Products", "View and analyze product performance metrics", true),
		keyMap:   keyMap,
		products: products,
		table:    newTable(productColumns, nil, 10),
	}
	p.refresh()
	return p
}

// Filter returns the active product type, or "" for all types.
func (p *ProductsPage) Filter() string {
	if p.filter == 0 {
		return ""
	}
	return analytics.ProductTypes[p.filter-1]
}

// Visible returns the products currently listed.
func (p *ProductsPage) Visible() []analytics.Product {
	return p.visible
}

// CycleFilter advances to the next product type, wrapping back to all.
func (p *ProductsPage) CycleFilter() {
	p.filter = (p.filter + 1) % (len(analytics.ProductTypes) + 1)
	p.refresh()
}

func (p *ProductsPage) refresh() {
	p.visible = analytics.FilterProducts(p.products, p.Filter())
	analytics.SortProductsByViews(p.visible)

	rows := make([]table.Row, 0, len(p.visible))
	for _, pr := range p.visible {
		rows = append(rows, table.Row{
			pr.ID,
			pr.Name,
			pr.ProductType,
			analytics.FormatCurrency(pr.Price),
			analytics.FormatNumber(pr.ViewSessions),
			analytics.FormatNumber(pr.CartSessions),
			analytics.FormatNumber(pr.PurchaseSessions),
			analytics.FormatPercent(pr.ViewToPurchaseRate),
		})
	}
	p.table.SetRows(rows)
	p.table.GotoTop()
}

// SetSize resizes the table to the page
func (p *ProductsPage) SetSize(width, height int) {
	p.BasePage.SetSize(width, height)
	p.table.SetColumns(scaleColumns(productColumns, width))
	p.table.SetWidth(width)
	// Filter line and table header
	p.table.SetHeight(max(height-4, 1))
}

// Update forwards messages to the table.
func (p *ProductsPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

// HandleKey handles the filter key
func (p *ProductsPage) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if key.Matches(msg, p.keyMap.Filter) {
		p.CycleFilter()
		return true, nil
	}
	return false, nil
}

// MoveUp moves the table cursor up
func (p *ProductsPage) MoveUp() bool {
	p.table.MoveUp(1)
	return true
}

// MoveDown moves the table cursor down
func (p *ProductsPage) MoveDown() bool {
	p.table.MoveDown(1)
	return true
}

// GetPageSpecificKeybindings returns the filter binding
func (p *ProductsPage) GetPageSpecificKeybindings() []key.Binding {
	return []key.Binding{p.keyMap.Filter, p.keyMap.Up, p.keyMap.Down}
}

// View renders the products table
func (p *ProductsPage) View() string {
	label := p.Filter()
	if label == "" {
		label = "All"
	}
	header := mutedStyle.Render("Type: ") + sectionStyle.Render(label) +
		mutedStyle.Render("  ("+analytics.FormatNumber(len(p.visible))+" products)")
	if len(p.visible) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, "", mutedStyle.Render("No products of this type"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", p.table.View())
}
