package pages

import (
	"beacon/pkg/analytics"
	"beacon/pkg/common"
	"beacon/pkg/gui/icons"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// productAnalyticsLimit is how many products the analytics tables list.
const productAnalyticsLimit = 10

// AnalyticsView selects which table the product analytics page shows.
type AnalyticsView int

const (
	// FunnelView lists session counts along the purchase funnel.
	FunnelView AnalyticsView = iota
	// ConversionView lists the step-to-step conversion rates.
	ConversionView
)

func (v AnalyticsView) String() string {
	if v == ConversionView {
		return "Conversion Rate Analytics"
	}
	return "Product Analytics Overview"
}

func (v AnalyticsView) description() string {
	if v == ConversionView {
		return "View conversion metrics and funnel performance"
	}
	return "View detailed metrics on how your products are performing across the customer journey"
}

// metricColumn is a table column plus the help text and cell formatter
// behind it.
type metricColumn struct {
	column table.Column
	help   string
	value  func(analytics.Product) string
}

func countColumn(title string, width int, help string, get func(analytics.Product) int) metricColumn {
	return metricColumn{
		column: table.Column{Title: title, Width: width},
		help:   help,
		value:  func(p analytics.Product) string { return analytics.FormatNumber(get(p)) },
	}
}

func rateColumn(title string, width int, help string, get func(analytics.Product) float64) metricColumn {
	return metricColumn{
		column: table.Column{Title: title, Width: width},
		help:   help,
		value:  func(p analytics.Product) string { return analytics.FormatPercent(get(p)) },
	}
}

var funnelColumns = []metricColumn{
	{
		column: table.Column{Title: "Name", Width: 16},
		help:   "Product name",
		value:  func(p analytics.Product) string { return p.Name },
	},
	{
		column: table.Column{Title: "Price", Width: 9},
		help:   "Product price",
		value:  func(p analytics.Product) string { return analytics.FormatCurrency(p.Price) },
	},
	{
		column: table.Column{Title: "Type", Width: 10},
		help:   "Category of the product",
		value:  func(p analytics.Product) string { return p.ProductType },
	},
	countColumn("View Sessions", 13, "The sessions where the product was viewed",
		func(p analytics.Product) int { return p.ViewSessions }),
	countColumn("Cart Sessions", 13, "The sessions where the product was added to cart",
		func(p analytics.Product) int { return p.CartSessions }),
	countColumn("Checkout Sessions", 17, "The sessions where the product reached checkout",
		func(p analytics.Product) int { return p.CheckoutSessions }),
	countColumn("Purchase Sessions", 17, "The sessions where the product was purchased",
		func(p analytics.Product) int { return p.PurchaseSessions }),
	countColumn("Qty Purchased", 13, "The number of items added to the cart from online store sessions",
		func(p analytics.Product) int { return p.QuantityPurchased }),
}

var conversionColumns = []metricColumn{
	{
		column: table.Column{Title: "Product", Width: 16},
		help:   "Product name",
		value:  func(p analytics.Product) string { return p.Name },
	},
	rateColumn("View to Cart", 12,
		"The ratio of sessions added to cart after viewing. Formula: SUM(view_and_cart_sessions)/SUM(view_sessions)",
		func(p analytics.Product) float64 { return p.ViewToCartRate }),
	rateColumn("Cart to Checkout", 16,
		"The ratio of sessions which reached checkout after viewing and adding to cart. Formula: SUM(view_cart_checkout_sessions)/SUM(view_cart_sessions)",
		func(p analytics.Product) float64 { return p.ViewCartToCheckoutRate }),
	rateColumn("Checkout to Purchase", 20,
		"The ratio of sessions purchased after viewing, adding to cart and reaching checkout. Formula: SUM(view_cart_checkout_purchase_sessions)/SUM(view_cart_checkout_sessions)",
		func(p analytics.Product) float64 { return p.ViewCheckoutToPurchaseRate }),
	rateColumn("View to Purchase", 16,
		"The ratio of sessions purchased after viewing. Formula: SUM(view_purchase_sessions)/SUM(view_sessions)",
		func(p analytics.Product) float64 { return p.ViewToPurchaseRate }),
}

var helpLabelStyle = lipgloss.NewStyle().Bold(true)

// ProductAnalyticsPage shows the full funnel breakdown of the leading
// products. Space flips between session counts and conversion rates, and
// left/right picks the column whose definition is shown under the table.
type ProductAnalyticsPage struct {
	*BasePage
	keyMap   *common.GlobalKeyMap
	products []analytics.Product
	view     AnalyticsView
	column   int
	table    table.Model
}

// NewProductAnalyticsPage creates the product analytics page.
func NewProductAnalyticsPage(index int, keyMap *common.GlobalKeyMap, products []analytics.Product) *ProductAnalyticsPage {
	if len(products) > productAnalyticsLimit {
		products = products[:productAnalyticsLimit]
	}
	p := &ProductAnalyticsPage{
		BasePage: NewBasePage(index, "Product Analytics", "Detailed analytics on product performance and conversion rates", true),
		keyMap:   keyMap,
		products: products,
		table:    newTable(nil, nil, 10),
	}
	p.refresh()
	return p
}

// Mode returns the table currently shown.
func (p *ProductAnalyticsPage) Mode() AnalyticsView {
	return p.view
}

// ToggleView switches between the funnel and conversion tables. The column
// cursor goes back to the first column.
func (p *ProductAnalyticsPage) ToggleView() {
	if p.view == FunnelView {
		p.view = ConversionView
	} else {
		p.view = FunnelView
	}
	p.column = 0
	p.refresh()
}

func (p *ProductAnalyticsPage) columns() []metricColumn {
	if p.view == ConversionView {
		return conversionColumns
	}
	return funnelColumns
}

// SelectedColumn returns the title of the highlighted column.
func (p *ProductAnalyticsPage) SelectedColumn() string {
	return p.columns()[p.column].column.Title
}

// ColumnHelp returns the definition of the highlighted column.
func (p *ProductAnalyticsPage) ColumnHelp() string {
	return p.columns()[p.column].help
}

// NextColumn moves the column cursor right, stopping at the last column.
func (p *ProductAnalyticsPage) NextColumn() bool {
	if p.column >= len(p.columns())-1 {
		return false
	}
	p.column++
	return true
}

// PrevColumn moves the column cursor left, stopping at the first column.
func (p *ProductAnalyticsPage) PrevColumn() bool {
	if p.column == 0 {
		return false
	}
	p.column--
	return true
}

func (p *ProductAnalyticsPage) refresh() {
	cols := p.columns()
	base := make([]table.Column, len(cols))
	for i, c := range cols {
		base[i] = c.column
	}

	rows := make([]table.Row, 0, len(p.products))
	for _, pr := range p.products {
		row := make(table.Row, len(cols))
		for i, c := range cols {
			row[i] = c.value(pr)
		}
		rows = append(rows, row)
	}

	// Clear rows first so none is rendered against the wrong column count.
	p.table.SetRows(nil)
	p.table.SetColumns(scaleColumns(base, p.GetWidth()))
	p.table.SetRows(rows)
	p.table.GotoTop()
}

// SetSize resizes the table to the page
func (p *ProductAnalyticsPage) SetSize(width, height int) {
	p.BasePage.SetSize(width, height)
	p.refresh()
	p.table.SetWidth(width)
	// Card header, table header and the column help below
	p.table.SetHeight(max(height-8, 1))
}

// Update forwards messages to the table.
func (p *ProductAnalyticsPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

// HandleKey handles view switching and column selection
func (p *ProductAnalyticsPage) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, p.keyMap.Toggle):
		p.ToggleView()
		return true, nil
	case key.Matches(msg, p.keyMap.Left):
		p.PrevColumn()
		return true, nil
	case key.Matches(msg, p.keyMap.Right):
		p.NextColumn()
		return true, nil
	}
	return false, nil
}

// MoveUp moves the table cursor up
func (p *ProductAnalyticsPage) MoveUp() bool {
	p.table.MoveUp(1)
	return true
}

// MoveDown moves the table cursor down
func (p *ProductAnalyticsPage) MoveDown() bool {
	p.table.MoveDown(1)
	return true
}

// GetPageSpecificKeybindings returns the view and column bindings
func (p *ProductAnalyticsPage) GetPageSpecificKeybindings() []key.Binding {
	viewBinding := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "funnel/conversion"))
	columnBinding := key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "column"))
	return []key.Binding{viewBinding, columnBinding, p.keyMap.Up, p.keyMap.Down}
}

// View renders the active table and the highlighted column's definition
func (p *ProductAnalyticsPage) View() string {
	header := sectionStyle.Render(icons.Chart.Get() + "  " + p.view.String())
	sub := mutedStyle.Render(p.view.description())
	if len(p.products) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, sub, "", mutedStyle.Render("No products"))
	}

	width := max(p.GetWidth()-2, 20)
	help := wordwrap.String(helpLabelStyle.Render(p.SelectedColumn()+":")+" "+p.ColumnHelp(), width)
	return lipgloss.JoinVertical(lipgloss.Left, header, sub, "", p.table.View(), "", mutedStyle.Render(help))
}
