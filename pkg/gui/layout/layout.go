package layout

import (
	"beacon/pkg/gui/theme"

	"github.com/charmbracelet/lipgloss"
)

const (
	TopPaddingRows   = 1
	TabBarRows       = 1
	PaneTitleRows    = 1
	FooterRows       = 1
	BottomMarginRows = 1
	HorizontalMargin = 2

	// Below these sizes the content pane stops shrinking.
	MinContentWidth  = 20
	MinContentHeight = 3
)

// PaneBaseStyle frames the page content.
var PaneBaseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color(theme.BorderMuted)).
	Padding(0, 1)

// Layout manages the content pane dimensions for the UI
type Layout struct {
	width  int
	height int

	// Content dimensions (without borders)
	contentWidth  int
	contentHeight int

	// Full pane dimensions (with borders)
	paneWidth  int
	paneHeight int
}

// NewLayout creates a new layout with the given terminal dimensions
func NewLayout(width, height int) *Layout {
	l := &Layout{
		width:  width,
		height: height,
	}
	l.calculate()
	return l
}

// Update recalculates the layout for new terminal dimensions
func (l *Layout) Update(width, height int) {
	l.width = width
	l.height = height
	l.calculate()
}

// calculate computes the pane dimensions based on terminal size
func (l *Layout) calculate() {
	chromeHeight := TopPaddingRows + TabBarRows + PaneTitleRows + FooterRows + BottomMarginRows
	frameWidth := PaneBaseStyle.GetHorizontalFrameSize()
	frameHeight := PaneBaseStyle.GetVerticalFrameSize()

	l.paneWidth = l.width - HorizontalMargin*2
	l.contentWidth = l.paneWidth - frameWidth
	if l.contentWidth < MinContentWidth {
		l.contentWidth = MinContentWidth
		l.paneWidth = l.contentWidth + frameWidth
	}

	l.paneHeight = l.height - chromeHeight
	l.contentHeight = l.paneHeight - frameHeight
	if l.contentHeight < MinContentHeight {
		l.contentHeight = MinContentHeight
		l.paneHeight = l.contentHeight + frameHeight
	}
}

// RenderPane frames content in the page pane, clipping it to the content area
func (l *Layout) RenderPane(content string, active bool) string {
	style := PaneBaseStyle
	if active {
		style = style.BorderForeground(lipgloss.Color(theme.BorderActive))
	}

	wrapped := lipgloss.NewStyle().
		Width(l.contentWidth).
		MaxHeight(l.contentHeight).
		Render(content)
	aligned := lipgloss.PlaceVertical(l.contentHeight, lipgloss.Top, wrapped)

	return style.
		Width(l.contentWidth + PaneBaseStyle.GetHorizontalPadding()).
		Render(aligned)
}

// Frame adds the outer margins around the tab bar, title and pane.
func (l *Layout) Frame(tabs, title, pane string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		tabs,
		lipgloss.NewStyle().PaddingLeft(1).Render(title),
		pane,
	)
	return lipgloss.NewStyle().
		PaddingTop(TopPaddingRows).
		PaddingLeft(HorizontalMargin).
		PaddingRight(HorizontalMargin).
		Render(body)
}

// GetContentDimensions returns the size available to page content
func (l *Layout) GetContentDimensions() (width, height int) {
	return l.contentWidth, l.contentHeight
}

// GetPaneDimensions returns the framed pane size
func (l *Layout) GetPaneDimensions() (width, height int) {
	return l.paneWidth, l.paneHeight
}

// GetWidth returns the layout width
func (l *Layout) GetWidth() int {
	return l.width
}

// GetHeight returns the layout height
func (l *Layout) GetHeight() int {
	return l.height
}
