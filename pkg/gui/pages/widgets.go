package pages

import (
	"fmt"
	"strings"

	"beacon/pkg/analytics"
	"beacon/pkg/gui/theme"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// Card is one metric tile.
type Card struct {
	Title string
	Value string
	// HasChange shows Change as a week-over-week percentage.
	HasChange bool
	Change    float64
}

const (
	minCardWidth = 20
	cardGap      = 1
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.BorderMuted)).
			Padding(0, 1)

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextDescription))

	cardValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextPrimary)).
			Bold(true)

	upStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.SuccessStatus))
	downStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ErrorStatus))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TextMuted))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.InfoStatus)).
			Bold(true)

	barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.BeaconColor))
)

// renderCards lays cards out in as many columns as fit in width.
func renderCards(cards []Card, width int) string {
	if len(cards) == 0 {
		return ""
	}
	perRow := len(cards)
	for perRow > 1 && perRow*minCardWidth+(perRow-1)*cardGap > width {
		perRow--
	}
	cardWidth := (width - (perRow-1)*cardGap) / perRow
	if cardWidth < minCardWidth {
		cardWidth = minCardWidth
	}

	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))
		var row []string
		for i, c := range cards[start:end] {
			if i > 0 {
				row = append(row, strings.Repeat(" ", cardGap))
			}
			row = append(row, renderCard(c, cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(c Card, width int) string {
	inner := width - cardStyle.GetHorizontalFrameSize()
	lines := []string{
		cardTitleStyle.Render(truncate.StringWithTail(c.Title, uint(inner), "…")),
		cardValueStyle.Render(c.Value),
	}
	if c.HasChange {
		style := upStyle
		if c.Change < 0 {
			style = downStyle
		}
		lines = append(lines, style.Render(analytics.FormatChange(c.Change))+mutedStyle.Render(" vs last week"))
	}
	return cardStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// renderBars draws one horizontal bar per label, scaled to the largest value.
func renderBars(labels []string, values []float64, format func(float64) string, width int) string {
	if len(values) == 0 {
		return mutedStyle.Render("No data")
	}
	peak := 0.0
	labelWidth := 0
	for i, v := range values {
		peak = max(peak, v)
		labelWidth = max(labelWidth, lipgloss.Width(labels[i]))
	}

	valueWidth := 0
	formatted := make([]string, len(values))
	for i, v := range values {
		formatted[i] = format(v)
		valueWidth = max(valueWidth, len(formatted[i]))
	}

	barWidth := width - labelWidth - valueWidth - 2
	if barWidth < 1 {
		barWidth = 1
	}

	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteByte('\n')
		}
		n := 0
		if peak > 0 {
			n = int(v / peak * float64(barWidth))
		}
		fmt.Fprintf(&b, "%-*s %s%s %s",
			labelWidth, labels[i],
			barStyle.Render(strings.Repeat("█", n)),
			strings.Repeat(" ", barWidth-n),
			formatted[i])
	}
	return b.String()
}

// sparkline renders values as a single row of block glyphs.
func sparkline(values []float64) string {
	const ticks = "▁▂▃▄▅▆▇█"
	glyphs := []rune(ticks)
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	var b strings.Builder
	for _, v := range values {
		i := len(glyphs) - 1
		if hi > lo {
			i = int((v - lo) / (hi - lo) * float64(len(glyphs)-1))
		}
		b.WriteRune(glyphs[i])
	}
	return b.String()
}

// newTable builds a focused table with the application styling.
func newTable(columns []table.Column, rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(height, 1)),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.SeparatorColor)).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color(theme.TextPrimary)).
		Background(lipgloss.Color(theme.RowHighlight)).
		Bold(false)
	t.SetStyles(styles)
	return t
}

// scaleColumns stretches column widths proportionally to fill width.
func scaleColumns(columns []table.Column, width int) []table.Column {
	total := 0
	for _, c := range columns {
		total += c.Width
	}
	// Each cell carries one column of padding on either side.
	avail := width - 2*len(columns)
	if total == 0 || avail <= total {
		return columns
	}
	out := make([]table.Column, len(columns))
	for i, c := range columns {
		out[i] = table.Column{Title: c.Title, Width: c.Width * avail / total}
	}
	return out
}
