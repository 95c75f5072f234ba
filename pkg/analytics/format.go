// Package analytics generates the mock store data shown on the dashboard
// pages and formats it for display.
package analytics

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency renders value as dollars with up to two decimals, e.g. "$1,234.5".
func FormatCurrency(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	rounded := math.Round(value*100) / 100
	return sign + "$" + printer.Sprintf("%v", number.Decimal(rounded, number.MaxFractionDigits(2)))
}

// FormatCurrencyWhole renders value as whole dollars, e.g. "$1,235".
func FormatCurrencyWhole(value float64) string {
	return "$" + printer.Sprintf("%v", number.Decimal(math.Round(value), number.MaxFractionDigits(0)))
}

// FormatPercent renders a ratio as a percentage with one decimal, e.g. 0.123 -> "12.3%".
func FormatPercent(ratio float64) string {
	return printer.Sprintf("%.1f%%", ratio*100)
}

// FormatNumber renders an integer with thousands separators.
func FormatNumber(value int) string {
	return printer.Sprintf("%d", value)
}

// FormatChange renders a percent change with an explicit sign, e.g. "+4.2%".
func FormatChange(pct float64) string {
	if pct >= 0 {
		return "+" + printer.Sprintf("%.1f%%", pct)
	}
	return printer.Sprintf("%.1f%%", pct)
}

// PercentChange returns the change from previous to current in percent.
// A zero previous value yields 0.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
