package analytics

import (
	"cmp"
	"slices"
	"strings"
)

// WeekSummary compares the latest seven days with the seven before them.
type WeekSummary struct {
	Revenue, PrevRevenue       float64
	Orders, PrevOrders         int
	Customers, PrevCustomers   int
	RepeatRate, PrevRepeatRate float64
}

// Summarize builds the dashboard cards from sales sorted newest first.
func Summarize(sales []SalesDay) WeekSummary {
	cur := window(sales, 0, 7)
	prev := window(sales, 7, 14)
	return WeekSummary{
		Revenue:        sumFloat(cur, func(d SalesDay) float64 { return d.Revenue }),
		PrevRevenue:    sumFloat(prev, func(d SalesDay) float64 { return d.Revenue }),
		Orders:         sumInt(cur, func(d SalesDay) int { return d.TotalOrders }),
		PrevOrders:     sumInt(prev, func(d SalesDay) int { return d.TotalOrders }),
		Customers:      sumInt(cur, func(d SalesDay) int { return d.TotalCustomers }),
		PrevCustomers:  sumInt(prev, func(d SalesDay) int { return d.TotalCustomers }),
		RepeatRate:     avg(cur, func(d SalesDay) float64 { return d.RepeatCustomerRate }),
		PrevRepeatRate: avg(prev, func(d SalesDay) float64 { return d.RepeatCustomerRate }),
	}
}

// Totals sums a sales range.
type Totals struct {
	Revenue     float64
	NetRevenue  float64
	GrossProfit float64
	NetProfit   float64
	AdSpend     float64
	Orders      int
	Customers   int
	Refunds     int
}

// Total sums every day in sales.
func Total(sales []SalesDay) Totals {
	var t Totals
	for _, d := range sales {
		t.Revenue += d.Revenue
		t.NetRevenue += d.NetRevenue
		t.GrossProfit += d.GrossProfit
		t.NetProfit += d.NetProfit
		t.AdSpend += d.AdSpend
		t.Orders += d.TotalOrders
		t.Customers += d.TotalCustomers
		t.Refunds += d.RefundOrders
	}
	return t
}

// AverageOrderValue is total revenue over total orders.
func (t Totals) AverageOrderValue() float64 {
	if t.Orders == 0 {
		return 0
	}
	return t.Revenue / float64(t.Orders)
}

// Averages are per-day means of the rate metrics.
type Averages struct {
	ROAS          float64
	ROI           float64
	Retention     float64
	ClickThrough  float64
	RefundRate    float64
	BounceRate    float64
	LifetimeValue float64
}

// Average computes per-day means over sales.
func Average(sales []SalesDay) Averages {
	return Averages{
		ROAS:          avg(sales, func(d SalesDay) float64 { return d.ReturnOnAdSpend }),
		ROI:           avg(sales, func(d SalesDay) float64 { return d.ReturnOnInvestment }),
		Retention:     avg(sales, func(d SalesDay) float64 { return d.CustomerRetentionRate }),
		ClickThrough:  avg(sales, func(d SalesDay) float64 { return d.ClickThroughRate }),
		RefundRate:    avg(sales, func(d SalesDay) float64 { return d.RefundRate }),
		BounceRate:    avg(sales, func(d SalesDay) float64 { return d.BounceRate }),
		LifetimeValue: avg(sales, func(d SalesDay) float64 { return d.CustomerLifetimeValue }),
	}
}

// TopProductsByPurchases returns the n products with the most purchase sessions.
func TopProductsByPurchases(products []Product, n int) []Product {
	sorted := slices.Clone(products)
	slices.SortStableFunc(sorted, func(a, b Product) int {
		return cmp.Compare(b.PurchaseSessions, a.PurchaseSessions)
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// FilterProducts keeps products of the given type; an empty type keeps all.
func FilterProducts(products []Product, productType string) []Product {
	if productType == "" {
		return slices.Clone(products)
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.EqualFold(p.ProductType, productType) {
			out = append(out, p)
		}
	}
	return out
}

// SortProductsByViews orders products by view sessions, most viewed first.
func SortProductsByViews(products []Product) {
	slices.SortStableFunc(products, func(a, b Product) int {
		return cmp.Compare(b.ViewSessions, a.ViewSessions)
	})
}

// RankCampaigns orders campaigns by ROAS, best first.
func RankCampaigns(campaigns []Campaign) []Campaign {
	ranked := slices.Clone(campaigns)
	slices.SortStableFunc(ranked, func(a, b Campaign) int {
		return cmp.Compare(b.ROAS(), a.ROAS())
	})
	return ranked
}

func window(sales []SalesDay, from, to int) []SalesDay {
	if from >= len(sales) {
		return nil
	}
	return sales[from:min(to, len(sales))]
}

func sumFloat(days []SalesDay, f func(SalesDay) float64) float64 {
	var total float64
	for _, d := range days {
		total += f(d)
	}
	return total
}

func sumInt(days []SalesDay, f func(SalesDay) int) int {
	total := 0
	for _, d := range days {
		total += f(d)
	}
	return total
}

func avg(days []SalesDay, f func(SalesDay) float64) float64 {
	if len(days) == 0 {
		return 0
	}
	return sumFloat(days, f) / float64(len(days))
}
