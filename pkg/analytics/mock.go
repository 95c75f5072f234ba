package analytics

import (
	"fmt"
	"math/rand"
	"time"
)

// Product is one row of the products table.
type Product struct {
	ID                         string
	Name                       string
	Price                      float64
	ProductType                string
	ViewSessions               int
	CartSessions               int
	CheckoutSessions           int
	PurchaseSessions           int
	QuantityPurchased          int
	ViewToCartRate             float64
	ViewCartToCheckoutRate     float64
	ViewCheckoutToPurchaseRate float64
	ViewToPurchaseRate         float64
}

// ProductTypes are the catalog categories.
var ProductTypes = []string{"T-shirt", "Jeans", "Shoes", "Accessory", "Hoodie", "Dress", "Hat", "Jacket"}

// SalesDay is one day of store metrics.
type SalesDay struct {
	ID                    string
	Date                  time.Time
	TotalOrders           int
	Revenue               float64
	AdSpend               float64
	CostPerAcquisition    float64
	TotalCustomers        int
	CustomerLifetimeValue float64
	AverageOrderValue     float64
	RepeatCustomers       int
	RepeatCustomerRate    float64
	RefundOrders          int
	GrossProfit           float64
	NetProfit             float64
	RefundRate            float64
	ClickThroughRate      float64
	BounceRate            float64
	ReturnOnInvestment    float64
	ReturnOnAdSpend       float64
	CustomerRetentionRate float64
	ChurnRate             float64
	NetRevenue            float64
	ProfitMargin          float64
}

// Campaign is an ad campaign in the ads ranking.
type Campaign struct {
	Name        string
	Channel     string
	Spend       float64
	Revenue     float64
	Impressions int
	Clicks      int
	Conversions int
}

// ROAS is revenue per unit of ad spend.
func (c Campaign) ROAS() float64 {
	if c.Spend == 0 {
		return 0
	}
	return c.Revenue / c.Spend
}

// CTR is clicks per impression.
func (c Campaign) CTR() float64 {
	if c.Impressions == 0 {
		return 0
	}
	return float64(c.Clicks) / float64(c.Impressions)
}

// GenerateProducts returns n products with a plausible session funnel.
func GenerateProducts(rng *rand.Rand, n int) []Product {
	products := make([]Product, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("P%04d", i+1)
		views := rng.Intn(1000) + 100
		carts := int(float64(views) * (rng.Float64()*0.5 + 0.1))
		checkouts := int(float64(carts) * (rng.Float64()*0.8 + 0.1))
		purchases := int(float64(checkouts) * (rng.Float64()*0.9 + 0.1))
		quantity := int(float64(purchases) * (rng.Float64() + 1))

		products = append(products, Product{
			ID:                         id,
			Name:                       "Product " + id,
			Price:                      float64(rng.Intn(100) + 10),
			ProductType:                ProductTypes[rng.Intn(len(ProductTypes))],
			ViewSessions:               views,
			CartSessions:               carts,
			CheckoutSessions:           checkouts,
			PurchaseSessions:           purchases,
			QuantityPurchased:          quantity,
			ViewToCartRate:             ratio(carts, views),
			ViewCartToCheckoutRate:     ratio(checkouts, carts),
			ViewCheckoutToPurchaseRate: ratio(purchases, checkouts),
			ViewToPurchaseRate:         ratio(purchases, views),
		})
	}
	return products
}

// GenerateSales returns one SalesDay per day, newest first, ending at now.
func GenerateSales(rng *rand.Rand, days int, now time.Time) []SalesDay {
	data := make([]SalesDay, 0, days)
	for i := 0; i < days; i++ {
		orders := rng.Intn(200) + 50
		revenue := float64(orders) * (rng.Float64()*80 + 20)
		adSpend := revenue * (rng.Float64()*0.2 + 0.1)
		customers := int(float64(orders) * (rng.Float64()*0.3 + 0.7))
		if customers == 0 {
			customers = 1
		}
		repeats := int(float64(customers) * (rng.Float64() * 0.4))
		refunds := int(float64(orders) * (rng.Float64() * 0.1))
		cogs := revenue * (rng.Float64()*0.4 + 0.3)
		grossProfit := revenue - cogs
		opex := grossProfit * (rng.Float64()*0.2 + 0.1)
		netProfit := grossProfit - opex - adSpend
		impressions := int(float64(orders) * (rng.Float64()*10 + 10))
		clicks := int(float64(impressions) * (rng.Float64()*0.2 + 0.05))
		bounces := int(float64(clicks) * (rng.Float64()*0.4 + 0.2))
		discounts := revenue * (rng.Float64() * 0.1)

		data = append(data, SalesDay{
			ID:                    fmt.Sprintf("S%d", i),
			Date:                  now.AddDate(0, 0, -i),
			TotalOrders:           orders,
			Revenue:               revenue,
			AdSpend:               adSpend,
			CostPerAcquisition:    adSpend / float64(customers),
			TotalCustomers:        customers,
			CustomerLifetimeValue: revenue / float64(customers) * (rng.Float64() + 1) * 2,
			AverageOrderValue:     revenue / float64(orders),
			RepeatCustomers:       repeats,
			RepeatCustomerRate:    ratio(repeats, customers),
			RefundOrders:          refunds,
			GrossProfit:           grossProfit,
			NetProfit:             netProfit,
			RefundRate:            ratio(refunds, orders),
			ClickThroughRate:      ratio(clicks, impressions),
			BounceRate:            ratio(bounces, clicks),
			ReturnOnInvestment:    netProfit / (cogs + adSpend + opex),
			ReturnOnAdSpend:       revenue / adSpend,
			CustomerRetentionRate: 0.8 + rng.Float64()*0.15,
			ChurnRate:             0.05 + rng.Float64()*0.1,
			NetRevenue:            revenue - discounts - float64(refunds)*(revenue/float64(orders)),
			ProfitMargin:          netProfit / revenue,
		})
	}
	return data
}

var campaignNames = []struct{ name, channel string }{
	{"Summer Sale", "Google Ads"},
	{"Brand Search", "Google Ads"},
	{"Retargeting", "Facebook"},
	{"Lookalike Audiences", "Facebook"},
	{"Creator Spotlight", "TikTok"},
	{"Newsletter Promo", "Email"},
	{"Shopping Feed", "Google Shopping"},
	{"Story Ads", "Instagram"},
}

// GenerateCampaigns returns one campaign per known campaign name.
func GenerateCampaigns(rng *rand.Rand) []Campaign {
	campaigns := make([]Campaign, 0, len(campaignNames))
	for _, c := range campaignNames {
		spend := rng.Float64()*4000 + 500
		impressions := rng.Intn(90000) + 10000
		clicks := int(float64(impressions) * (rng.Float64()*0.05 + 0.005))
		conversions := int(float64(clicks) * (rng.Float64()*0.08 + 0.01))
		campaigns = append(campaigns, Campaign{
			Name:        c.name,
			Channel:     c.channel,
			Spend:       spend,
			Revenue:     spend * (rng.Float64()*5 + 0.5),
			Impressions: impressions,
			Clicks:      clicks,
			Conversions: conversions,
		})
	}
	return campaigns
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// Dataset is everything the pages render, generated once per session.
type Dataset struct {
	Products  []Product
	Sales     []SalesDay
	Campaigns []Campaign
}

// NewDataset generates a full dataset from rng.
func NewDataset(rng *rand.Rand, products, days int, now time.Time) Dataset {
	return Dataset{
		Products:  GenerateProducts(rng, products),
		Sales:     GenerateSales(rng, days, now),
		Campaigns: GenerateCampaigns(rng),
	}
}

// Recent returns the newest n days of sales, or all of them when fewer exist.
func (d Dataset) Recent(n int) []SalesDay {
	if n > len(d.Sales) {
		n = len(d.Sales)
	}
	return d.Sales[:n]
}
