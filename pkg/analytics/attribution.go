package analytics

// AttributionModel selects how conversions are credited. It is page-local
// and never persisted.
type AttributionModel string

const (
	AttributionLastClick  AttributionModel = "last-click"
	AttributionFirstClick AttributionModel = "first-click"
	AttributionCustom     AttributionModel = "custom"
)

// AttributionOption describes a model on the settings page.
type AttributionOption struct {
	Model       AttributionModel
	Title       string
	Subtitle    string
	Description string
	Benefits    []string
	UseCase     string
	IsDefault   bool
}

// AttributionOptions lists the selectable models in display order.
var AttributionOptions = []AttributionOption{
	{
		Model:       AttributionLastClick,
		Title:       "Last Click Attribution",
		Subtitle:    "Google Ads Standard",
		Description: "Credits the final touchpoint before conversion. Only fires conversion events when the most recent gclid parameter is still valid and trackable.",
		Benefits: []string{
			"Industry standard for Google Ads campaigns",
			"Simple implementation and maintenance",
			"Direct correlation with immediate conversion drivers",
			"Optimal for short sales cycles",
		},
		UseCase:   "Perfect for businesses with quick decision cycles where the last interaction typically drives the purchase.",
		IsDefault: true,
	},
	{
		Model:       AttributionFirstClick,
		Title:       "First Click Attribution",
		Subtitle:    "Brand Awareness Focus",
		Description: "Credits the initial touchpoint that introduced the customer. Stores the first gclid per user and attributes all conversions to that original interaction.",
		Benefits: []string{
			"Rewards top-of-funnel marketing efforts",
			"Better understanding of customer journey origins",
			"Optimal for brand awareness campaigns",
			"Long-term customer acquisition insights",
		},
		UseCase: "Ideal for businesses with long sales cycles where initial brand exposure significantly influences final purchase decisions.",
	},
	{
		Model:       AttributionCustom,
		Title:       "Custom Attribution",
		Subtitle:    "AI-Powered Intelligence",
		Description: "Advanced attribution logic that adapts to your business needs. Define custom rules, channel priorities, and sophisticated conversion paths.",
		Benefits: []string{
			"Tailored to your specific business model",
			"Multi-channel attribution intelligence",
			"Advanced exclusion rules (Facebook, TikTok, etc.)",
			"Future-proof scalability",
		},
		UseCase: "Best for sophisticated marketers running complex multi-channel campaigns who need granular control over attribution logic.",
	},
}

// FindAttributionOption returns the option for m.
func FindAttributionOption(m AttributionModel) (AttributionOption, bool) {
	for _, opt := range AttributionOptions {
		if opt.Model == m {
			return opt, true
		}
	}
	return AttributionOption{}, false
}
