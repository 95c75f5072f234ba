package onboarding

// WizardStep is one in-memory wizard step. Nothing here is persisted.
type WizardStep struct {
	ID          StepID
	Title       string
	Description string
	Action      string
	Completed   bool
}

// Badge levels used by the tracking step.
const (
	BadgeRequired    = "required"
	BadgeRecommended = "recommended"
	BadgeOptional    = "optional"
)

// ContentItem is a line of bespoke step content.
type ContentItem struct {
	Label string
	Badge string
	Done  bool
	// Pending marks an item that is still in progress (rendered with a spinner).
	Pending bool
}

// StepContent is the body rendered for a step.
type StepContent struct {
	Heading string
	Items   []ContentItem
	// Choices are alternative actions; picking any of them completes the step.
	Choices []string
	Button  string
}

func defaultSteps() []WizardStep {
	return []WizardStep{
		{
			ID:          StepConnectStore,
			Title:       "Connect Your Store",
			Description: "Link your e-commerce platform to start collecting data",
			Action:      "Connect Store",
		},
		{
			ID:          StepSetupTracking,
			Title:       "Setup Tracking Codes",
			Description: "Install tracking pixels for accurate attribution",
			Action:      "Install Tracking",
		},
		{
			ID:          StepConfigureGoals,
			Title:       "Configure Goals",
			Description: "Define conversion events and key metrics",
			Action:      "Set Goals",
		},
		{
			ID:          StepVerifyData,
			Title:       "Verify Data Flow",
			Description: "Ensure data is being collected properly",
			Action:      "Verify Setup",
		},
	}
}

// Content returns the body for the given step.
func Content(id StepID) StepContent {
	switch id {
	case StepConnectStore:
		return StepContent{
			Heading: "Choose Your Platform",
			Choices: []string{"Shopify", "WooCommerce", "Magento", "Custom API"},
		}
	case StepSetupTracking:
		return StepContent{
			Heading: "Install Tracking Pixels",
			Items: []ContentItem{
				{Label: "Google Analytics", Badge: BadgeRequired},
				{Label: "Facebook Pixel", Badge: BadgeRecommended},
				{Label: "Google Ads", Badge: BadgeRecommended},
				{Label: "TikTok Pixel", Badge: BadgeOptional},
			},
			Button: "Install All Trackers",
		}
	case StepConfigureGoals:
		return StepContent{
			Heading: "Set Your Conversion Goals",
			Items: []ContentItem{
				{Label: "Purchase Completed"},
				{Label: "Add to Cart"},
				{Label: "Newsletter Signup"},
				{Label: "Page Views"},
				{Label: "Time on Site"},
			},
			Button: "Configure Goals",
		}
	case StepVerifyData:
		return StepContent{
			Heading: "Data Verification",
			Items: []ContentItem{
				{Label: "Store Connected", Done: true},
				{Label: "Tracking Active", Done: true},
				{Label: "Collecting Data...", Pending: true},
			},
			Button: "Verify & Continue",
		}
	default:
		return StepContent{}
	}
}
