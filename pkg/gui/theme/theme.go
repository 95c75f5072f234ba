package theme

// Theme defines all colors used throughout the application with semantic naming.
var (
	// Brand colors
	BeaconColor = "#7c8cf8" // indigo for branding and active elements

	// Text colors
	TextPrimary     = "#ffffff" // white text for focused/active elements
	TextDescription = "#c9c9c9" // light gray for descriptions and help text
	TextMuted       = "#7a7a7a" // dark gray for very subtle text

	// Border colors
	BorderActive = "#c9c9c9"
	BorderMuted  = "#7a7a7a"

	// Status/semantic colors
	SuccessStatus = "#50fa7b" // green for completed steps, positive change
	WarningStatus = "#ffb86c" // orange for recommended badges
	ErrorStatus   = "#ff5555" // red for required badges, negative change
	InfoStatus    = "#8be9fd" // cyan for the current step, buttons

	// UI colors
	HighlightBg    = "#282a36"
	SeparatorColor = "#4a4a4a"
	WarningYellow  = "#f1fa8c"
	White          = "#ffffff"
	RowHighlight   = "#525252"
)
