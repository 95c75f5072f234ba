// Package icons provides consistent icon representations using Nerd Fonts
// with plain Unicode fallbacks.
package icons

import (
	"os"
	"strings"

	"beacon/pkg/onboarding"
)

// Icon represents an icon with Nerd Font and fallback options
type Icon struct {
	NerdFont string
	Fallback string
}

var (
	// Step states
	Check = Icon{
		NerdFont: "", // check circle
		Fallback: "✔",
	}
	Circle = Icon{
		NerdFont: "", // empty circle
		Fallback: "○",
	}

	// Gate
	Lock = Icon{
		NerdFont: "",
		Fallback: "🔒",
	}
	Chart = Icon{
		NerdFont: "", // bar chart
		Fallback: "▥",
	}
	Settings = Icon{
		NerdFont: "", // gear
		Fallback: "⚙",
	}

	// Wizard steps
	ShoppingBag = Icon{
		NerdFont: "",
		Fallback: "🛍",
	}
	TrendingUp = Icon{
		NerdFont: "", // line chart
		Fallback: "↗",
	}
	Users = Icon{
		NerdFont: "",
		Fallback: "👥",
	}

	// Navigation
	Selected = Icon{
		NerdFont: "", // right arrow
		Fallback: "▶",
	}
	ArrowUp = Icon{
		NerdFont: "",
		Fallback: "▲",
	}
	ArrowDown = Icon{
		NerdFont: "",
		Fallback: "▼",
	}
)

var useNerdFonts *bool

// hasNerdFonts detects if Nerd Fonts are likely available
func hasNerdFonts() bool {
	if useNerdFonts != nil {
		return *useNerdFonts
	}

	termProgram := strings.ToLower(os.Getenv("TERM_PROGRAM"))
	term := strings.ToLower(os.Getenv("TERM"))

	nerdFontTerms := []string{
		"alacritty", "kitty", "wezterm", "iterm", "hyper", "ghostty",
		"tmux-256color", "xterm-256color", "xterm-ghostty",
	}

	result := false
	for _, nfTerm := range nerdFontTerms {
		if strings.Contains(termProgram, nfTerm) || strings.Contains(term, nfTerm) {
			result = true
			break
		}
	}

	useNerdFonts = &result
	return result
}

// Get returns the appropriate icon string based on Nerd Font availability
func (i Icon) Get() string {
	if hasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// SetNerdFonts manually overrides Nerd Font detection
func SetNerdFonts(enabled bool) {
	useNerdFonts = &enabled
}

// ForStep returns the icon shown for an onboarding step
func ForStep(id onboarding.StepID) string {
	switch id {
	case onboarding.StepConnectStore:
		return ShoppingBag.Get()
	case onboarding.StepSetupTracking:
		return Chart.Get()
	case onboarding.StepConfigureGoals:
		return TrendingUp.Get()
	case onboarding.StepVerifyData:
		return Users.Get()
	default:
		return Circle.Get()
	}
}

// StepState returns the check or circle glyph for a step tile
func StepState(completed bool) string {
	if completed {
		return Check.Get()
	}
	return Circle.Get()
}
