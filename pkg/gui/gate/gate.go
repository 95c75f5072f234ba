// Package gate decides whether gated analytics content or the onboarding
// prompt is shown, and renders either one.
package gate

import (
	"strings"

	"beacon/pkg/gui/icons"
	"beacon/pkg/gui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Decision is the outcome of Decide.
type Decision int

const (
	ShowPrompt Decision = iota
	ShowContent
)

func (d Decision) String() string {
	if d == ShowContent {
		return "content"
	}
	return "prompt"
}

// Decide is a pure function of the persisted completion flag.
func Decide(completed bool) Decision {
	if completed {
		return ShowContent
	}
	return ShowPrompt
}

const (
	DefaultTitle       = "Analytics Dashboard"
	DefaultDescription = "Complete the setup to access advanced analytics features"
)

// Features are the bullets listed on the prompt card.
var Features = []string{
	"Advanced analytics and insights",
	"Real-time performance tracking",
	"Attribution modeling",
}

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.BeaconColor)).
			Padding(1, 3).
			Align(lipgloss.Center)

	iconStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.BeaconColor)).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextPrimary)).
			Bold(true).
			MarginTop(1)

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextDescription)).
			MarginBottom(1)

	featureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextDescription))

	bulletStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.SuccessStatus))

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.White)).
			Background(lipgloss.Color(theme.BeaconColor)).
			Padding(0, 2).
			MarginTop(1).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextMuted))

	resetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextMuted)).
			Italic(true)
)

// Gate renders protected content or the onboarding prompt.
type Gate struct {
	Title       string
	Description string
	width       int
	height      int
}

// New returns a gate with the default prompt copy.
func New() *Gate {
	return &Gate{
		Title:       DefaultTitle,
		Description: DefaultDescription,
	}
}

// SetSize updates the area the gate renders into.
func (g *Gate) SetSize(width, height int) {
	g.width = width
	g.height = height
}

// View renders children when completed, otherwise the blocking prompt.
func (g *Gate) View(children string, completed bool) string {
	if Decide(completed) == ShowContent {
		return g.contentView(children)
	}
	return g.promptView()
}

func (g *Gate) contentView(children string) string {
	reset := resetStyle.Render("R Reset Setup")
	if g.width <= 0 {
		return reset + "\n" + children
	}
	return lipgloss.PlaceHorizontal(g.width, lipgloss.Right, reset) + "\n" + children
}

func (g *Gate) promptView() string {
	var lines []string
	lines = append(lines, iconStyle.Render(icons.Lock.Get()+"  "+icons.Chart.Get()))
	lines = append(lines, titleStyle.Render(g.Title))
	lines = append(lines, descStyle.Render(g.Description))

	var features []string
	for _, f := range Features {
		features = append(features, bulletStyle.Render("•")+" "+featureStyle.Render(f))
	}
	lines = append(lines, lipgloss.NewStyle().Align(lipgloss.Left).Render(strings.Join(features, "\n")))

	lines = append(lines, buttonStyle.Render("Start Setup"))
	lines = append(lines, hintStyle.Render("press ↵ or s"))

	card := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	if g.width <= 0 || g.height <= 0 {
		return card
	}
	return lipgloss.Place(g.width, g.height, lipgloss.Center, lipgloss.Center, card)
}
