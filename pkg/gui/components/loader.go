package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Loader animates the in-progress line of the setup wizard's verify-data
// step. The label comes from the step content at render time, so one loader
// serves any pending item. Once stopped, ticks are no longer rescheduled.
type Loader struct {
	spinner spinner.Model
	stopped bool
}

// NewLoader returns a loader on the blinking cursor spinner.
func NewLoader() *Loader {
	return &Loader{spinner: spinner.New(spinner.WithSpinner(BlinkingCursor))}
}

// TickCmd starts the animation. It returns nil once the loader is stopped.
func (l *Loader) TickCmd() tea.Cmd {
	if l == nil || l.stopped {
		return nil
	}
	return l.spinner.Tick
}

// Stop ends the animation for good.
func (l *Loader) Stop() {
	if l != nil {
		l.stopped = true
	}
}

// Stopped reports whether Stop was called.
func (l *Loader) Stopped() bool {
	return l == nil || l.stopped
}

// Update advances the spinner on its own ticks.
func (l *Loader) Update(msg tea.Msg) tea.Cmd {
	if l.Stopped() {
		return nil
	}
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(tick)
	return cmd
}

// View renders the spinner frame followed by label.
func (l *Loader) View(label string) string {
	if l == nil {
		return label
	}
	frame := l.spinner.View()
	if label == "" {
		return frame
	}
	return frame + " " + label
}
