package components

import (
	"time"

	"beacon/pkg/gui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ToastDuration is how long a toast stays on screen.
const ToastDuration = 3 * time.Second

// ToastLevel selects the toast accent color.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastError
)

// ShowToastMsg asks the application to display a toast.
type ShowToastMsg struct {
	Title string
	Text  string
	Level ToastLevel
}

// ShowToast returns a command emitting ShowToastMsg.
func ShowToast(title, text string, level ToastLevel) tea.Cmd {
	return func() tea.Msg {
		return ShowToastMsg{Title: title, Text: text, Level: level}
	}
}

// ToastExpiredMsg hides the toast with the matching id.
type ToastExpiredMsg struct {
	ID int
}

// Toast is a transient notification shown in the corner of the screen.
type Toast struct {
	id      int
	visible bool
	msg     ShowToastMsg
}

// NewToast returns a hidden toast.
func NewToast() *Toast {
	return &Toast{}
}

// Show displays msg and returns the command that expires it. A newer toast
// replaces the current one; its expiry is the only one honored.
func (t *Toast) Show(msg ShowToastMsg) tea.Cmd {
	t.id++
	t.msg = msg
	t.visible = true
	id := t.id
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// Expire hides the toast when msg belongs to the visible one.
func (t *Toast) Expire(msg ToastExpiredMsg) {
	if msg.ID == t.id {
		t.visible = false
	}
}

// Visible reports whether a toast is showing.
func (t *Toast) Visible() bool {
	return t.visible
}

// Text returns the current toast body.
func (t *Toast) Text() string {
	return t.msg.Text
}

// View renders the toast box, or "" when hidden.
func (t *Toast) View() string {
	if !t.visible {
		return ""
	}

	accent := theme.InfoStatus
	switch t.msg.Level {
	case ToastSuccess:
		accent = theme.SuccessStatus
	case ToastError:
		accent = theme.ErrorStatus
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(accent)).
		Padding(0, 1).
		MaxWidth(50)

	body := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TextDescription)).Render(t.msg.Text)
	if t.msg.Title != "" {
		title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent)).Render(t.msg.Title)
		body = title + "\n" + body
	}
	return style.Render(body)
}
