package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/celebtour/internal/tui/theme"
)

// DefaultToastDuration is how long a toast stays on screen.
const DefaultToastDuration = 3 * time.Second

// ToastDismissMsg is sent when the toast shown at generation Gen should be
// dismissed. Showing a newer toast makes older dismissals no-ops.
type ToastDismissMsg struct {
	Gen int
}

// ShowToastMsg is sent by pages to show a toast notification.
type ShowToastMsg struct {
	Text  string
	Error bool
}

// ShowToast returns a command that asks the wizard to show a toast.
func ShowToast(text string) tea.Cmd {
	return func() tea.Msg { return ShowToastMsg{Text: text} }
}

// ShowError returns a command that asks the wizard to show an error toast.
func ShowError(text string) tea.Cmd {
	return func() tea.Msg { return ShowToastMsg{Text: text, Error: true} }
}

// Toast is a minimal toast notification component.
// Shows a message in the bottom-right corner that auto-dismisses.
type Toast struct {
	message   string
	isError   bool
	visible   bool
	gen       int
	duration  time.Duration
	dismissAt time.Time
}

// NewToast creates a new Toast component.
func NewToast() *Toast {
	return &Toast{duration: DefaultToastDuration}
}

// SetDuration changes how long later toasts stay visible.
func (t *Toast) SetDuration(d time.Duration) {
	if d > 0 {
		t.duration = d
	}
}

// Show displays a toast with the given message.
func (t *Toast) Show(msg string) tea.Cmd {
	return t.show(msg, false)
}

// ShowError displays a toast styled as an error.
func (t *Toast) ShowError(msg string) tea.Cmd {
	return t.show(msg, true)
}

func (t *Toast) show(msg string, isError bool) tea.Cmd {
	t.message = msg
	t.isError = isError
	t.visible = true
	t.gen++
	t.dismissAt = time.Now().Add(t.duration)

	gen := t.gen
	return tea.Tick(t.duration, func(time.Time) tea.Msg {
		return ToastDismissMsg{Gen: gen}
	})
}

// Update handles messages for the toast component.
func (t *Toast) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ShowToastMsg:
		return t.show(msg.Text, msg.Error)
	case ToastDismissMsg:
		if msg.Gen != t.gen {
			return nil
		}
		t.visible = false
		t.message = ""
	}
	return nil
}

// View renders the toast right-aligned within width.
// Returns empty string if toast is not visible.
func (t *Toast) View(width int) string {
	if !t.visible || t.message == "" {
		return ""
	}

	s := theme.Current().S()
	style := s.Toast
	if t.isError {
		style = s.ToastError
	}

	content := style.Render(t.message)
	if width > 2 && lipgloss.Width(content) > width-2 {
		content = style.Width(width - 2).Render(t.message)
	}

	return lipgloss.NewStyle().
		Width(max(width, 0)).
		Align(lipgloss.Right).
		PaddingRight(1).
		Render(content)
}

// IsVisible returns whether the toast is currently visible.
func (t *Toast) IsVisible() bool {
	return t.visible
}

// IsError reports whether the visible toast is an error.
func (t *Toast) IsError() bool {
	return t.visible && t.isError
}

// GetMessage returns the current toast message (empty if not visible).
func (t *Toast) GetMessage() string {
	if !t.visible {
		return ""
	}
	return t.message
}
