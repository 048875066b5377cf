package wizard

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mark3labs/celebtour/internal/tui/theme"
)

// renderHintBar renders a hint bar with the given key-description pairs.
// Example: renderHintBar("↑↓", "navigate", "enter", "select", "esc", "back")
// Returns: "↑↓ navigate • enter select • esc back"
func renderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	var b strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(" " + s.HintSeparator.Render("•") + " ")
		}
		b.WriteString(s.HintKey.Render(pairs[i]) + " " + s.HintDesc.Render(pairs[i+1]))
	}
	return b.String()
}

// renderTitle renders a page title and an optional subtitle below it.
func renderTitle(title, subtitle string) string {
	t := theme.Current()
	out := theme.Gradient(title, t.ProgressFrom, t.ProgressTo)
	if subtitle != "" {
		out += "\n" + t.S().Subtitle.Render(subtitle)
	}
	return out
}

// renderStars renders a rating like "★★★★★ 4.9".
func renderStars(rating float64) string {
	full := int(rating + 0.5)
	full = max(0, min(5, full))
	stars := strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
	return theme.Current().S().Rating.Render(fmt.Sprintf("%s %.1f", stars, rating))
}

// renderTabs renders category tabs with the active one highlighted.
func renderTabs(labels []string, active int) string {
	s := theme.Current().S()
	parts := make([]string, len(labels))
	for i, label := range labels {
		if i == active {
			parts[i] = s.TabActive.Render(label)
		} else {
			parts[i] = s.Tab.Render(label)
		}
	}
	return strings.Join(parts, " ")
}

// percent formats progress for display.
func percent(p float64) string {
	return fmt.Sprintf("%d%%", int(p))
}

// newTextInput creates a text input styled like the rest of the wizard.
func newTextInput(prompt, placeholder string) textinput.Model {
	t := theme.Current()
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = placeholder
	input.SetStyles(textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Tertiary)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.BgOverlay)),
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(t.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	})
	input.SetWidth(50)
	return input
}
