package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mark3labs/celebtour/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// Button represents a single button in the button bar. Key is shown in
// front of the label so every action is reachable without focus.
type Button struct {
	Key   string
	Label string
	State ButtonState
}

// ButtonBar manages a set of buttons with consistent styling.
type ButtonBar struct {
	buttons []Button
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		width:   60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// Render renders the button bar centered in its width.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	s := theme.Current().S()
	rendered := make([]string, 0, len(b.buttons))
	for _, btn := range b.buttons {
		label := btn.Label
		if btn.Key != "" {
			label = "[" + btn.Key + "] " + label
		}
		switch btn.State {
		case ButtonDisabled:
			rendered = append(rendered, s.ButtonDisabled.Render(label))
		case ButtonFocused:
			rendered = append(rendered, s.ButtonFocused.Render(label))
		default:
			rendered = append(rendered, s.ButtonNormal.Render(label))
		}
	}

	result := strings.Join(rendered, "")
	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, result)
}

// continueButton is the primary action of a selection page: focused when
// the page can move on, disabled otherwise, relabelled while busy.
func continueButton(label, busyLabel string, enabled, busy bool) Button {
	switch {
	case busy:
		return Button{Label: busyLabel, State: ButtonDisabled}
	case enabled:
		return Button{Key: "enter", Label: label, State: ButtonFocused}
	default:
		return Button{Key: "enter", Label: label, State: ButtonDisabled}
	}
}

// backButton is the "← Back" button, disabled when there is nowhere to go.
func backButton(enabled bool) Button {
	state := ButtonNormal
	if !enabled {
		state = ButtonDisabled
	}
	return Button{Key: "esc", Label: "← Back", State: state}
}
