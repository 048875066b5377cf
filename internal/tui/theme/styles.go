package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Heading  lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Dim      lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Rating   lipgloss.Style

	// Selection cards
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardFocused  lipgloss.Style

	// Category tabs
	Tab       lipgloss.Style
	TabActive lipgloss.Style

	Panel lipgloss.Style
	Modal lipgloss.Style

	// Hint bar
	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	// Buttons
	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style

	ListSelected lipgloss.Style

	Toast      lipgloss.Style
	ToastError lipgloss.Style

	// Conversation
	SpeakerCelebrity lipgloss.Style
	SpeakerUser      lipgloss.Style
}
