package theme

import (
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string // lipgloss.Color is a string type
	Secondary string
	Tertiary  string

	// Background hierarchy (dark→light)
	BgCrust    string
	BgBase     string
	BgMantle   string
	BgSurface0 string
	BgSurface1 string
	BgSurface2 string
	BgOverlay  string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgSubtle string
	FgBase   string
	FgBright string

	// Status colors
	Success string
	Warning string
	Error   string
	Info    string

	// Progress bar gradient endpoints
	ProgressFrom string
	ProgressTo   string

	// Lazy-built styles
	styles     *Styles
	stylesOnce sync.Once
}

var (
	currentMu sync.RWMutex
	current   = NewCatppuccinMocha()
)

// Current returns the active theme.
func Current() *Theme {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// SetCurrent replaces the active theme. Nil is ignored.
func SetCurrent(t *Theme) {
	if t == nil {
		return
	}
	currentMu.Lock()
	defer currentMu.Unlock()
	current = t
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	c := lipgloss.Color
	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(c(t.Primary)).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Foreground(c(t.FgMuted)),
		Heading: lipgloss.NewStyle().
			Foreground(c(t.Secondary)).
			Bold(true),
		Text: lipgloss.NewStyle().
			Foreground(c(t.FgBase)),
		Muted: lipgloss.NewStyle().
			Foreground(c(t.FgMuted)),
		Dim: lipgloss.NewStyle().
			Foreground(c(t.BgOverlay)).
			Italic(true),
		Success: lipgloss.NewStyle().
			Foreground(c(t.Success)).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(c(t.Warning)),
		Error: lipgloss.NewStyle().
			Foreground(c(t.Error)).
			Bold(true),
		Rating: lipgloss.NewStyle().
			Foreground(c(t.Warning)),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.BgSurface2)).
			Padding(0, 1),
		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.Primary)).
			Padding(0, 1),
		CardFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.Tertiary)).
			Padding(0, 1),

		Tab: lipgloss.NewStyle().
			Foreground(c(t.FgMuted)).
			Padding(0, 1),
		TabActive: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Primary)).
			Bold(true).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.Tertiary)).
			Padding(0, 1),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.Tertiary)).
			Background(c(t.BgBase)).
			Padding(1, 2),

		HintKey: lipgloss.NewStyle().
			Foreground(c(t.FgSubtle)).
			Bold(true),
		HintDesc: lipgloss.NewStyle().
			Foreground(c(t.FgMuted)),
		HintSeparator: lipgloss.NewStyle().
			Foreground(c(t.BgSurface2)),

		ButtonNormal: lipgloss.NewStyle().
			Foreground(c(t.FgBase)).
			Background(c(t.BgSurface0)).
			Padding(0, 2).
			MarginLeft(1).
			MarginRight(1),
		ButtonDisabled: lipgloss.NewStyle().
			Foreground(c(t.BgOverlay)).
			Background(c(t.BgMantle)).
			Padding(0, 2).
			MarginLeft(1).
			MarginRight(1),
		ButtonFocused: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Tertiary)).
			Bold(true).
			Padding(0, 2).
			MarginLeft(1).
			MarginRight(1),

		ListSelected: lipgloss.NewStyle().
			Foreground(c(t.Primary)).
			Background(c(t.BgSurface0)).
			Bold(true),

		Toast: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Warning)).
			Padding(0, 1).
			Bold(true),
		ToastError: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Error)).
			Padding(0, 1).
			Bold(true),

		SpeakerCelebrity: lipgloss.NewStyle().
			Foreground(c(t.Primary)).
			Bold(true),
		SpeakerUser: lipgloss.NewStyle().
			Foreground(c(t.Secondary)).
			Bold(true),
	}
}
