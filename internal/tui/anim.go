package tui

import (
	"strings"
	"sync/atomic"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/celebtour/internal/tui/theme"
)

var lastAnimID atomic.Int64

// Spinner wraps bubbles spinner with convenience methods
type Spinner struct {
	model spinner.Model
}

// NewSpinner creates a new spinner with the given style
func NewSpinner(style spinner.Spinner) Spinner {
	t := theme.Current()
	s := spinner.New(
		spinner.WithSpinner(style),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary))),
	)
	return Spinner{model: s}
}

// NewDefaultSpinner creates a spinner with MiniDot style
func NewDefaultSpinner() Spinner {
	return NewSpinner(spinner.MiniDot)
}

// Update handles spinner tick messages
func (s *Spinner) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return cmd
}

// View renders the current spinner frame
func (s *Spinner) View() string {
	return s.model.View()
}

// Tick returns the tick command to start animation
func (s *Spinner) Tick() tea.Cmd {
	return s.model.Tick
}

// TypingMsg advances the typing indicator identified by ID.
type TypingMsg struct {
	ID int64
}

// TypingIndicator renders the "typing..." dots shown while the guide
// composes a line.
type TypingIndicator struct {
	id       int64
	active   bool
	frame    int
	interval time.Duration
}

// NewTypingIndicator creates an idle typing indicator.
func NewTypingIndicator() TypingIndicator {
	return TypingIndicator{
		id:       lastAnimID.Add(1),
		interval: 300 * time.Millisecond,
	}
}

// Start begins animating. Calling Start while active does nothing.
func (p *TypingIndicator) Start() tea.Cmd {
	if p.active {
		return nil
	}
	p.active = true
	p.frame = 0
	return p.tick()
}

// Stop ends the animation; the tick in flight is ignored.
func (p *TypingIndicator) Stop() {
	p.active = false
	p.frame = 0
}

// Update handles typing ticks
func (p *TypingIndicator) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(TypingMsg)
	if !ok || m.ID != p.id || !p.active {
		return nil
	}
	p.frame = (p.frame + 1) % 4
	return p.tick()
}

func (p *TypingIndicator) tick() tea.Cmd {
	id := p.id
	return tea.Tick(p.interval, func(time.Time) tea.Msg {
		return TypingMsg{ID: id}
	})
}

// IsActive returns whether the indicator is animating
func (p *TypingIndicator) IsActive() bool {
	return p.active
}

// View renders the label followed by zero to three dots.
func (p *TypingIndicator) View(label string) string {
	if !p.active {
		return ""
	}
	t := theme.Current()
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)).Italic(true)
	return style.Render(label + strings.Repeat(".", p.frame))
}

// GradientSpinnerMsg is sent on each gradient spinner tick
type GradientSpinnerMsg struct {
	ID int64
}

// GradientSpinner renders an animated gradient text spinner
type GradientSpinner struct {
	id     int64
	frame  int
	size   int
	colorA string
	colorB string
	label  string
}

// NewGradientSpinner creates a gradient spinner with default size
func NewGradientSpinner(colorA, colorB string, label string) GradientSpinner {
	return GradientSpinner{
		id:     lastAnimID.Add(1),
		size:   15,
		colorA: colorA,
		colorB: colorB,
		label:  label,
	}
}

// SetLabel changes the text shown before the bar.
func (g *GradientSpinner) SetLabel(label string) {
	g.label = label
}

// View renders the gradient spinner as an animated string
func (g *GradientSpinner) View() string {
	var b strings.Builder

	for i := 0; i < g.size; i++ {
		// Shift the gradient by frame so it appears to move
		pos := float64((i+g.frame)%g.size) / float64(g.size)
		colorHex := theme.InterpolateColor(g.colorA, g.colorB, pos)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(colorHex)).Render("█"))
	}

	if g.label != "" {
		t := theme.Current()
		labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase))
		return labelStyle.Render(g.label+" ") + b.String()
	}
	return b.String()
}

// Tick returns a command that sends a GradientSpinnerMsg after 80ms
func (g *GradientSpinner) Tick() tea.Cmd {
	id := g.id
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return GradientSpinnerMsg{ID: id}
	})
}

// Update handles gradient spinner tick messages and advances animation
func (g *GradientSpinner) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(GradientSpinnerMsg)
	if !ok || m.ID != g.id {
		return nil
	}
	g.frame = (g.frame + 1) % g.size
	return g.Tick()
}
