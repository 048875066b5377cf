package wizard

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mark3labs/celebtour/internal/catalog"
	"github.com/mark3labs/celebtour/internal/route"
	"github.com/mark3labs/celebtour/internal/selection"
	"github.com/mark3labs/celebtour/internal/session"
	"github.com/mark3labs/celebtour/internal/tui"
	"github.com/mark3labs/celebtour/internal/tui/theme"
)

const cardWidth = 30

const celebrityDisclaimer = "All celebrity guides are AI-generated characters. " +
	"Any resemblance to real people is coincidental."

// CelebritiesPage lets the user pick their tour guide.
type CelebritiesPage struct {
	base
	registry *selection.Registry[catalog.Celebrity]
	focus    int
	busy     bool
}

func newCelebritiesPage(e *env) *CelebritiesPage {
	p := &CelebritiesPage{
		base:     newBase(e, route.Celebrities),
		registry: selection.New(e.catalog.Celebrities, nil),
	}
	if id := e.session.CelebrityID(); id != "" {
		_ = p.registry.Select(id)
		p.focus = indexOf(p.registry.Visible(), id)
	}
	return p
}

// Init implements Page.
func (p *CelebritiesPage) Init() tea.Cmd {
	return nil
}

// Selected returns the id of the chosen celebrity.
func (p *CelebritiesPage) Selected() string {
	return p.registry.SelectedID()
}

// Update implements Page.
func (p *CelebritiesPage) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || p.busy {
		return nil
	}

	items := p.registry.Visible()
	switch k := key.String(); k {
	case "left", "h", "up", "k":
		p.focus = max(p.focus-1, 0)
	case "right", "l", "down", "j":
		p.focus = max(min(p.focus+1, len(items)-1), 0)
	case "space":
		if p.focus < len(items) {
			p.selectID(items[p.focus].ID)
		}
	case "x", "backspace":
		p.registry.Clear()
	case "enter":
		return p.proceed()
	default:
		if n, err := strconv.Atoi(k); err == nil && n >= 1 && n <= len(items) {
			p.focus = n - 1
			p.selectID(items[n-1].ID)
		}
	}
	return nil
}

func (p *CelebritiesPage) selectID(id string) {
	if err := p.registry.Select(id); err != nil {
		log.Warn("Celebrity selection failed: %v", err)
	}
}

// proceed stores the choice in the session and moves on after the
// simulated wait.
func (p *CelebritiesPage) proceed() tea.Cmd {
	cel, ok := p.registry.Selected()
	if !ok {
		return nil
	}
	p.busy = true
	p.env.session.SelectCelebrity(cel)
	log.Info("Selected celebrity %s", cel.ID)
	return tea.Batch(
		p.env.record(p.env.session.TourEvent(session.ActionCelebrity, cel.ID, map[string]any{"name": cel.Name})),
		p.nextAfter(p.env.timing.Continue),
	)
}

// View implements Page.
func (p *CelebritiesPage) View() string {
	s := theme.Current().S()
	var b strings.Builder

	b.WriteString(renderTitle("Choose Your Celebrity Guide", "Pick the expert who will show you around"))
	b.WriteString("\n\n")

	items := p.registry.Visible()
	cards := make([]string, len(items))
	for i, cel := range items {
		cards[i] = p.card(i, cel)
	}
	b.WriteString(renderGrid(cards, p.width))
	b.WriteString("\n\n")

	bar := NewButtonBar([]Button{
		backButton(true),
		continueButton("Continue", "Please wait...", p.registry.CanContinue(), p.busy),
	})
	bar.SetWidth(max(p.width, 40))
	b.WriteString(bar.Render())
	b.WriteString("\n\n")
	b.WriteString(s.Dim.Render(tui.WrapText(celebrityDisclaimer, max(p.width-4, 20))))
	return b.String()
}

func (p *CelebritiesPage) card(i int, cel catalog.Celebrity) string {
	s := theme.Current().S()
	selected := p.registry.IsSelected(cel.ID)

	name := fmt.Sprintf("%d. %s", i+1, cel.Name)
	lines := []string{
		s.Heading.Render(name),
		s.Muted.Render(cel.Specialty),
		renderStars(cel.Rating),
		s.Text.Render(tui.WrapText(fmt.Sprintf("Expert in %s with thousands of positive reviews from users.", cel.Specialty), cardWidth-4)),
	}
	if selected {
		lines = append(lines, s.Success.Render("✓ Selected"))
	}
	return cardStyle(selected, i == p.focus).Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Hints implements Page.
func (p *CelebritiesPage) Hints() []string {
	return []string{"←→", "move", "space/1-9", "select", "x", "clear", "enter", "continue", "esc", "back"}
}

// Teardown implements Page.
func (p *CelebritiesPage) Teardown() {
	p.busy = false
}

// cardStyle picks the border for a selection card.
func cardStyle(selected, focused bool) lipgloss.Style {
	s := theme.Current().S()
	switch {
	case selected:
		return s.CardSelected
	case focused:
		return s.CardFocused
	default:
		return s.Card
	}
}

// renderGrid lays cards out left to right, wrapping to fit width.
func renderGrid(cards []string, width int) string {
	if len(cards) == 0 {
		return ""
	}
	cols := max(width/(cardWidth+2), 1)
	var rows []string
	for i := 0; i < len(cards); i += cols {
		end := min(i+cols, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// indexOf returns the position of id in items, or 0 when absent.
func indexOf[T selection.Item](items []T, id string) int {
	for i, item := range items {
		if item.ItemID() == id {
			return i
		}
	}
	return 0
}
