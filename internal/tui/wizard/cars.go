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

// CarsPage lets the user pick a car, optionally filtered by category.
type CarsPage struct {
	base
	registry *selection.Registry[catalog.Car]
	tab      int
	focus    int
	busy     bool
}

func newCarsPage(e *env) *CarsPage {
	p := &CarsPage{
		base:     newBase(e, route.Cars),
		registry: selection.New(e.catalog.Cars, func(c catalog.Car) string { return c.Category }),
	}
	if id := e.session.CarID(); id != "" {
		_ = p.registry.Select(id)
		p.focus = indexOf(p.registry.Visible(), id)
	}
	return p
}

// Init implements Page.
func (p *CarsPage) Init() tea.Cmd {
	return nil
}

// Selected returns the id of the chosen car.
func (p *CarsPage) Selected() string {
	return p.registry.SelectedID()
}

// Filter returns the active category.
func (p *CarsPage) Filter() string {
	return p.registry.Filter()
}

// Update implements Page.
func (p *CarsPage) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || p.busy {
		return nil
	}

	items := p.registry.Visible()
	switch k := key.String(); k {
	case "tab":
		p.setTab((p.tab + 1) % len(catalog.Categories))
	case "shift+tab":
		p.setTab((p.tab + len(catalog.Categories) - 1) % len(catalog.Categories))
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

func (p *CarsPage) setTab(i int) {
	p.tab = i
	p.registry.SetFilter(catalog.Categories[i])
	p.focus = 0
}

// count returns how many cars fall under category, ignoring the active filter.
func (p *CarsPage) count(category string) int {
	items := p.registry.Items()
	if category == selection.All {
		return len(items)
	}
	n := 0
	for _, car := range items {
		if car.Category == category {
			n++
		}
	}
	return n
}

func (p *CarsPage) selectID(id string) {
	if err := p.registry.Select(id); err != nil {
		log.Warn("Car selection failed: %v", err)
	}
}

func (p *CarsPage) proceed() tea.Cmd {
	car, ok := p.registry.Selected()
	if !ok {
		return nil
	}
	p.busy = true
	p.env.session.SelectCar(car)
	log.Info("Selected car %s", car.ID)
	return tea.Batch(
		p.env.record(p.env.session.TourEvent(session.ActionCar, car.ID, map[string]any{"name": car.Name})),
		p.nextAfter(p.env.timing.Continue),
	)
}

// View implements Page.
func (p *CarsPage) View() string {
	s := theme.Current().S()
	var b strings.Builder

	b.WriteString(renderTitle("Select Your Dream Car", "Choose the car you want to explore"))
	b.WriteString("\n\n")

	labels := make([]string, len(catalog.Categories))
	for i, c := range catalog.Categories {
		labels[i] = fmt.Sprintf("%s (%d)", catalog.CategoryLabel(c), p.count(c))
	}
	b.WriteString(renderTabs(labels, p.tab))
	b.WriteString("\n\n")

	items := p.registry.Visible()
	if len(items) == 0 {
		b.WriteString(s.Dim.Render("No cars found in this category."))
	} else {
		cards := make([]string, len(items))
		for i, car := range items {
			cards[i] = p.card(i, car)
		}
		b.WriteString(renderGrid(cards, p.width))
	}
	b.WriteString("\n\n")

	bar := NewButtonBar([]Button{
		backButton(true),
		continueButton("Start Tour", "Preparing Tour...", p.registry.CanContinue(), p.busy),
	})
	bar.SetWidth(max(p.width, 40))
	b.WriteString(bar.Render())
	return b.String()
}

func (p *CarsPage) card(i int, car catalog.Car) string {
	s := theme.Current().S()
	selected := p.registry.IsSelected(car.ID)

	lines := []string{
		s.Heading.Render(fmt.Sprintf("%d. %s", i+1, car.Name)),
		s.Muted.Render(car.Type + " · " + car.Badge()),
		renderStars(car.Rating),
		s.Text.Render(tui.WrapText(car.Description, cardWidth-4)),
	}
	if selected {
		lines = append(lines, s.Success.Render("✓ Selected"))
	}
	return cardStyle(selected, i == p.focus).Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Hints implements Page.
func (p *CarsPage) Hints() []string {
	return []string{"tab", "category", "←→", "move", "space/1-9", "select", "x", "clear", "enter", "start tour", "esc", "back"}
}

// Teardown implements Page.
func (p *CarsPage) Teardown() {
	p.busy = false
}
