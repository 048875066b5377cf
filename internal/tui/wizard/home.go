package wizard

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/mark3labs/celebtour/internal/catalog"
	"github.com/mark3labs/celebtour/internal/route"
	"github.com/mark3labs/celebtour/internal/tui"
)

// HomePage shows the landing content. Informational paths render it too.
type HomePage struct {
	base
	rendered string
	renderW  int
}

func newHomePage(e *env, path string) *HomePage {
	return &HomePage{base: newBase(e, path)}
}

// Init implements Page.
func (p *HomePage) Init() tea.Cmd {
	return nil
}

// Update implements Page.
func (p *HomePage) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "enter", "s":
		return func() tea.Msg { return NavigateMsg{Path: route.Upload, From: p.id} }
	case "g":
		return func() tea.Msg { return NavigateMsg{Path: route.Gallery, From: p.id} }
	}
	return nil
}

// View implements Page.
func (p *HomePage) View() string {
	// glamour is slow enough to cache between frames
	if p.rendered == "" || p.renderW != p.width {
		p.rendered = tui.RenderMarkdown(catalog.Home(), p.width-4)
		p.renderW = p.width
	}
	var b strings.Builder
	b.WriteString(renderTitle("Celebrity Car Tour", "Tour a dream car with a celebrity guide"))
	b.WriteString("\n")
	b.WriteString(p.rendered)
	b.WriteString("\n\n")
	b.WriteString(NewButtonBar([]Button{
		{Key: "enter", Label: "Start Your Tour", State: ButtonFocused},
		{Key: "g", Label: "Past Tours", State: ButtonNormal},
	}).Render())
	return b.String()
}

// Hints implements Page.
func (p *HomePage) Hints() []string {
	return []string{"enter", "start", "g", "gallery", "esc", "quit"}
}

// Teardown implements Page.
func (p *HomePage) Teardown() {}
