package wizard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/mark3labs/celebtour/internal/route"
	"github.com/mark3labs/celebtour/internal/session"
	"github.com/mark3labs/celebtour/internal/template"
	"github.com/mark3labs/celebtour/internal/tui"
	"github.com/mark3labs/celebtour/internal/tui/theme"
)

// galleryLoadedMsg carries the finished tours read from the event store.
type galleryLoadedMsg struct {
	page  int64
	tours []*session.State
	err   error
}

// GalleryPage lists finished tours from the event store.
type GalleryPage struct {
	base
	tours   []*session.State
	cursor  int
	loading bool
	err     error
	spinner tui.Spinner
	nowFunc func() time.Time
}

func newGalleryPage(e *env) *GalleryPage {
	return &GalleryPage{
		base:    newBase(e, route.Gallery),
		loading: e.gallery != nil,
		spinner: tui.NewDefaultSpinner(),
		nowFunc: time.Now,
	}
}

// Init starts loading the gallery.
func (p *GalleryPage) Init() tea.Cmd {
	if p.env.gallery == nil {
		return nil
	}
	gallery, id := p.env.gallery, p.id
	return tea.Batch(p.spinner.Tick(), func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		tours, err := gallery.LoadGallery(ctx)
		return galleryLoadedMsg{page: id, tours: tours, err: err}
	})
}

// Tours returns the loaded tours.
func (p *GalleryPage) Tours() []*session.State {
	return p.tours
}

// Update implements Page.
func (p *GalleryPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case galleryLoadedMsg:
		if msg.page != p.id {
			return nil
		}
		p.loading = false
		p.tours, p.err = msg.tours, msg.err
		if msg.err != nil {
			log.Error("Loading gallery: %v", msg.err)
			return tui.ShowError("Could not load past tours")
		}
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			p.cursor = max(p.cursor-1, 0)
		case "down", "j":
			p.cursor = max(min(p.cursor+1, len(p.tours)-1), 0)
		case "n", "enter":
			return func() tea.Msg { return NavigateMsg{Path: route.Upload, From: p.id} }
		}
		return nil
	}

	if p.loading {
		return p.spinner.Update(msg)
	}
	return nil
}

// View implements Page.
func (p *GalleryPage) View() string {
	s := theme.Current().S()
	var b strings.Builder
	b.WriteString(renderTitle("Past Tours", "Videos created with your avatar"))
	b.WriteString("\n")

	switch {
	case p.env.gallery == nil:
		b.WriteString(s.Muted.Render("Tour history is disabled. Enable persist in celebtour.yml to keep your tours."))
	case p.loading:
		b.WriteString(p.spinner.View() + " " + s.Muted.Render("Loading your tours..."))
	case p.err != nil:
		b.WriteString(s.Error.Render("Could not load past tours."))
	case len(p.tours) == 0:
		b.WriteString(s.Muted.Render("No finished tours yet. Start one to see it here."))
	default:
		now := p.nowFunc()
		for i, t := range p.tours {
			line := fmt.Sprintf("%s with %s", t.Car, t.Celebrity)
			meta := template.TimeAgo(now.Sub(t.FinishedAt))
			if t.Shares > 0 {
				meta += fmt.Sprintf(" · shared %d", t.Shares)
			}
			style := s.Text
			prefix := "  "
			if i == p.cursor {
				style = s.ListSelected
				prefix = "> "
			}
			b.WriteString(style.Render(prefix+line) + "  " + s.Dim.Render(meta))
			b.WriteString("\n")
			if i == p.cursor && t.ShareURL != "" {
				b.WriteString("    " + s.Muted.Render(t.ShareURL) + "\n")
			}
		}
	}
	return b.String()
}

// Hints implements Page.
func (p *GalleryPage) Hints() []string {
	return []string{"↑/↓", "browse", "n", "new tour", "esc", "back"}
}

// Teardown implements Page.
func (p *GalleryPage) Teardown() {}
