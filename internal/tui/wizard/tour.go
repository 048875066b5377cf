package wizard

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mark3labs/celebtour/internal/catalog"
	"github.com/mark3labs/celebtour/internal/delay"
	"github.com/mark3labs/celebtour/internal/route"
	"github.com/mark3labs/celebtour/internal/stage"
	"github.com/mark3labs/celebtour/internal/state"
	"github.com/mark3labs/celebtour/internal/tui"
	"github.com/mark3labs/celebtour/internal/tui/theme"
)

// interactionAt is the progress after which the chat panel appears.
const interactionAt = 30

// interiorStage is the first stage shown from inside the car.
const interiorStage = 2

// ViewMode is how the car viewer presents the tour.
type ViewMode int

const (
	ViewNormal ViewMode = iota
	View3D
	ViewInteraction
)

func (v ViewMode) String() string {
	switch v {
	case View3D:
		return "3D"
	case ViewInteraction:
		return "interaction"
	default:
		return "normal"
	}
}

// avatarLoad resolves the simulated avatar fetch for a tour page.
type avatarLoad struct {
	page int64
}

// TourPage runs the guided virtual tour of the chosen car.
type TourPage struct {
	base

	celebrity catalog.Celebrity
	car       catalog.Car

	machine     *stage.Machine
	interaction *InteractionPanel
	bar         progress.Model

	interior     bool
	mode         ViewMode
	fullscreen   bool
	avatarLoaded bool
	finishing    bool
}

func newTourPage(e *env) *TourPage {
	cel, car := e.session.Pair(e.catalog)
	p := &TourPage{
		base:       newBase(e, route.Tour),
		celebrity:  cel,
		car:        car,
		fullscreen: e.ui.Tour.Fullscreen,
	}

	th := theme.Current()
	p.bar = progress.New(
		progress.WithColors(lipgloss.Color(th.ProgressFrom), lipgloss.Color(th.ProgressTo)),
		progress.WithWidth(40),
	)

	p.interaction = NewInteractionPanel(e.catalog.Conversation, cel.Name, p.conversationDone)
	p.machine = stage.New(stage.Config{
		Stages:    stage.Stages(e.catalog.Tour.Stages...),
		Interval:  e.timing.Tick,
		Increment: e.timing.Increment,
		OnEnter:   p.enterStage,
		Triggers: []stage.Trigger{
			{At: interactionAt, Fn: p.interaction.Show},
		},
		OnComplete: p.tourComplete,
	})
	return p
}

// Init starts the tour and the avatar load.
func (p *TourPage) Init() tea.Cmd {
	log.Info("Tour started: %s with %s", p.car.Name, p.celebrity.Name)
	return tea.Batch(
		p.machine.Start(),
		delay.Call(avatarLoad{page: p.id}, p.env.timing.Call),
	)
}

// Machine exposes the tour's stage machine.
func (p *TourPage) Machine() *stage.Machine {
	return p.machine
}

// Interior reports whether the viewer shows the interior.
func (p *TourPage) Interior() bool {
	return p.interior
}

// Mode returns the viewer mode.
func (p *TourPage) Mode() ViewMode {
	return p.mode
}

// Fullscreen reports whether side panels are hidden.
func (p *TourPage) Fullscreen() bool {
	return p.fullscreen
}

// Interaction exposes the chat panel.
func (p *TourPage) Interaction() *InteractionPanel {
	return p.interaction
}

func (p *TourPage) enterStage(ev stage.EnterEvent) tea.Cmd {
	log.Debug("Tour stage %d (%s) entered, manual=%v", ev.Stage.Index, ev.Stage.Name, ev.Manual)
	if ev.Manual {
		p.interior = ev.Stage.Index >= interiorStage
		return nil
	}
	if ev.Stage.Index == interiorStage {
		p.interior = true
	}
	return nil
}

func (p *TourPage) tourComplete() tea.Cmd {
	log.Info("Tour complete")
	return tui.ShowToast("Tour complete! Your video is ready to be created.")
}

func (p *TourPage) conversationDone() tea.Cmd {
	p.interaction.Hide()
	return tui.ShowToast("Great conversation! Let's continue with the tour.")
}

// Update implements Page.
func (p *TourPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case stage.TickMsg:
		return p.machine.Update(msg)

	case delay.ResultMsg[avatarLoad]:
		if msg.Data.page == p.id {
			p.avatarLoaded = true
		}
		return nil

	case tea.KeyPressMsg:
		if p.finishing {
			return nil
		}
		if p.interaction.HandlesKey(msg.String()) {
			return p.interaction.Update(msg)
		}
		return p.handleKey(msg)
	}

	return p.interaction.Update(msg)
}

func (p *TourPage) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch k := msg.String(); k {
	case "space", "p":
		if p.machine.Progress() >= stage.Max {
			return nil
		}
		if p.machine.Running() {
			p.machine.Pause()
			return tui.ShowToast("Tour paused. Take your time to explore!")
		}
		return tea.Batch(p.machine.Resume(), tui.ShowToast("Tour resumed!"))
	case "left", "[":
		return p.machine.Prev()
	case "right", "]":
		return p.machine.Next()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		i := int(k[0] - '1')
		if !p.machine.Reachable(i) {
			return nil
		}
		return p.machine.JumpTo(i)
	case "v":
		p.mode = (p.mode + 1) % 3
		switch p.mode {
		case View3D:
			return tui.ShowToast("Switched to 3D View")
		case ViewInteraction:
			return tui.ShowToast("Avatar interaction mode enabled")
		default:
			return tui.ShowToast("Switched to normal view")
		}
	case "f":
		p.fullscreen = !p.fullscreen
		p.env.ui.Tour.Fullscreen = p.fullscreen
		if p.fullscreen {
			return tui.ShowToast("Fullscreen mode activated for better viewing!")
		}
		return tui.ShowToast("Exited fullscreen mode")
	case "enter":
		return p.finish()
	}
	return nil
}

// finish moves on to video generation once the tour is complete.
func (p *TourPage) finish() tea.Cmd {
	if !p.machine.Complete() {
		return tui.ShowToast("Complete the tour to create your personalized video")
	}
	p.finishing = true
	return tea.Batch(
		tui.ShowToast("Preparing your personalized video..."),
		p.nextAfter(p.env.timing.Call),
	)
}

// View implements Page.
func (p *TourPage) View() string {
	s := theme.Current().S()
	var b strings.Builder

	b.WriteString(renderTitle(
		fmt.Sprintf("Virtual Tour: %s", p.car.Name),
		fmt.Sprintf("Guided by %s", p.celebrity.Name),
	))
	b.WriteString("\n\n")

	p.bar.SetWidth(max(min(p.width-12, 60), 20))
	b.WriteString(p.bar.ViewAs(p.machine.Progress() / stage.Max))
	status := ""
	if !p.machine.Running() && !p.machine.Complete() {
		status = "  " + s.Warning.Render("paused")
	}
	b.WriteString(status)
	b.WriteString("\n\n")

	mainW, sideW := tui.SplitSidebar(p.width)
	if p.fullscreen {
		mainW, sideW = p.width, 0
	}
	main := p.viewer(mainW)
	if sideW > 0 {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, "  ", p.sidebar(sideW))
	}
	b.WriteString(main)
	b.WriteString("\n\n")

	if chat := p.interaction.View(min(p.width-4, 80)); chat != "" {
		b.WriteString(chat)
		b.WriteString("\n\n")
	}

	if p.machine.Complete() {
		b.WriteString(NewButtonBar([]Button{
			{Key: "enter", Label: "Generate Your Video", State: ButtonFocused},
		}).Render())
	} else {
		b.WriteString(s.Muted.Render("Complete the tour to create your personalized video"))
		b.WriteString("  ")
		b.WriteString(s.Dim.Render(percent(stage.Max-p.machine.Progress()) + " remaining"))
	}
	return b.String()
}

// viewer renders the car placeholder, the avatar and the narration.
func (p *TourPage) viewer(width int) string {
	s := theme.Current().S()
	width = max(width, 30)

	side, image := "Exterior", p.car.Exterior
	if p.interior {
		side, image = "Interior", p.car.Interior
	}

	avatar := s.Dim.Render("Loading your avatar...")
	if p.avatarLoaded {
		name := "you"
		if a := p.env.session.Avatar; a != nil {
			name = a.Name
		}
		avatar = s.Success.Render("● ") + s.Text.Render("Your avatar ("+name+") is riding along")
	}

	current := p.machine.Current()
	lines := []string{
		s.Muted.Render(fmt.Sprintf("%s view · %s mode · %s", side, p.mode, image)),
		avatar,
		"",
		s.Heading.Render(p.env.catalog.Heading(current)),
		s.Text.Render(tui.WrapText(p.env.catalog.Narration(current, p.celebrity, p.car), width-4)),
	}
	return s.Panel.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// sidebar renders the stage list and the vehicle facts.
func (p *TourPage) sidebar(width int) string {
	s := theme.Current().S()
	var b strings.Builder

	b.WriteString(s.Heading.Render("Tour Steps"))
	b.WriteString("\n")
	for i, st := range p.machine.All() {
		marker := s.Dim.Render("○")
		switch {
		case i == p.machine.Current():
			marker = s.Title.Render("▸")
		case i < p.machine.Current():
			marker = s.Success.Render("✓")
		case p.machine.Reachable(i):
			marker = s.Muted.Render("•")
		}
		fmt.Fprintf(&b, "%s %d. %s\n", marker, i+1, st.Name)
	}

	b.WriteString("\n")
	b.WriteString(s.Heading.Render("Vehicle Information"))
	b.WriteString("\n")
	facts := [][2]string{
		{"Model", p.car.Name},
		{"Type", p.car.Type},
		{"Engine", p.car.Engine},
		{"Horsepower", p.car.Horsepower},
		{"0-60 mph", p.car.Acceleration},
	}
	for _, f := range facts {
		b.WriteString(s.Muted.Render(f[0]+": ") + s.Text.Render(f[1]) + "\n")
	}
	return s.Panel.Width(width).Render(strings.TrimSuffix(b.String(), "\n"))
}

// Hints implements Page.
func (p *TourPage) Hints() []string {
	hints := []string{"space", "pause/resume", "←→", "step", "1-4", "jump", "v", "view", "f", "fullscreen"}
	if p.machine.Complete() {
		hints = append(hints, "enter", "generate video")
	}
	return append(hints, "esc", "back")
}

// Teardown stops the tour, the chat and any pending timers.
func (p *TourPage) Teardown() {
	p.machine.Cancel()
	p.interaction.Stop()
	p.saveUIState()
}

func (p *TourPage) saveUIState() {
	if !p.env.cfg.Persist {
		return
	}
	if err := state.Save(p.env.cfg.DataDir, p.env.ui); err != nil {
		log.Warn("Failed to save UI state: %v", err)
	}
}
