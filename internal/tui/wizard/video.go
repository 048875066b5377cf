package wizard

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mark3labs/celebtour/internal/catalog"
	"github.com/mark3labs/celebtour/internal/route"
	"github.com/mark3labs/celebtour/internal/session"
	"github.com/mark3labs/celebtour/internal/stage"
	"github.com/mark3labs/celebtour/internal/tui"
	"github.com/mark3labs/celebtour/internal/tui/theme"
)

// ticksPerVideoStage splits every video stage into equal increments.
const ticksPerVideoStage = 10

// VideoPage simulates rendering the personalized tour video.
type VideoPage struct {
	base

	celebrity catalog.Celebrity
	car       catalog.Car

	machine   *stage.Machine
	durations []time.Duration
	bar       progress.Model
	spinner   tui.GradientSpinner
}

func newVideoPage(e *env) *VideoPage {
	cel, car := e.session.Pair(e.catalog)
	p := &VideoPage{
		base:      newBase(e, route.Video),
		celebrity: cel,
		car:       car,
	}

	names := e.catalog.Video.Stages
	p.durations = make([]time.Duration, len(names))
	for i := range p.durations {
		p.durations[i] = randomDuration(e, e.timing.VideoStepMin, e.timing.VideoStepMax)
	}

	th := theme.Current()
	p.bar = progress.New(
		progress.WithColors(lipgloss.Color(th.ProgressFrom), lipgloss.Color(th.ProgressTo)),
		progress.WithWidth(40),
	)
	p.spinner = tui.NewGradientSpinner(th.ProgressFrom, th.ProgressTo, "")

	p.machine = stage.New(stage.Config{
		Stages:    stage.Stages(names...),
		Increment: stage.Max / float64(len(names)) / ticksPerVideoStage,
		IntervalFor: func(i int) time.Duration {
			if i < 0 || i >= len(p.durations) {
				return 0
			}
			return p.durations[i] / ticksPerVideoStage
		},
		OnEnter: func(ev stage.EnterEvent) tea.Cmd {
			log.Debug("Video stage %d: %s", ev.Stage.Index, ev.Stage.Name)
			return nil
		},
		OnComplete: p.complete,
	})
	return p
}

// randomDuration picks a duration in [lo, hi).
func randomDuration(e *env, lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(e.rng.Int64N(int64(hi-lo)))
}

// Init starts generation.
func (p *VideoPage) Init() tea.Cmd {
	p.env.session.Video = ""
	return tea.Batch(p.machine.Start(), p.spinner.Tick())
}

// Machine exposes the generation stage machine.
func (p *VideoPage) Machine() *stage.Machine {
	return p.machine
}

// Durations returns the randomized length of every stage.
func (p *VideoPage) Durations() []time.Duration {
	return p.durations
}

// complete stores the finished video and records the tour as done.
func (p *VideoPage) complete() tea.Cmd {
	sess := p.env.session
	sess.Video = p.car.Exterior
	log.Info("Video generated for session %s", sess.ID)
	return tea.Batch(
		tui.ShowToast("Your video is ready!"),
		p.env.record(sess.TourEvent(session.ActionVideo, sess.Video, map[string]any{
			"celebrity":    p.celebrity.Name,
			"celebrity_id": p.celebrity.ID,
			"car":          p.car.Name,
			"car_id":       p.car.ID,
		})),
	)
}

// Update implements Page.
func (p *VideoPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case stage.TickMsg:
		return p.machine.Update(msg)
	case tui.GradientSpinnerMsg:
		if p.machine.Complete() {
			return nil
		}
		return p.spinner.Update(msg)
	case tea.KeyPressMsg:
		if msg.String() == "enter" && p.machine.Complete() {
			return p.next()
		}
	}
	return nil
}

// View implements Page.
func (p *VideoPage) View() string {
	s := theme.Current().S()
	var b strings.Builder

	if p.machine.Complete() {
		b.WriteString(renderTitle("Your Video Is Ready!", fmt.Sprintf("%s with %s", p.car.Name, p.celebrity.Name)))
	} else {
		b.WriteString(renderTitle("Generating Your Video", "Sit back while we put your tour together"))
	}
	b.WriteString("\n\n")

	p.bar.SetWidth(max(min(p.width-12, 60), 20))
	b.WriteString(p.bar.ViewAs(p.machine.Progress() / stage.Max))
	b.WriteString("\n\n")

	for i, st := range p.machine.All() {
		switch {
		case p.machine.Complete() || i < p.machine.Current():
			b.WriteString(s.Success.Render("✓ ") + s.Muted.Render(st.Name))
		case i == p.machine.Current():
			b.WriteString(s.Title.Render("▸ ") + s.Text.Render(st.Name) + "  " + p.spinner.View())
		default:
			b.WriteString(s.Dim.Render("○ " + st.Name))
		}
		b.WriteString("\n")
	}

	if p.machine.Complete() {
		b.WriteString("\n")
		b.WriteString(s.Panel.Render(s.Muted.Render("Video: ") + s.Text.Render(p.env.session.Video)))
		b.WriteString("\n\n")
		b.WriteString(NewButtonBar([]Button{
			{Key: "enter", Label: "Share Your Video", State: ButtonFocused},
		}).Render())
	}
	return b.String()
}

// Hints implements Page.
func (p *VideoPage) Hints() []string {
	if p.machine.Complete() {
		return []string{"enter", "share", "esc", "back"}
	}
	return []string{"esc", "back"}
}

// Teardown implements Page.
func (p *VideoPage) Teardown() {
	p.machine.Cancel()
}
