package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/mark3labs/celebtour/internal/config"
	"github.com/mark3labs/celebtour/internal/session"
)

func init() {
	lipgloss.Writer.Profile = colorprofile.Ascii
}

// cmdTimeout bounds how long a command may block before its message is
// dropped. Animation ticks are slower than this, flow timers are not.
const cmdTimeout = 50 * time.Millisecond

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type fakeRecorder struct {
	mu     sync.Mutex
	events []session.Event
	err    error
}

func (r *fakeRecorder) Record(_ context.Context, ev session.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *fakeRecorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Action
	}
	return out
}

type fakeGallery struct {
	tours []*session.State
	err   error
}

func (g *fakeGallery) LoadGallery(context.Context) ([]*session.State, error) {
	return g.tours, g.err
}

var errBoom = errors.New("boom")

func testTiming() *Timing {
	return &Timing{
		Call:          time.Millisecond,
		Continue:      time.Millisecond,
		AvatarProcess: time.Millisecond,
		AvatarReveal:  time.Millisecond,
		ShareURL:      time.Millisecond,
		Copied:        time.Millisecond,
		Tick:          time.Millisecond,
		Increment:     5,
		VideoStepMin:  time.Millisecond,
		VideoStepMax:  2 * time.Millisecond,
	}
}

type harness struct {
	t    *testing.T
	m    *WizardModel
	clip *fakeClipboard
	rec  *fakeRecorder
	cfg  *config.Config
}

// newHarness builds an initialized wizard at start. Init's commands are
// not run; call pump to drive them.
func newHarness(t *testing.T, start string, mutate ...func(*Options)) (*harness, tea.Cmd) {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.DownloadsDir = t.TempDir()
	cfg.Persist = false

	h := &harness{t: t, clip: &fakeClipboard{}, rec: &fakeRecorder{}, cfg: cfg}
	opts := Options{
		Config:    cfg,
		Recorder:  h.rec,
		Clipboard: h.clip,
		Start:     start,
		Timing:    testTiming(),
		Seed:      42,
	}
	for _, fn := range mutate {
		fn(&opts)
	}
	h.m = New(opts)
	h.m.toast.SetDuration(time.Hour)
	cmd := h.m.Init()
	h.m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h, cmd
}

// send delivers msg to the wizard and returns the resulting command.
func (h *harness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.m.Update(msg)
	return cmd
}

// press sends a key press. Single runes carry their text so text inputs
// receive them.
func (h *harness) press(key string) tea.Cmd {
	return h.send(keyMsg(key))
}

func keyMsg(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	}
	r := []rune(key)[0]
	return tea.KeyPressMsg{Code: r, Text: key}
}

// typeText presses every rune of s.
func (h *harness) typeText(s string) {
	for _, r := range s {
		h.pump(h.press(string(r)))
	}
}

// pump runs cmd and feeds every message it produces back into the wizard,
// following the commands that returns, until nothing fast is left.
func (h *harness) pump(cmd tea.Cmd) {
	h.t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 5000 {
			h.t.Fatal("pump did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		for _, msg := range collect(next) {
			if _, ok := msg.(tea.QuitMsg); ok {
				continue
			}
			queue = append(queue, h.send(msg))
		}
	}
}

// collect runs cmd, flattening batches. Commands that block longer than
// cmdTimeout are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(cmdTimeout):
		return nil
	}

	switch msg := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// pageAs asserts the current page type.
func pageAs[T Page](t *testing.T, m *WizardModel) T {
	t.Helper()
	p, ok := m.Page().(T)
	if !ok {
		var zero T
		t.Fatalf("page is %T, want %T", m.Page(), zero)
	}
	return p
}
