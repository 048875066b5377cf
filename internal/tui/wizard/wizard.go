package wizard

import (
	"fmt"
	"math/rand/v2"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/mark3labs/celebtour/internal/catalog"
	"github.com/mark3labs/celebtour/internal/config"
	"github.com/mark3labs/celebtour/internal/route"
	"github.com/mark3labs/celebtour/internal/session"
	"github.com/mark3labs/celebtour/internal/share"
	"github.com/mark3labs/celebtour/internal/state"
	"github.com/mark3labs/celebtour/internal/tui"
	"github.com/mark3labs/celebtour/internal/tui/theme"
	"github.com/mark3labs/celebtour/internal/upload"
)

// Options configures a wizard run.
type Options struct {
	Config    *config.Config
	Catalog   *catalog.Catalog
	UIState   *state.UIState
	Recorder  session.Recorder // nil runs without an event store
	Gallery   Gallery          // nil hides past tours
	Clipboard share.Clipboard  // defaults to the system clipboard
	Start     string           // initial path, "/" when empty
	Timing    *Timing          // defaults to TimingFromConfig
	Seed      uint64           // video stage durations; 0 picks a random seed
}

// WizardModel is the bubbletea model for the whole tour. It owns the router
// and the current page, and replaces the page on every navigation.
type WizardModel struct {
	router *route.Router
	page   Page
	toast  *tui.Toast
	env    *env
	width  int
	height int
	quit   bool
}

// New builds a wizard from opts.
func New(opts Options) *WizardModel {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.MustDefault()
	}
	ui := opts.UIState
	if ui == nil {
		ui = state.DefaultUIState()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = share.SystemClipboard{}
	}
	timing := TimingFromConfig(cfg)
	if opts.Timing != nil {
		timing = *opts.Timing
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	start := opts.Start
	if start == "" {
		start = route.Home
	}

	e := &env{
		cfg:     cfg,
		catalog: cat,
		session: session.New(),
		ui:      ui,
		clip:    clip,
		rec:     opts.Recorder,
		gallery: opts.Gallery,
		loader:  upload.NewLoader(cfg.MaxUploadBytes),
		timing:  timing,
		rng:     rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
	return &WizardModel{
		router: route.NewRouter(start),
		toast:  tui.NewToast(),
		env:    e,
		width:  80,
		height: 24,
	}
}

// Run starts a full-screen program and blocks until the user quits.
func Run(opts Options) error {
	m := New(opts)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}
	return nil
}

// Init records the tour start and opens the first page.
func (m *WizardModel) Init() tea.Cmd {
	log.Info("Tour %s started at %s", m.env.session.ID, m.router.Current())
	m.page = m.newPage()
	m.page.SetSize(m.contentSize())
	return tea.Batch(
		m.env.record(m.env.session.TourEvent(session.ActionStart, "", nil)),
		m.page.Init(),
	)
}

// Path returns the current route.
func (m *WizardModel) Path() string {
	return m.router.Current()
}

// Page returns the page on screen.
func (m *WizardModel) Page() Page {
	return m.page
}

// Session returns the running session.
func (m *WizardModel) Session() *session.Session {
	return m.env.session
}

// Toast returns the toast overlay.
func (m *WizardModel) Toast() *tui.Toast {
	return m.toast
}

// Quitting reports whether the wizard asked the program to exit.
func (m *WizardModel) Quitting() bool {
	return m.quit
}

// Update handles messages for the wizard.
func (m *WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, m.exit()
		case "esc":
			if c, ok := m.page.(inputCapturer); ok && c.Capturing() {
				break
			}
			if !m.router.CanGoBack() {
				return m, m.exit()
			}
			m.router.Back()
			log.Debug("Back to %s", m.router.Current())
			return m, m.open()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.page != nil {
			m.page.SetSize(m.contentSize())
		}
		return m, nil

	case NavigateMsg:
		if msg.From != 0 && msg.From != m.pageID() {
			log.Debug("Dropping stale navigation to %s", msg.Path)
			return m, nil
		}
		from := m.router.Current()
		m.router.Push(msg.Path)
		log.Info("Navigate %s -> %s", from, m.router.Current())
		return m, m.open()

	case tui.ShowToastMsg, tui.ToastDismissMsg:
		return m, m.toast.Update(msg)

	case recordFailedMsg:
		log.Error("Recording event: %v", msg.err)
		return m, m.toast.ShowError("Could not save your progress")
	}

	if m.page == nil {
		return m, nil
	}
	return m, m.page.Update(msg)
}

// open tears down the current page and builds the one for the router's path.
func (m *WizardModel) open() tea.Cmd {
	if m.page != nil {
		m.page.Teardown()
	}
	m.page = m.newPage()
	m.page.SetSize(m.contentSize())
	return m.page.Init()
}

func (m *WizardModel) exit() tea.Cmd {
	m.quit = true
	log.Info("Tour %s closed at %s after %v", m.env.session.ID, m.router.Current(), m.router.History())
	if m.page != nil {
		m.page.Teardown()
	}
	return tea.Quit
}

func (m *WizardModel) pageID() int64 {
	if p, ok := m.page.(interface{ pageID() int64 }); ok {
		return p.pageID()
	}
	return 0
}

func (m *WizardModel) newPage() Page {
	switch m.router.Page() {
	case route.PageUpload:
		return newUploadPage(m.env)
	case route.PageCelebrities:
		return newCelebritiesPage(m.env)
	case route.PageCars:
		return newCarsPage(m.env)
	case route.PageTour:
		return newTourPage(m.env)
	case route.PageVideo:
		return newVideoPage(m.env)
	case route.PageShare:
		return newSharePage(m.env)
	case route.PageGallery:
		if m.env.gallery != nil {
			return newGalleryPage(m.env)
		}
		// Without a store there is nothing to list; show home under its own path
		m.router.Replace(route.Home)
	}
	return newHomePage(m.env, m.router.Current())
}

// contentSize is the area left for the page between header and hint bar.
func (m *WizardModel) contentSize() (int, int) {
	return tui.CalculateLayout(m.width, m.height).PageSize()
}

// View renders header, page and hint bar with the toast in the bottom right.
func (m *WizardModel) View() tea.View {
	var view tea.View
	view.AltScreen = true
	if m.page == nil {
		return view
	}

	s := theme.Current().S()
	layout := tui.CalculateLayout(m.width, m.height)
	header := s.Muted.Render("celebtour") + s.Dim.Render("  "+m.router.Current())
	content := lipgloss.NewStyle().Padding(0, tui.ContentPadding).Render(m.page.View())
	hints := renderHintBar(m.page.Hints()...)

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(" "+header).Draw(canvas, layout.Header)
	uv.NewStyledString(content).Draw(canvas, layout.Content)
	uv.NewStyledString(" "+hints).Draw(canvas, layout.Hints)

	// Toast floats above the hint bar
	if toast := m.toast.View(m.width - 2); toast != "" {
		h := lipgloss.Height(toast)
		uv.NewStyledString(toast).Draw(canvas, rect(0, max(layout.Hints.Min.Y-h, 0), m.width, h))
	}

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

func rect(x, y, w, h int) uv.Rectangle {
	return uv.Rectangle{
		Min: uv.Position{X: x, Y: y},
		Max: uv.Position{X: x + w, Y: y + h},
	}
}

// String renders the page without the screen buffer, for logs and tests.
func (m *WizardModel) String() string {
	return strings.Join([]string{m.router.Current(), m.page.View()}, "\n")
}
