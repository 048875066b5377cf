package wizard

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/mark3labs/celebtour/internal/catalog"
	"github.com/mark3labs/celebtour/internal/config"
	"github.com/mark3labs/celebtour/internal/delay"
	"github.com/mark3labs/celebtour/internal/logger"
	"github.com/mark3labs/celebtour/internal/route"
	"github.com/mark3labs/celebtour/internal/session"
	"github.com/mark3labs/celebtour/internal/share"
	"github.com/mark3labs/celebtour/internal/state"
	"github.com/mark3labs/celebtour/internal/upload"
)

var log = logger.Named("wizard")

// Page is one screen of the tour flow. The wizard creates a fresh page on
// every navigation and calls Teardown on the page it leaves, so timers a
// page started must be cancelled there.
type Page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	// Hints returns key/description pairs for the hint bar.
	Hints() []string
	Teardown()
}

// inputCapturer is implemented by pages that have a focused text input and
// need esc and printable keys for themselves.
type inputCapturer interface {
	Capturing() bool
}

// Gallery lists finished tours.
type Gallery interface {
	LoadGallery(ctx context.Context) ([]*session.State, error)
}

// Timing holds every simulated wait in the flow.
type Timing struct {
	Call          time.Duration // generic simulated call
	Continue      time.Duration // selection pages before moving on
	AvatarProcess time.Duration // photo to avatar
	AvatarReveal  time.Duration // avatar preview before moving on
	ShareURL      time.Duration // share link generation
	Copied        time.Duration // "Copied!" indicator
	Tick          time.Duration // tour progress tick
	Increment     float64       // tour progress per tick
	VideoStepMin  time.Duration // shortest video stage
	VideoStepMax  time.Duration // longest video stage (exclusive)
}

// DefaultTiming returns the standard waits.
func DefaultTiming() Timing {
	return Timing{
		Call:          delay.DefaultCallDelay,
		Continue:      1500 * time.Millisecond,
		AvatarProcess: 2000 * time.Millisecond,
		AvatarReveal:  1500 * time.Millisecond,
		ShareURL:      500 * time.Millisecond,
		Copied:        2000 * time.Millisecond,
		Tick:          100 * time.Millisecond,
		Increment:     0.5,
		VideoStepMin:  time.Second,
		VideoStepMax:  3 * time.Second,
	}
}

// TimingFromConfig applies the configurable waits to DefaultTiming.
func TimingFromConfig(cfg *config.Config) Timing {
	t := DefaultTiming()
	if cfg == nil {
		return t
	}
	if cfg.CallDelay > 0 {
		t.Call = cfg.CallDelay
	}
	if cfg.TickInterval > 0 {
		t.Tick = cfg.TickInterval
	}
	if cfg.TickIncrement > 0 {
		t.Increment = cfg.TickIncrement
	}
	return t
}

// NavigateMsg asks the wizard to push Path. From is the id of the page that
// scheduled it; a page that has since been torn down can not navigate.
// From zero navigates unconditionally.
type NavigateMsg struct {
	Path string
	From int64
}

// recordFailedMsg reports an event store write that failed.
type recordFailedMsg struct {
	err error
}

var lastPageID atomic.Int64

// env is what every page shares: configuration, the catalog, the running
// session and the outside world.
type env struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	session *session.Session
	ui      *state.UIState
	clip    share.Clipboard
	rec     session.Recorder
	gallery Gallery
	loader  *upload.Loader
	timing  Timing
	rng     *rand.Rand
}

// base carries the per-page id, the page's place in the flow and the
// shared env.
type base struct {
	id     int64
	path   string
	env    *env
	width  int
	height int
}

func newBase(e *env, path string) base {
	return base{id: lastPageID.Add(1), path: path, env: e, width: 80, height: 24}
}

func (b *base) pageID() int64 {
	return b.id
}

func (b *base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// navigateAfter navigates to path after d, unless the page is gone by then.
func (b *base) navigateAfter(d time.Duration, path string) tea.Cmd {
	return delay.After(d, NavigateMsg{Path: path, From: b.id})
}

// next navigates to the page after this one in the tour flow.
func (b *base) next() tea.Cmd {
	msg := NavigateMsg{Path: route.Next(b.path), From: b.id}
	return func() tea.Msg { return msg }
}

// nextAfter navigates to the page after this one once d has passed.
func (b *base) nextAfter(d time.Duration) tea.Cmd {
	return b.navigateAfter(d, route.Next(b.path))
}

// record writes ev to the event store in the background.
func (e *env) record(ev session.Event) tea.Cmd {
	if e.rec == nil {
		return nil
	}
	rec := e.rec
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rec.Record(ctx, ev); err != nil {
			return recordFailedMsg{err: err}
		}
		return nil
	}
}
