// Package stage implements a progress-driven stage machine.
//
// A Machine advances a progress value in [0, 100] on a fixed tick and maps
// it onto an ordered list of stages by threshold. Crossing a threshold
// fires the stage's enter hook once; reaching 100 completes the machine.
// Manual navigation (Prev, Next, JumpTo) snaps progress to a stage's lower
// threshold and overrides whatever tick is in flight.
//
// Ticks are bubbletea commands. Each Start, Pause, Resume, Reset, Cancel or
// jump bumps a generation counter and ticks carrying an older generation
// are dropped, so a page that calls Cancel on teardown never sees a late
// tick mutate its state.
package stage

import (
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
)

const (
	// DefaultInterval is the tick period used when Config.Interval is zero.
	DefaultInterval = 100 * time.Millisecond
	// DefaultIncrement is the progress added per tick when Config.Increment is zero.
	DefaultIncrement = 0.5
	// Max is the progress value at which a machine completes.
	Max = 100.0

	// Float accumulation of fractional increments can land a hair short
	// of a boundary; values this close to Max count as complete.
	epsilon = 1e-9
)

var lastID atomic.Int64

func nextID() int64 {
	return lastID.Add(1)
}

// Stage is a named segment of the progress range starting at Threshold.
type Stage struct {
	Index     int
	Name      string
	Threshold float64
}

// EnterEvent describes a stage becoming current.
type EnterEvent struct {
	Stage    Stage
	Previous int
	// Manual is true when the stage was reached through Prev, Next or JumpTo.
	Manual bool
}

// Trigger runs Fn once, the first time progress exceeds At.
type Trigger struct {
	At float64
	Fn func() tea.Cmd
}

// Config configures a Machine.
type Config struct {
	Stages    []Stage
	Interval  time.Duration
	Increment float64
	// IntervalFor, when set, overrides Interval for ticks spent inside the
	// given stage index.
	IntervalFor func(stage int) time.Duration
	OnEnter     func(EnterEvent) tea.Cmd
	Triggers    []Trigger
	OnComplete  func() tea.Cmd
}

// TickMsg advances the machine identified by ID.
type TickMsg struct {
	ID  int64
	Gen int
}

// Machine is a progress-driven stage machine. The zero value is not usable;
// construct one with New.
type Machine struct {
	id  int64
	gen int
	cfg Config

	progress float64
	current  int
	running  bool
	complete bool

	completeFired bool
	entered       []bool
	fired         []bool
}

// New creates a machine positioned at stage 0 with progress 0.
// Stages are expected in increasing threshold order, the first at 0.
func New(cfg Config) *Machine {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Increment <= 0 {
		cfg.Increment = DefaultIncrement
	}
	cfg.Stages = append([]Stage(nil), cfg.Stages...)
	for i := range cfg.Stages {
		cfg.Stages[i].Index = i
	}
	m := &Machine{
		id:  nextID(),
		cfg: cfg,
	}
	m.rearm()
	return m
}

// Stages builds stages from names with evenly spaced thresholds.
func Stages(names ...string) []Stage {
	stages := make([]Stage, len(names))
	for i, name := range names {
		stages[i] = Stage{
			Index:     i,
			Name:      name,
			Threshold: float64(i) * Max / float64(len(names)),
		}
	}
	return stages
}

func (m *Machine) rearm() {
	m.entered = make([]bool, len(m.cfg.Stages))
	if len(m.entered) > 0 {
		m.entered[0] = true
	}
	m.fired = make([]bool, len(m.cfg.Triggers))
}

// ID returns the identifier carried by this machine's tick messages.
func (m *Machine) ID() int64 { return m.id }

// Progress returns the current progress in [0, 100].
func (m *Machine) Progress() float64 { return m.progress }

// Current returns the current stage index.
func (m *Machine) Current() int { return m.current }

// Stage returns the current stage.
func (m *Machine) Stage() Stage {
	if len(m.cfg.Stages) == 0 {
		return Stage{}
	}
	return m.cfg.Stages[m.current]
}

// All returns the configured stages.
func (m *Machine) All() []Stage { return m.cfg.Stages }

// Complete reports whether progress has reached 100. It stays true until Reset.
func (m *Machine) Complete() bool { return m.complete }

// Running reports whether ticks are being scheduled.
func (m *Machine) Running() bool { return m.running }

// Start begins ticking from the current progress.
func (m *Machine) Start() tea.Cmd {
	if m.progress >= Max {
		return nil
	}
	m.gen++
	m.running = true
	return m.tick()
}

// Pause stops ticking and drops the tick in flight.
func (m *Machine) Pause() {
	m.gen++
	m.running = false
}

// Resume restarts ticking after Pause. It is a no-op while running or at 100,
// but works on a completed machine that was stepped back below 100.
func (m *Machine) Resume() tea.Cmd {
	if m.running {
		return nil
	}
	return m.Start()
}

// Reset stops the machine and returns it to stage 0 with progress 0,
// re-arming every hook and trigger.
func (m *Machine) Reset() {
	m.gen++
	m.running = false
	m.progress = 0
	m.current = 0
	m.complete = false
	m.completeFired = false
	m.rearm()
}

// Cancel stops the machine. Pending ticks become no-ops.
func (m *Machine) Cancel() {
	m.gen++
	m.running = false
}

// Prev jumps to the previous stage.
func (m *Machine) Prev() tea.Cmd {
	if m.current == 0 {
		return nil
	}
	return m.JumpTo(m.current - 1)
}

// Next jumps to the next stage.
func (m *Machine) Next() tea.Cmd {
	if m.current >= len(m.cfg.Stages)-1 {
		return nil
	}
	return m.JumpTo(m.current + 1)
}

// Reachable reports whether stage i may be selected directly: any stage
// already current or passed, or any whose threshold progress has reached.
func (m *Machine) Reachable(i int) bool {
	if i < 0 || i >= len(m.cfg.Stages) {
		return false
	}
	return i <= max(m.current, m.segment())
}

// JumpTo makes stage i current and snaps progress to its threshold.
// Jumping backwards re-arms the enter hooks of every later stage. If the
// machine is running a fresh tick is scheduled from the new position.
func (m *Machine) JumpTo(i int) tea.Cmd {
	if i < 0 || i >= len(m.cfg.Stages) {
		return nil
	}

	prev := m.current
	m.gen++
	m.progress = m.cfg.Stages[i].Threshold
	m.current = i
	if i < prev {
		for j := i + 1; j < len(m.entered); j++ {
			m.entered[j] = false
		}
	}
	m.entered[i] = true

	var cmds []tea.Cmd
	if m.cfg.OnEnter != nil {
		cmds = append(cmds, m.cfg.OnEnter(EnterEvent{
			Stage:    m.cfg.Stages[i],
			Previous: prev,
			Manual:   true,
		}))
	}
	if m.running {
		cmds = append(cmds, m.tick())
	}
	return tea.Batch(cmds...)
}

// Update handles tick messages addressed to this machine.
func (m *Machine) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != m.id || tick.Gen != m.gen || !m.running {
		return nil
	}
	return m.advance(m.cfg.Increment)
}

func (m *Machine) advance(delta float64) tea.Cmd {
	var cmds []tea.Cmd

	m.progress += delta
	if m.progress >= Max-epsilon {
		m.progress = Max
	}

	target := m.target()
	for i := m.current + 1; i <= target; i++ {
		prev := m.current
		m.current = i
		if m.entered[i] {
			continue
		}
		m.entered[i] = true
		if m.cfg.OnEnter != nil {
			cmds = append(cmds, m.cfg.OnEnter(EnterEvent{
				Stage:    m.cfg.Stages[i],
				Previous: prev,
			}))
		}
	}

	for i, trig := range m.cfg.Triggers {
		if m.fired[i] || m.progress <= trig.At {
			continue
		}
		m.fired[i] = true
		if trig.Fn != nil {
			cmds = append(cmds, trig.Fn())
		}
	}

	if m.progress >= Max {
		m.running = false
		m.complete = true
		if !m.completeFired {
			m.completeFired = true
			if m.cfg.OnComplete != nil {
				cmds = append(cmds, m.cfg.OnComplete())
			}
		}
		return tea.Batch(cmds...)
	}

	cmds = append(cmds, m.tick())
	return tea.Batch(cmds...)
}

// target is the highest stage whose threshold progress strictly exceeds.
func (m *Machine) target() int {
	t := 0
	for i, s := range m.cfg.Stages {
		if m.progress > s.Threshold {
			t = i
		}
	}
	return t
}

// segment is the highest stage whose threshold progress has reached.
func (m *Machine) segment() int {
	seg := 0
	for i, s := range m.cfg.Stages {
		if m.progress >= s.Threshold {
			seg = i
		}
	}
	return seg
}

func (m *Machine) interval() time.Duration {
	if m.cfg.IntervalFor != nil {
		if d := m.cfg.IntervalFor(m.segment()); d > 0 {
			return d
		}
	}
	return m.cfg.Interval
}

func (m *Machine) tick() tea.Cmd {
	id, gen := m.id, m.gen
	return tea.Tick(m.interval(), func(time.Time) tea.Msg {
		return TickMsg{ID: id, Gen: gen}
	})
}
