// Package conversation plays a scripted exchange between the celebrity
// guide and the user one turn at a time.
package conversation

import (
	"sync/atomic"
	"time"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
)

const (
	typingPerChar  = 30 * time.Millisecond
	maxTyping      = 2 * time.Second
	readingPerChar = 50 * time.Millisecond
	// ReactionDelay is the pause between choosing a reaction and the next turn.
	ReactionDelay = time.Second
)

// Speaker identifies who says a turn.
type Speaker string

const (
	Celebrity Speaker = "celebrity"
	User      Speaker = "user"
)

// Turn is one line of the script. React marks celebrity turns after which
// playback waits for the user to pick a reaction.
type Turn struct {
	Speaker Speaker `yaml:"speaker"`
	Text    string  `yaml:"text"`
	React   bool    `yaml:"react,omitempty"`
}

// Reaction is a canned response offered at a reaction pause.
type Reaction struct {
	ID    string
	Label string
}

// Reactions are the choices offered whenever playback pauses.
var Reactions = []Reaction{
	{ID: "positive", Label: "That's amazing!"},
	{ID: "question", Label: "Tell me more"},
	{ID: "excited", Label: "I'm excited!"},
}

// Phase is where the player is within the current turn.
type Phase int

const (
	Idle Phase = iota
	Typing
	Reading
	AwaitingReaction
	Responding
	Done
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Typing:
		return "typing"
	case Reading:
		return "reading"
	case AwaitingReaction:
		return "awaiting reaction"
	case Responding:
		return "responding"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// TypingDelay is how long the typing indicator shows before text appears.
func TypingDelay(text string) time.Duration {
	return min(time.Duration(utf8.RuneCountInString(text))*typingPerChar, maxTyping)
}

// ReadingDelay is how long a turn stays on screen before the next one.
func ReadingDelay(text string) time.Duration {
	return time.Duration(utf8.RuneCountInString(text)) * readingPerChar
}

// StepMsg moves the player identified by ID to its next phase.
type StepMsg struct {
	ID  int64
	Gen int
}

var lastID atomic.Int64

// Player advances through a script on timers. Every timer it schedules is
// tagged with a generation; Stop and Skip bump it so late steps are ignored.
type Player struct {
	id         int64
	gen        int
	script     []Turn
	cursor     int
	phase      Phase
	reaction   string
	onComplete func() tea.Cmd
	completed  bool
}

// New creates a player for script. onComplete runs once, when the last turn
// has been read or the conversation is skipped.
func New(script []Turn, onComplete func() tea.Cmd) *Player {
	return &Player{
		id:         lastID.Add(1),
		script:     script,
		onComplete: onComplete,
	}
}

// Start begins playback at the current cursor.
func (p *Player) Start() tea.Cmd {
	if p.phase != Idle {
		return nil
	}
	return p.beginTurn()
}

// Update handles the player's own step messages.
func (p *Player) Update(msg tea.Msg) tea.Cmd {
	step, ok := msg.(StepMsg)
	if !ok || step.ID != p.id || step.Gen != p.gen {
		return nil
	}

	switch p.phase {
	case Typing:
		turn := p.script[p.cursor]
		if turn.Speaker == Celebrity && turn.React {
			p.phase = AwaitingReaction
			return nil
		}
		p.phase = Reading
		return p.after(ReadingDelay(turn.Text))
	case Reading, Responding:
		p.cursor++
		return p.beginTurn()
	}
	return nil
}

// React records the user's choice at a reaction pause and resumes playback
// after ReactionDelay. It does nothing outside a pause.
func (p *Player) React(id string) tea.Cmd {
	if p.phase != AwaitingReaction {
		return nil
	}
	p.reaction = id
	p.phase = Responding
	return p.after(ReactionDelay)
}

// Skip ends the conversation immediately without moving the cursor.
func (p *Player) Skip() tea.Cmd {
	return p.complete()
}

// Stop cancels any pending step. The player can not be restarted.
func (p *Player) Stop() {
	p.gen++
	p.phase = Done
}

// Cursor returns the index of the turn being played.
func (p *Player) Cursor() int { return p.cursor }

// Len returns the number of turns in the script.
func (p *Player) Len() int { return len(p.script) }

// Phase returns the current phase.
func (p *Player) Phase() Phase { return p.phase }

// Typing reports whether the typing indicator should show.
func (p *Player) Typing() bool { return p.phase == Typing }

// AwaitingReaction reports whether reactions should be offered.
func (p *Player) AwaitingReaction() bool { return p.phase == AwaitingReaction }

// Completed reports whether the completion callback has fired.
func (p *Player) Completed() bool { return p.completed }

// LastReaction returns the id of the most recent reaction chosen.
func (p *Player) LastReaction() string { return p.reaction }

// Current returns the turn under the cursor.
func (p *Player) Current() (Turn, bool) {
	if p.cursor >= len(p.script) {
		return Turn{}, false
	}
	return p.script[p.cursor], true
}

// Displayed returns the turns whose text is visible. While typing, the
// current turn is withheld.
func (p *Player) Displayed() []Turn {
	n := p.cursor + 1
	if p.phase == Typing || p.phase == Idle {
		n = p.cursor
	}
	return p.script[:min(n, len(p.script))]
}

func (p *Player) beginTurn() tea.Cmd {
	if p.cursor >= len(p.script) {
		return p.complete()
	}
	p.phase = Typing
	return p.after(TypingDelay(p.script[p.cursor].Text))
}

func (p *Player) complete() tea.Cmd {
	p.gen++
	p.phase = Done
	if p.completed {
		return nil
	}
	p.completed = true
	if p.onComplete != nil {
		return p.onComplete()
	}
	return nil
}

func (p *Player) after(d time.Duration) tea.Cmd {
	id, gen := p.id, p.gen
	return tea.Tick(d, func(time.Time) tea.Msg {
		return StepMsg{ID: id, Gen: gen}
	})
}
