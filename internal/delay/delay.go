// Package delay turns fixed waits into bubbletea commands.
//
// Every simulated operation in the tour (avatar processing, selection
// confirmation, share link generation) is a fixed wait that resolves with
// canned data. There is no cancellation and no error path; callers that
// must ignore a late result tag the message with a generation.
package delay

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// DefaultCallDelay is the wait used by simulated calls when none is given.
const DefaultCallDelay = time.Second

// ResultMsg carries the canned data of a simulated call once its wait elapses.
type ResultMsg[T any] struct {
	Data T
}

// After returns a command that produces msg once d has elapsed.
func After(d time.Duration, msg tea.Msg) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}

// Call simulates a remote call that resolves with data after d.
// A non-positive d falls back to DefaultCallDelay.
func Call[T any](data T, d time.Duration) tea.Cmd {
	if d <= 0 {
		d = DefaultCallDelay
	}
	return After(d, ResultMsg[T]{Data: data})
}
