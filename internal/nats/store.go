package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// Subject pattern constants and helpers
const (
	streamName = "celebtour_events"

	// Event types
	EventTypeTour  = "tour"
	EventTypeShare = "share"
)

// SubjectForSession returns the wildcard subject pattern for all events in a session.
// Example: "celebtour.cq3v0k2d5t1g.>"
func SubjectForSession(session string) string {
	return fmt.Sprintf("celebtour.%s.>", session)
}

// SubjectForEvent returns the specific subject for an event type in a session.
// Example: "celebtour.cq3v0k2d5t1g.tour"
func SubjectForEvent(session, eventType string) string {
	return fmt.Sprintf("celebtour.%s.%s", session, eventType)
}

// AllSubjects matches every event of every session.
const AllSubjects = "celebtour.>"

// SetupStream creates or updates the JetStream stream for tour events.
// The stream captures all events for all sessions with 30-day retention,
// matching how long share links stay valid.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{AllSubjects},
		Storage:  jetstream.FileStorage,
		MaxAge:   30 * 24 * time.Hour, // 30 day retention
	})
}
