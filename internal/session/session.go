package session

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/mark3labs/celebtour/internal/logger"
	"github.com/mark3labs/celebtour/internal/nats"
	"github.com/nats-io/nats.go/jetstream"
)

var log = logger.Named("store")

// Tour event actions.
const (
	ActionStart     = "start"
	ActionAvatar    = "avatar"
	ActionCelebrity = "celebrity"
	ActionCar       = "car"
	ActionVideo     = "video"
	ActionShareURL  = "share_url"

	ActionSocial   = "social"
	ActionEmail    = "email"
	ActionCopy     = "copy"
	ActionDownload = "download"
)

// Event represents a generic event stored in the JetStream event log.
// Every step of a tour (selections, video, shares) is stored as an event
// following an append-only event sourcing pattern.
type Event struct {
	ID        string          `json:"id"`        // Unique event ID (xid)
	Timestamp time.Time       `json:"timestamp"` // When the event occurred
	Session   string          `json:"session"`   // Tour session ID
	Type      string          `json:"type"`      // Event type: tour, share
	Action    string          `json:"action"`    // Action type: start, celebrity, car, video, social, etc.
	Meta      json.RawMessage `json:"meta"`      // Action-specific metadata
	Data      string          `json:"data"`      // Primary content (id, url, platform, etc.)
}

// Recorder accepts tour events. The wizard records through this interface
// so it can run without an event store.
type Recorder interface {
	Record(ctx context.Context, event Event) error
}

// Store manages tour history through JetStream event sourcing.
// It provides methods for publishing events and loading state from the event stream.
type Store struct {
	js     jetstream.JetStream // JetStream context for operations
	stream jetstream.Stream    // The celebtour_events stream
}

// NewStore creates a new Store instance with the given JetStream context and stream.
func NewStore(js jetstream.JetStream, stream jetstream.Stream) *Store {
	return &Store{
		js:     js,
		stream: stream,
	}
}

// Record implements Recorder.
func (s *Store) Record(ctx context.Context, event Event) error {
	_, err := s.PublishEvent(ctx, event)
	return err
}

// PublishEvent appends an event to the JetStream event log.
// Events are published to subjects following the pattern: celebtour.{session}.{type}
// Returns the published ACK or an error if publishing fails.
func (s *Store) PublishEvent(ctx context.Context, event Event) (*jetstream.PubAck, error) {
	// Set timestamp if not already set
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Error("Failed to marshal event: %v", err)
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := nats.SubjectForEvent(event.Session, event.Type)

	log.Debug("Publishing event: session=%s type=%s action=%s", event.Session, event.Type, event.Action)

	ack, err := s.js.Publish(ctx, subject, data)
	if err != nil {
		log.Error("Failed to publish event to subject %s: %v", subject, err)
		return nil, fmt.Errorf("failed to publish event: %w", err)
	}

	log.Debug("Event published successfully: seq=%d", ack.Sequence)
	return ack, nil
}

// State is one tour reconstructed from its events.
type State struct {
	Session     string    `json:"session"`
	StartedAt   time.Time `json:"started_at"`
	Avatar      string    `json:"avatar,omitempty"` // Photo file name
	CelebrityID string    `json:"celebrity_id,omitempty"`
	Celebrity   string    `json:"celebrity,omitempty"`
	CarID       string    `json:"car_id,omitempty"`
	Car         string    `json:"car,omitempty"`
	Video       string    `json:"video,omitempty"`
	FinishedAt  time.Time `json:"finished_at,omitempty"`
	ShareURL    string    `json:"share_url,omitempty"`
	Shares      int       `json:"shares"`
	Downloads   int       `json:"downloads"`
}

// Finished reports whether the tour's video was generated.
func (st *State) Finished() bool {
	return st.Video != ""
}

// Apply applies an event to the state, implementing the reduce pattern.
// This method mutates the state based on the event type and action.
func (st *State) Apply(event Event) {
	switch event.Type {
	case nats.EventTypeTour:
		st.applyTourEvent(event)
	case nats.EventTypeShare:
		st.applyShareEvent(event)
	}
}

// applyTourEvent handles progress through the tour steps.
func (st *State) applyTourEvent(event Event) {
	var meta struct {
		Name        string `json:"name"`
		Celebrity   string `json:"celebrity"`
		CelebrityID string `json:"celebrity_id"`
		Car         string `json:"car"`
		CarID       string `json:"car_id"`
	}
	if len(event.Meta) > 0 {
		_ = json.Unmarshal(event.Meta, &meta)
	}

	switch event.Action {
	case ActionStart:
		st.StartedAt = event.Timestamp
	case ActionAvatar:
		st.Avatar = event.Data
	case ActionCelebrity:
		st.CelebrityID = event.Data
		st.Celebrity = meta.Name
	case ActionCar:
		st.CarID = event.Data
		st.Car = meta.Name
	case ActionVideo:
		st.Video = event.Data
		st.FinishedAt = event.Timestamp
		// Tours opened past the selection pages only name the pair here
		st.CelebrityID = cmp.Or(st.CelebrityID, meta.CelebrityID)
		st.Celebrity = cmp.Or(st.Celebrity, meta.Celebrity)
		st.CarID = cmp.Or(st.CarID, meta.CarID)
		st.Car = cmp.Or(st.Car, meta.Car)
	case ActionShareURL:
		st.ShareURL = event.Data
	}
}

// applyShareEvent handles share page actions.
func (st *State) applyShareEvent(event Event) {
	switch event.Action {
	case ActionSocial, ActionEmail:
		st.Shares++
	case ActionDownload:
		st.Downloads++
	}
}

// LoadState reconstructs one tour by reading and reducing all of its events
// from the JetStream event log.
func (s *Store) LoadState(ctx context.Context, session string) (*State, error) {
	log.Debug("Loading state for session: %s", session)

	state := &State{Session: session}
	err := s.replay(ctx, nats.SubjectForSession(session), func(event Event) {
		state.Apply(event)
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// LoadGallery reconstructs every tour in the log and returns the finished
// ones, most recent first.
func (s *Store) LoadGallery(ctx context.Context) ([]*State, error) {
	log.Debug("Loading gallery")

	tours := make(map[string]*State)
	err := s.replay(ctx, nats.AllSubjects, func(event Event) {
		st, ok := tours[event.Session]
		if !ok {
			st = &State{Session: event.Session}
			tours[event.Session] = st
		}
		st.Apply(event)
	})
	if err != nil {
		return nil, err
	}

	finished := make([]*State, 0, len(tours))
	for _, st := range tours {
		if st.Finished() {
			finished = append(finished, st)
		}
	}
	slices.SortFunc(finished, func(a, b *State) int {
		return b.FinishedAt.Compare(a.FinishedAt)
	})

	log.Debug("Gallery loaded: %d tours, %d finished", len(tours), len(finished))
	return finished, nil
}

// replay feeds every event on subject to fn in stream order.
func (s *Store) replay(ctx context.Context, subject string, fn func(Event)) error {
	consumer, err := s.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: subject,
		DeliverPolicy: jetstream.DeliverAllPolicy, // Start from beginning
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		log.Error("Failed to create consumer for %s: %v", subject, err)
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	// Fetch events in batches and reduce into state
	// Using a large batch size to minimize round trips
	const batchSize = 1000
	malformedCount := 0
	totalEvents := 0
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			log.Debug("Finished reading events (batch fetch complete)")
			break
		}

		msgCount := 0
		for msg := range msgs.Messages() {
			msgCount++
			totalEvents++
			var event Event
			if err := json.Unmarshal(msg.Data(), &event); err != nil {
				// Skip malformed events but acknowledge to prevent redelivery
				malformedCount++
				meta, _ := msg.Metadata()
				if meta != nil {
					log.Warn("Skipping malformed event (seq=%d): %v", meta.Sequence.Stream, err)
				}
				_ = msg.Ack()
				continue
			}

			// Store the message sequence as ID if not set
			if event.ID == "" {
				if meta, _ := msg.Metadata(); meta != nil {
					event.ID = fmt.Sprintf("%d", meta.Sequence.Stream)
				}
			}

			fn(event)
			_ = msg.Ack()
		}

		log.Debug("Processed batch: %d events", msgCount)

		// If we got fewer messages than batch size, we've reached the end
		if msgCount < batchSize {
			break
		}
	}

	if malformedCount > 0 {
		log.Warn("Skipped %d malformed events while replaying %s", malformedCount, subject)
	}
	log.Debug("Replayed %d events from %s", totalEvents, subject)
	return nil
}
