package session

import (
	"encoding/json"
	"time"

	"github.com/rs/xid"

	"github.com/mark3labs/celebtour/internal/catalog"
	"github.com/mark3labs/celebtour/internal/nats"
	"github.com/mark3labs/celebtour/internal/template"
	"github.com/mark3labs/celebtour/internal/upload"
)

// Session carries the user's photo and choices from page to page for one
// run through the tour. Pages read it instead of keeping their own copies.
type Session struct {
	ID        string
	StartedAt time.Time

	Photo  *upload.Photo
	Avatar *upload.Photo

	celebrity    catalog.Celebrity
	hasCelebrity bool
	car          catalog.Car
	hasCar       bool

	Video      string
	ShareURL   string
	ShareCount int
}

// New starts a fresh session.
func New() *Session {
	return &Session{
		ID:        xid.New().String(),
		StartedAt: time.Now(),
	}
}

// SetPhoto stores an accepted upload. Any previous avatar is dropped.
func (s *Session) SetPhoto(p upload.Photo) {
	s.Photo = &p
	s.Avatar = nil
}

// ClearPhoto removes the photo and the avatar made from it.
func (s *Session) ClearPhoto() {
	s.Photo = nil
	s.Avatar = nil
}

// CreateAvatar turns the current photo into the avatar.
func (s *Session) CreateAvatar() bool {
	if s.Photo == nil {
		return false
	}
	avatar := *s.Photo
	s.Avatar = &avatar
	return true
}

// SelectCelebrity records the chosen guide.
func (s *Session) SelectCelebrity(c catalog.Celebrity) {
	s.celebrity = c
	s.hasCelebrity = true
}

// SelectCar records the chosen car.
func (s *Session) SelectCar(c catalog.Car) {
	s.car = c
	s.hasCar = true
}

// CelebrityID returns the chosen guide's id, empty if none.
func (s *Session) CelebrityID() string {
	if !s.hasCelebrity {
		return ""
	}
	return s.celebrity.ID
}

// CarID returns the chosen car's id, empty if none.
func (s *Session) CarID() string {
	if !s.hasCar {
		return ""
	}
	return s.car.ID
}

// Pair returns the chosen celebrity and car. Pages opened directly, without
// going through the selections, fall back to the first catalog entries.
func (s *Session) Pair(cat *catalog.Catalog) (catalog.Celebrity, catalog.Car) {
	cel, car := s.celebrity, s.car
	if !s.hasCelebrity && len(cat.Celebrities) > 0 {
		cel = cat.Celebrities[0]
	}
	if !s.hasCar && len(cat.Cars) > 0 {
		car = cat.Cars[0]
	}
	return cel, car
}

// Vars returns template variables for the session's tour.
func (s *Session) Vars(cat *catalog.Catalog) template.Variables {
	cel, car := s.Pair(cat)
	vars := catalog.Vars(cel, car)
	vars.ShareURL = s.ShareURL
	return vars
}

// Restart begins a new tour with the same avatar.
func (s *Session) Restart() {
	s.ID = xid.New().String()
	s.StartedAt = time.Now()
	s.celebrity, s.hasCelebrity = catalog.Celebrity{}, false
	s.car, s.hasCar = catalog.Car{}, false
	s.Video = ""
	s.ShareURL = ""
	s.ShareCount = 0
}

// TourEvent builds a tour progress event for this session.
func (s *Session) TourEvent(action, data string, meta map[string]any) Event {
	return s.event(nats.EventTypeTour, action, data, meta)
}

// ShareEvent builds a share event for this session.
func (s *Session) ShareEvent(action, data string) Event {
	return s.event(nats.EventTypeShare, action, data, nil)
}

func (s *Session) event(typ, action, data string, meta map[string]any) Event {
	ev := Event{
		ID:        xid.New().String(),
		Timestamp: time.Now(),
		Session:   s.ID,
		Type:      typ,
		Action:    action,
		Data:      data,
	}
	if meta != nil {
		ev.Meta, _ = json.Marshal(meta)
	}
	return ev
}
