package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oceantrail/divelog-api/internal/domain"
	"github.com/oceantrail/divelog-api/internal/domain/values"
)

// EventStatus is the lifecycle state of an Event. Cancelled and Completed are
// terminal.
type EventStatus string

const (
	EventScheduled EventStatus = "scheduled"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

const (
	minEventTitleLen          = 3
	maxEventTitleLen          = 100
	minEventDescriptionLen    = 10
	maxEventDescriptionLen    = 2000
	minEventLocationNameLen   = 3
	maxEventLocationNameLen   = 200
	maxEventParticipantsLimit = 1000
	maxParticipantCommentLen  = 500
)

// Participant is a child of Event, unique per user.
type Participant struct {
	userID       string
	comment      *string
	registeredAt time.Time
}

func (p Participant) UserID() string          { return p.userID }
func (p Participant) Comment() *string        { return copyOptional(p.comment) }
func (p Participant) RegisteredAt() time.Time { return p.registeredAt }

// Event is the aggregate root for a scheduled group dive.
type Event struct {
	id              string
	title           string
	description     string
	eventDate       time.Time
	locationName    string
	location        *values.Coordinates
	divingSpotID    *string
	organizerID     string
	maxParticipants *int
	status          EventStatus
	participants    []Participant
	createdAt       time.Time
	updatedAt       time.Time
}

// NewEventInput carries the arguments for NewEvent. A nil MaxParticipants
// means unlimited capacity. Past event dates are allowed so historical events
// can be recorded.
type NewEventInput struct {
	Title           string
	Description     string
	EventDate       time.Time
	LocationName    string
	Location        *values.Coordinates
	DivingSpotID    *string
	OrganizerID     string
	MaxParticipants *int
}

// NewEvent validates and creates a scheduled event.
func NewEvent(in NewEventInput) (*Event, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	locationName := strings.TrimSpace(in.LocationName)
	if err := validateEventDetails(title, description, locationName); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.OrganizerID) == "" {
		return nil, domain.NewValidationError("organizerId", "is required")
	}
	if err := validateMaxParticipants(in.MaxParticipants); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Event{
		id:              uuid.NewString(),
		title:           title,
		description:     description,
		eventDate:       in.EventDate,
		locationName:    locationName,
		location:        in.Location,
		divingSpotID:    trimOptional(in.DivingSpotID),
		organizerID:     in.OrganizerID,
		maxParticipants: copyOptionalInt(in.MaxParticipants),
		status:          EventScheduled,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func validateEventDetails(title, description, locationName string) error {
	if len(title) < minEventTitleLen || len(title) > maxEventTitleLen {
		return domain.NewValidationError("title", "must be between 3 and 100 characters")
	}
	if len(description) < minEventDescriptionLen || len(description) > maxEventDescriptionLen {
		return domain.NewValidationError("description", "must be between 10 and 2000 characters")
	}
	if len(locationName) < minEventLocationNameLen || len(locationName) > maxEventLocationNameLen {
		return domain.NewValidationError("locationName", "must be between 3 and 200 characters")
	}
	return nil
}

func validateMaxParticipants(max *int) error {
	if max != nil && (*max < 1 || *max > maxEventParticipantsLimit) {
		return domain.NewValidationError("maxParticipants", "must be between 1 and 1000")
	}
	return nil
}

func (e *Event) requireScheduled() error {
	switch e.status {
	case EventCancelled:
		return domain.NewStateConflictError("event is cancelled")
	case EventCompleted:
		return domain.NewStateConflictError("event is completed")
	}
	return nil
}

// UpdateDetails replaces the descriptive fields. Forbidden once the event is
// cancelled or completed.
func (e *Event) UpdateDetails(title, description string, eventDate time.Time, locationName string, location *values.Coordinates) error {
	if err := e.requireScheduled(); err != nil {
		return err
	}
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	locationName = strings.TrimSpace(locationName)
	if err := validateEventDetails(title, description, locationName); err != nil {
		return err
	}
	e.title = title
	e.description = description
	e.eventDate = eventDate
	e.locationName = locationName
	e.location = location
	e.touch()
	return nil
}

// UpdateMaxParticipants changes the capacity. The new capacity cannot fall
// below the current registration count; nil means unlimited.
func (e *Event) UpdateMaxParticipants(max *int) error {
	if err := e.requireScheduled(); err != nil {
		return err
	}
	if err := validateMaxParticipants(max); err != nil {
		return err
	}
	if max != nil && *max < len(e.participants) {
		return domain.NewStateConflictError("capacity cannot be lower than current participant count")
	}
	e.maxParticipants = copyOptionalInt(max)
	e.touch()
	return nil
}

// RegisterParticipant adds a registration. The organizer is an implicit
// participant and cannot self-register.
func (e *Event) RegisterParticipant(userID string, comment *string) error {
	if err := e.requireScheduled(); err != nil {
		return err
	}
	if strings.TrimSpace(userID) == "" {
		return domain.NewValidationError("userId", "is required")
	}
	if userID == e.organizerID {
		return domain.NewStateConflictError("organizer is already an implicit participant")
	}
	for _, p := range e.participants {
		if p.userID == userID {
			return domain.NewStateConflictError("user is already registered")
		}
	}
	if e.IsFull() {
		return domain.NewStateConflictError("event is full")
	}
	comment = trimOptional(comment)
	if comment != nil && len(*comment) > maxParticipantCommentLen {
		return domain.NewValidationError("comment", "must be at most 500 characters")
	}
	e.participants = append(e.participants, Participant{
		userID:       userID,
		comment:      comment,
		registeredAt: time.Now().UTC(),
	})
	e.touch()
	return nil
}

// UnregisterParticipant removes a registration.
func (e *Event) UnregisterParticipant(userID string) error {
	if err := e.requireScheduled(); err != nil {
		return err
	}
	for i, p := range e.participants {
		if p.userID == userID {
			e.participants = append(e.participants[:i], e.participants[i+1:]...)
			e.touch()
			return nil
		}
	}
	return domain.NewStateConflictError("user is not registered for this event")
}

// Cancel moves the event to its terminal cancelled state.
func (e *Event) Cancel() error {
	if err := e.requireScheduled(); err != nil {
		return err
	}
	e.status = EventCancelled
	e.touch()
	return nil
}

// Complete moves the event to its terminal completed state. An event cannot
// be completed before its date has passed.
func (e *Event) Complete() error {
	if err := e.requireScheduled(); err != nil {
		return err
	}
	if e.eventDate.After(time.Now()) {
		return domain.NewStateConflictError("event date is still in the future")
	}
	e.status = EventCompleted
	e.touch()
	return nil
}

// IsFull reports whether a capacity is set and reached.
func (e *Event) IsFull() bool {
	return e.maxParticipants != nil && len(e.participants) >= *e.maxParticipants
}

// AvailableSpots returns the remaining capacity, or nil when unlimited.
func (e *Event) AvailableSpots() *int {
	if e.maxParticipants == nil {
		return nil
	}
	n := *e.maxParticipants - len(e.participants)
	if n < 0 {
		n = 0
	}
	return &n
}

// Participants returns a copy of the registration collection.
func (e *Event) Participants() []Participant {
	out := make([]Participant, len(e.participants))
	copy(out, e.participants)
	return out
}

// ParticipantCount is the number of explicit registrations.
func (e *Event) ParticipantCount() int { return len(e.participants) }

// IsRegistered reports whether the user has an explicit registration.
func (e *Event) IsRegistered(userID string) bool {
	for _, p := range e.participants {
		if p.userID == userID {
			return true
		}
	}
	return false
}

func (e *Event) touch() { e.updatedAt = time.Now().UTC() }

func (e *Event) ID() string                     { return e.id }
func (e *Event) Title() string                  { return e.title }
func (e *Event) Description() string            { return e.description }
func (e *Event) EventDate() time.Time           { return e.eventDate }
func (e *Event) LocationName() string           { return e.locationName }
func (e *Event) Location() *values.Coordinates  { return e.location }
func (e *Event) DivingSpotID() *string          { return copyOptional(e.divingSpotID) }
func (e *Event) OrganizerID() string            { return e.organizerID }
func (e *Event) MaxParticipants() *int          { return copyOptionalInt(e.maxParticipants) }
func (e *Event) Status() EventStatus            { return e.status }
func (e *Event) CreatedAt() time.Time           { return e.createdAt }
func (e *Event) UpdatedAt() time.Time           { return e.updatedAt }

// ParticipantRecord is the persistence mapping for Participant.
type ParticipantRecord struct {
	UserID       string
	Comment      *string
	RegisteredAt time.Time
}

// EventRecord is the persistence mapping for Event.
type EventRecord struct {
	ID              string
	Title           string
	Description     string
	EventDate       time.Time
	LocationName    string
	Location        *values.Coordinates
	DivingSpotID    *string
	OrganizerID     string
	MaxParticipants *int
	Status          EventStatus
	Participants    []ParticipantRecord
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RestoreEvent rehydrates an event and its registrations.
func RestoreEvent(rec EventRecord) *Event {
	e := &Event{
		id:              rec.ID,
		title:           rec.Title,
		description:     rec.Description,
		eventDate:       rec.EventDate,
		locationName:    rec.LocationName,
		location:        rec.Location,
		divingSpotID:    rec.DivingSpotID,
		organizerID:     rec.OrganizerID,
		maxParticipants: rec.MaxParticipants,
		status:          rec.Status,
		createdAt:       rec.CreatedAt,
		updatedAt:       rec.UpdatedAt,
	}
	for _, p := range rec.Participants {
		e.participants = append(e.participants, Participant{
			userID:       p.UserID,
			comment:      p.Comment,
			registeredAt: p.RegisteredAt,
		})
	}
	return e
}

// Record exports the event and its registrations for persistence.
func (e *Event) Record() EventRecord {
	rec := EventRecord{
		ID:              e.id,
		Title:           e.title,
		Description:     e.description,
		EventDate:       e.eventDate,
		LocationName:    e.locationName,
		Location:        e.location,
		DivingSpotID:    e.divingSpotID,
		OrganizerID:     e.organizerID,
		MaxParticipants: e.maxParticipants,
		Status:          e.status,
		CreatedAt:       e.createdAt,
		UpdatedAt:       e.updatedAt,
	}
	for _, p := range e.participants {
		rec.Participants = append(rec.Participants, ParticipantRecord{UserID: p.userID, Comment: p.comment, RegisteredAt: p.registeredAt})
	}
	return rec
}
