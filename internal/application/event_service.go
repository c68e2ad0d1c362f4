package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oceantrail/divelog-api/internal/domain/entity"
	"github.com/oceantrail/divelog-api/internal/domain/repository"
	"github.com/oceantrail/divelog-api/internal/domain/values"
	"github.com/oceantrail/divelog-api/pkg/mailer"
)

type EventService struct {
	Repo      repository.EventRepository
	Users     repository.UserRepository
	Publisher Publisher
	Logger    *logrus.Logger
}

func NewEventService(repo repository.EventRepository, users repository.UserRepository, pub Publisher, logger *logrus.Logger) *EventService {
	return &EventService{Repo: repo, Users: users, Publisher: pub, Logger: logger}
}

type CreateEventInput struct {
	Title           string
	Description     string
	EventDate       time.Time
	LocationName    string
	Latitude        *float64
	Longitude       *float64
	DivingSpotID    *string
	MaxParticipants *int
}

func coordinatesFrom(lat, lon *float64) (*values.Coordinates, error) {
	if lat == nil || lon == nil {
		return nil, nil
	}
	c, err := values.NewCoordinates(*lat, *lon)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *EventService) Create(ctx context.Context, organizerID string, in CreateEventInput) (*entity.Event, error) {
	location, err := coordinatesFrom(in.Latitude, in.Longitude)
	if err != nil {
		return nil, err
	}
	e, err := entity.NewEvent(entity.NewEventInput{
		Title:           in.Title,
		Description:     in.Description,
		EventDate:       in.EventDate,
		LocationName:    in.LocationName,
		Location:        location,
		DivingSpotID:    in.DivingSpotID,
		OrganizerID:     organizerID,
		MaxParticipants: in.MaxParticipants,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*entity.Event, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *EventService) ListUpcoming(ctx context.Context, limit, offset int) ([]*entity.Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.ListUpcoming(ctx, limit, offset)
}

func (s *EventService) ListByOrganizer(ctx context.Context, organizerID string, limit, offset int) ([]*entity.Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.ListByOrganizer(ctx, organizerID, limit, offset)
}

func (s *EventService) UpdateDetails(ctx context.Context, id string, in CreateEventInput) (*entity.Event, error) {
	e, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	location, err := coordinatesFrom(in.Latitude, in.Longitude)
	if err != nil {
		return nil, err
	}
	if err := e.UpdateDetails(in.Title, in.Description, in.EventDate, in.LocationName, location); err != nil {
		return nil, err
	}
	if in.MaxParticipants != nil {
		if err := e.UpdateMaxParticipants(in.MaxParticipants); err != nil {
			return nil, err
		}
	}
	if err := s.Repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventService) Register(ctx context.Context, eventID, userID string, comment *string) (*entity.Event, error) {
	e, err := s.Repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if err := e.RegisterParticipant(userID, comment); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventService) Unregister(ctx context.Context, eventID, userID string) (*entity.Event, error) {
	e, err := s.Repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := e.UnregisterParticipant(userID); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Cancel cancels the event and queues a high priority notification for every
// registered participant.
func (s *EventService) Cancel(ctx context.Context, id string) (*entity.Event, error) {
	e, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := e.Cancel(); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, e); err != nil {
		return nil, err
	}
	s.notifyParticipants(ctx, e, entity.NotificationEventCancelled, "Event cancelled",
		"The event \""+e.Title()+"\" has been cancelled", entity.PriorityHigh)
	return e, nil
}

func (s *EventService) Complete(ctx context.Context, id string) (*entity.Event, error) {
	e, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := e.Complete(); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventService) notifyParticipants(ctx context.Context, e *entity.Event, typ entity.NotificationType, title, message string, priority entity.NotificationPriority) {
	if s.Publisher == nil {
		return
	}
	eventID := e.ID()
	for _, p := range e.Participants() {
		u, err := s.Users.GetByID(ctx, p.UserID())
		if err != nil {
			continue
		}
		job := mailer.NotificationJob{
			UserID:      u.ID(),
			Email:       u.Email(),
			Type:        string(typ),
			Title:       title,
			Message:     message,
			Priority:    string(priority),
			ReferenceID: &eventID,
		}
		if pErr := s.Publisher.PublishJSON(ctx, job); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("event_id", eventID).WithField("user_id", u.ID()).
				Warn("publish event notification failed")
		}
	}
}
