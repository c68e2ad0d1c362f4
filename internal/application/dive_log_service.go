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

// Publisher pushes notification jobs onto the queue. Satisfied by
// helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type DiveLogService struct {
	Repo      repository.DiveLogRepository
	Users     repository.UserRepository
	Spots     repository.DivingSpotRepository
	Publisher Publisher
	Logger    *logrus.Logger
}

func NewDiveLogService(repo repository.DiveLogRepository, users repository.UserRepository, spots repository.DivingSpotRepository, pub Publisher, logger *logrus.Logger) *DiveLogService {
	return &DiveLogService{Repo: repo, Users: users, Spots: spots, Publisher: pub, Logger: logger}
}

type LogDiveInput struct {
	DivingSpotID     string
	DiveDate         time.Time
	Duration         time.Duration
	MaxDepthMeters   float64
	StartPressure    float64
	EndPressure      float64
	TankVolume       float64
	GasType          string
	OxygenPercentage *float64
}

func (s *DiveLogService) LogDive(ctx context.Context, userID string, in LogDiveInput) (*entity.DiveLog, error) {
	if _, err := s.Spots.GetByID(ctx, in.DivingSpotID); err != nil {
		return nil, err
	}
	maxDepth, err := values.DepthFromMeters(in.MaxDepthMeters)
	if err != nil {
		return nil, err
	}
	d, err := entity.NewDiveLog(entity.NewDiveLogInput{
		UserID:           userID,
		DivingSpotID:     in.DivingSpotID,
		DiveDate:         in.DiveDate,
		Duration:         in.Duration,
		MaxDepth:         maxDepth,
		StartPressure:    in.StartPressure,
		EndPressure:      in.EndPressure,
		TankVolume:       in.TankVolume,
		GasType:          entity.GasType(in.GasType),
		OxygenPercentage: in.OxygenPercentage,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DiveLogService) Get(ctx context.Context, id string) (*entity.DiveLog, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DiveLogService) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.DiveLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

type UpdateDiveInput struct {
	DiveDate           time.Time
	Duration           time.Duration
	MaxDepthMeters     float64
	AverageDepthMeters *float64
}

func (s *DiveLogService) UpdateDive(ctx context.Context, id string, in UpdateDiveInput) (*entity.DiveLog, error) {
	d, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	maxDepth, err := values.DepthFromMeters(in.MaxDepthMeters)
	if err != nil {
		return nil, err
	}
	var avgDepth *values.Depth
	if in.AverageDepthMeters != nil {
		a, err := values.DepthFromMeters(*in.AverageDepthMeters)
		if err != nil {
			return nil, err
		}
		avgDepth = &a
	}
	if err := d.UpdateDiveDetails(in.DiveDate, in.Duration, maxDepth, avgDepth); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

type DiveConditionsInput struct {
	WaterTemperatureC *float64
	VisibilityMeters  *float64
}

func (s *DiveLogService) UpdateConditions(ctx context.Context, id string, in DiveConditionsInput) (*entity.DiveLog, error) {
	d, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var temp *values.WaterTemperature
	if in.WaterTemperatureC != nil {
		t, err := values.TemperatureFromCelsius(*in.WaterTemperatureC)
		if err != nil {
			return nil, err
		}
		temp = &t
	}
	var vis *values.Visibility
	if in.VisibilityMeters != nil {
		v, err := values.VisibilityFromMeters(*in.VisibilityMeters)
		if err != nil {
			return nil, err
		}
		vis = &v
	}
	d.UpdateConditions(temp, vis)
	if err := s.Repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DiveLogService) UpdateNotes(ctx context.Context, id string, notes *string) (*entity.DiveLog, error) {
	d, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := d.UpdateNotes(notes); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// SetBuddy tags another diver on the log and queues a notification for them.
func (s *DiveLogService) SetBuddy(ctx context.Context, id, buddyUserID string) (*entity.DiveLog, error) {
	d, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	buddy, err := s.Users.GetByID(ctx, buddyUserID)
	if err != nil {
		return nil, err
	}
	if err := d.SetBuddy(buddyUserID); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, d); err != nil {
		return nil, err
	}

	owner, err := s.Users.GetByID(ctx, d.UserID())
	if err == nil && s.Publisher != nil {
		logID := d.ID()
		job := mailer.NotificationJob{
			UserID:      buddy.ID(),
			Email:       buddy.Email(),
			Type:        string(entity.NotificationBuddyAdded),
			Title:       "Tagged as dive buddy",
			Message:     owner.Username() + " tagged you as a buddy on a dive",
			Priority:    string(entity.PriorityNormal),
			ReferenceID: &logID,
		}
		if pErr := s.Publisher.PublishJSON(ctx, job); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("dive_log_id", logID).Warn("publish buddy notification failed")
		}
	}
	return d, nil
}

func (s *DiveLogService) RemoveBuddy(ctx context.Context, id string) (*entity.DiveLog, error) {
	d, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.RemoveBuddy()
	if err := s.Repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DiveLogService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
