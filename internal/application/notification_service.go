package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oceantrail/divelog-api/internal/domain"
	"github.com/oceantrail/divelog-api/internal/domain/entity"
	"github.com/oceantrail/divelog-api/internal/domain/repository"
)

type NotificationService struct {
	Repo   repository.NotificationRepository
	Logger *logrus.Logger
}

func NewNotificationService(repo repository.NotificationRepository, logger *logrus.Logger) *NotificationService {
	return &NotificationService{Repo: repo, Logger: logger}
}

// Deliver persists a new notification. Called by the queue worker.
func (s *NotificationService) Deliver(ctx context.Context, in entity.NewNotificationInput) (*entity.Notification, error) {
	n, err := entity.NewNotification(in)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.ListByUser(ctx, userID, unreadOnly, limit, offset)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	return s.Repo.CountUnread(ctx, userID)
}

func (s *NotificationService) get(ctx context.Context, id, requesterID string) (*entity.Notification, error) {
	n, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID() != requesterID {
		return nil, domain.NewNotFoundError("notification", id)
	}
	return n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, requesterID string) (*entity.Notification, error) {
	n, err := s.get(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	if err := n.MarkAsRead(); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) MarkUnread(ctx context.Context, id, requesterID string) (*entity.Notification, error) {
	n, err := s.get(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	if err := n.MarkAsUnread(); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// MarkAllRead marks every unread notification for the user.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	unread, err := s.Repo.ListByUser(ctx, userID, true, 100, 0)
	if err != nil {
		return 0, err
	}
	marked := 0
	for _, n := range unread {
		if err := n.MarkAsRead(); err != nil {
			continue
		}
		if err := s.Repo.Update(ctx, n); err != nil {
			if s.Logger != nil {
				s.Logger.WithError(err).WithField("notification_id", n.ID()).Warn("mark read failed")
			}
			continue
		}
		marked++
	}
	return marked, nil
}
