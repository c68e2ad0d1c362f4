package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oceantrail/divelog-api/internal/domain"
	"github.com/oceantrail/divelog-api/internal/domain/entity"
	"github.com/oceantrail/divelog-api/internal/domain/repository"
	"github.com/oceantrail/divelog-api/pkg/mailer"
)

type AchievementService struct {
	Repo      repository.AchievementRepository
	Users     repository.UserRepository
	Publisher Publisher
	Logger    *logrus.Logger
}

func NewAchievementService(repo repository.AchievementRepository, users repository.UserRepository, pub Publisher, logger *logrus.Logger) *AchievementService {
	return &AchievementService{Repo: repo, Users: users, Publisher: pub, Logger: logger}
}

func (s *AchievementService) CreateAchievement(ctx context.Context, in entity.NewAchievementInput) (*entity.Achievement, error) {
	a, err := entity.NewAchievement(in)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AchievementService) Get(ctx context.Context, id string) (*entity.Achievement, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *AchievementService) List(ctx context.Context, includeSecret bool) ([]*entity.Achievement, error) {
	return s.Repo.List(ctx, includeSecret)
}

// UserAchievementView pairs an unlock with its catalog entry.
type UserAchievementView struct {
	Unlock      *entity.UserAchievement
	Achievement *entity.Achievement
}

func (s *AchievementService) ListForUser(ctx context.Context, userID string) ([]UserAchievementView, error) {
	unlocks, err := s.Repo.ListUnlocksByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]UserAchievementView, 0, len(unlocks))
	for _, ua := range unlocks {
		a, err := s.Repo.GetByID(ctx, ua.AchievementID())
		if err != nil {
			if domain.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		views = append(views, UserAchievementView{Unlock: ua, Achievement: a})
	}
	return views, nil
}

// Unlock grants an achievement once. Repeat unlocks update progress instead.
func (s *AchievementService) Unlock(ctx context.Context, userID, achievementID string, progress *int) (*entity.UserAchievement, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	a, err := s.Repo.GetByID(ctx, achievementID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.Repo.GetUnlock(ctx, userID, achievementID); err == nil {
		if err := existing.UpdateProgress(progress); err != nil {
			return nil, err
		}
		if err := s.Repo.UpdateUnlock(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	} else if !domain.IsNotFound(err) {
		return nil, err
	}

	ua, err := entity.NewUserAchievement(userID, achievementID, progress)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Unlock(ctx, ua); err != nil {
		return nil, err
	}
	s.notifyUnlock(ctx, userID, a)
	return ua, nil
}

func (s *AchievementService) notifyUnlock(ctx context.Context, userID string, a *entity.Achievement) {
	if s.Publisher == nil {
		return
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return
	}
	achievementID := a.ID()
	job := mailer.NotificationJob{
		UserID:      u.ID(),
		Email:       u.Email(),
		Type:        string(entity.NotificationAchievement),
		Title:       "Achievement unlocked",
		Message:     "You earned \"" + a.Title() + "\"",
		Priority:    string(entity.PriorityNormal),
		ReferenceID: &achievementID,
	}
	if pErr := s.Publisher.PublishJSON(ctx, job); pErr != nil && s.Logger != nil {
		s.Logger.WithError(pErr).WithField("achievement_id", achievementID).
			WithField("user_id", u.ID()).Warn("publish achievement notification failed")
	}
}
