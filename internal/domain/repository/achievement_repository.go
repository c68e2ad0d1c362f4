package repository

import (
	"context"

	"github.com/oceantrail/divelog-api/internal/domain/entity"
)

// AchievementRepository defines the achievement catalog and per-user unlocks.
type AchievementRepository interface {
	Create(ctx context.Context, a *entity.Achievement) error
	GetByID(ctx context.Context, id string) (*entity.Achievement, error)
	List(ctx context.Context, includeSecret bool) ([]*entity.Achievement, error)
	Update(ctx context.Context, a *entity.Achievement) error

	Unlock(ctx context.Context, ua *entity.UserAchievement) error
	GetUnlock(ctx context.Context, userID, achievementID string) (*entity.UserAchievement, error)
	ListUnlocksByUser(ctx context.Context, userID string) ([]*entity.UserAchievement, error)
	UpdateUnlock(ctx context.Context, ua *entity.UserAchievement) error
}
