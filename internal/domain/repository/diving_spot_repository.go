package repository

import (
	"context"

	"github.com/oceantrail/divelog-api/internal/domain/entity"
)

// DivingSpotRepository defines spot persistence. Update persists the
// aggregate together with its photo and rating collections.
type DivingSpotRepository interface {
	Create(ctx context.Context, s *entity.DivingSpot) error
	GetByID(ctx context.Context, id string) (*entity.DivingSpot, error)
	List(ctx context.Context, limit, offset int) ([]*entity.DivingSpot, error)
	Update(ctx context.Context, s *entity.DivingSpot) error
}
