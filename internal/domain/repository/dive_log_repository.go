package repository

import (
	"context"

	"github.com/oceantrail/divelog-api/internal/domain/entity"
)

// DiveLogRepository defines dive log persistence. Deletion is an external
// operation, so it lives here rather than on the aggregate.
type DiveLogRepository interface {
	Create(ctx context.Context, d *entity.DiveLog) error
	GetByID(ctx context.Context, id string) (*entity.DiveLog, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.DiveLog, error)
	Update(ctx context.Context, d *entity.DiveLog) error
	Delete(ctx context.Context, id string) error
}
