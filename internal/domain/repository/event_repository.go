package repository

import (
	"context"

	"github.com/oceantrail/divelog-api/internal/domain/entity"
)

// EventRepository defines event persistence including registrations.
type EventRepository interface {
	Create(ctx context.Context, e *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	ListUpcoming(ctx context.Context, limit, offset int) ([]*entity.Event, error)
	ListByOrganizer(ctx context.Context, organizerID string, limit, offset int) ([]*entity.Event, error)
	Update(ctx context.Context, e *entity.Event) error
}
