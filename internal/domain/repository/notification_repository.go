package repository

import (
	"context"

	"github.com/oceantrail/divelog-api/internal/domain/entity"
)

// NotificationRepository defines notification persistence.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	Update(ctx context.Context, n *entity.Notification) error
}
