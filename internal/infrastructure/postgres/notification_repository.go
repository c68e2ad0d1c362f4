package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oceantrail/divelog-api/internal/domain"
	"github.com/oceantrail/divelog-api/internal/domain/entity"
)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

const notificationColumns = `id, user_id, type, title, message, priority, is_read, read_at,
	reference_id, created_at`

func scanNotification(row pgx.Row) (*entity.Notification, error) {
	var rec entity.NotificationRecord
	var typ, priority string
	if err := row.Scan(&rec.ID, &rec.UserID, &typ, &rec.Title, &rec.Message, &priority,
		&rec.IsRead, &rec.ReadAt, &rec.ReferenceID, &rec.CreatedAt); err != nil {
		return nil, err
	}
	rec.Type = entity.NotificationType(typ)
	rec.Priority = entity.NotificationPriority(priority)
	return entity.RestoreNotification(rec), nil
}

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	rec := n.Record()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, rec.ID, rec.UserID, string(rec.Type), rec.Title, rec.Message, string(rec.Priority),
		rec.IsRead, rec.ReadAt, rec.ReferenceID, rec.CreatedAt)
	return err
}

func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	n, err := scanNotification(r.pool.QueryRow(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("notification", id)
		}
		return nil, err
	}
	return n, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE user_id = $1 AND (is_read = false OR NOT $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*entity.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM notifications
		WHERE user_id = $1 AND is_read = false
	`, userID).Scan(&count)
	return count, err
}

func (r *NotificationRepository) Update(ctx context.Context, n *entity.Notification) error {
	rec := n.Record()
	res, err := r.pool.Exec(ctx, `
		UPDATE notifications
		SET title = $2, message = $3, priority = $4, is_read = $5, read_at = $6
		WHERE id = $1
	`, rec.ID, rec.Title, rec.Message, string(rec.Priority), rec.IsRead, rec.ReadAt)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("notification", rec.ID)
	}
	return nil
}
