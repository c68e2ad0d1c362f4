package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oceantrail/divelog-api/internal/domain"
	"github.com/oceantrail/divelog-api/internal/domain/entity"
)

type AchievementRepository struct {
	pool *pgxpool.Pool
}

func NewAchievementRepository(pool *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{pool: pool}
}

const achievementColumns = `id, title, description, type, category, points, icon_url,
	required_value, is_secret, created_at, updated_at`

func scanAchievement(row pgx.Row) (*entity.Achievement, error) {
	var rec entity.AchievementRecord
	var typ, category string
	if err := row.Scan(&rec.ID, &rec.Title, &rec.Description, &typ, &category,
		&rec.Points, &rec.IconURL, &rec.RequiredValue, &rec.IsSecret,
		&rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	rec.Type = entity.AchievementType(typ)
	rec.Category = entity.AchievementCategory(category)
	return entity.RestoreAchievement(rec), nil
}

func (r *AchievementRepository) Create(ctx context.Context, a *entity.Achievement) error {
	rec := a.Record()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO achievements (`+achievementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, rec.ID, rec.Title, rec.Description, string(rec.Type), string(rec.Category),
		rec.Points, rec.IconURL, rec.RequiredValue, rec.IsSecret, rec.CreatedAt, rec.UpdatedAt)
	return err
}

func (r *AchievementRepository) GetByID(ctx context.Context, id string) (*entity.Achievement, error) {
	a, err := scanAchievement(r.pool.QueryRow(ctx, `
		SELECT `+achievementColumns+`
		FROM achievements
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("achievement", id)
		}
		return nil, err
	}
	return a, nil
}

func (r *AchievementRepository) List(ctx context.Context, includeSecret bool) ([]*entity.Achievement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+achievementColumns+`
		FROM achievements
		WHERE is_secret = false OR $1
		ORDER BY category, points
	`, includeSecret)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	achievements := make([]*entity.Achievement, 0)
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

func (r *AchievementRepository) Update(ctx context.Context, a *entity.Achievement) error {
	rec := a.Record()
	res, err := r.pool.Exec(ctx, `
		UPDATE achievements
		SET title = $2, description = $3, type = $4, category = $5, points = $6,
			icon_url = $7, required_value = $8, is_secret = $9, updated_at = $10
		WHERE id = $1
	`, rec.ID, rec.Title, rec.Description, string(rec.Type), string(rec.Category),
		rec.Points, rec.IconURL, rec.RequiredValue, rec.IsSecret, rec.UpdatedAt)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("achievement", rec.ID)
	}
	return nil
}

func (r *AchievementRepository) Unlock(ctx context.Context, ua *entity.UserAchievement) error {
	rec := ua.Record()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_achievements (id, user_id, achievement_id, progress, unlocked_at)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.ID, rec.UserID, rec.AchievementID, rec.Progress, rec.UnlockedAt)
	return err
}

func (r *AchievementRepository) GetUnlock(ctx context.Context, userID, achievementID string) (*entity.UserAchievement, error) {
	var rec entity.UserAchievementRecord
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, achievement_id, progress, unlocked_at
		FROM user_achievements
		WHERE user_id = $1 AND achievement_id = $2
	`, userID, achievementID).Scan(&rec.ID, &rec.UserID, &rec.AchievementID, &rec.Progress, &rec.UnlockedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user achievement", achievementID)
		}
		return nil, err
	}
	return entity.RestoreUserAchievement(rec), nil
}

func (r *AchievementRepository) ListUnlocksByUser(ctx context.Context, userID string) ([]*entity.UserAchievement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, achievement_id, progress, unlocked_at
		FROM user_achievements
		WHERE user_id = $1
		ORDER BY unlocked_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	unlocks := make([]*entity.UserAchievement, 0)
	for rows.Next() {
		var rec entity.UserAchievementRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.AchievementID, &rec.Progress, &rec.UnlockedAt); err != nil {
			return nil, err
		}
		unlocks = append(unlocks, entity.RestoreUserAchievement(rec))
	}
	return unlocks, rows.Err()
}

func (r *AchievementRepository) UpdateUnlock(ctx context.Context, ua *entity.UserAchievement) error {
	rec := ua.Record()
	res, err := r.pool.Exec(ctx, `
		UPDATE user_achievements
		SET progress = $2
		WHERE id = $1
	`, rec.ID, rec.Progress)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("user achievement", rec.ID)
	}
	return nil
}
