package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oceantrail/divelog-api/internal/domain"
	"github.com/oceantrail/divelog-api/internal/domain/entity"
	"github.com/oceantrail/divelog-api/internal/domain/values"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, username, first_name, last_name, bio, avatar_url,
	is_premium, premium_since, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var rec entity.UserRecord
	var firstName, lastName, bio string
	var avatarURL *string
	if err := row.Scan(&rec.ID, &rec.Email, &rec.Username, &firstName, &lastName, &bio,
		&avatarURL, &rec.IsPremium, &rec.PremiumSince, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	rec.Profile = values.RestoreUserProfile(firstName, lastName, bio, avatarURL)
	return entity.RestoreUser(rec), nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User, passwordHash string) error {
	rec := u.Record()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, username, first_name, last_name, bio, avatar_url,
			is_premium, premium_since, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, rec.ID, rec.Email, rec.Username, rec.Profile.FirstName(), rec.Profile.LastName(),
		rec.Profile.Bio(), rec.Profile.AvatarURL(), rec.IsPremium, rec.PremiumSince,
		passwordHash, rec.CreatedAt, rec.UpdatedAt)
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user", id)
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user", email)
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE username = $1
	`, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user", username)
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetCredentials(ctx context.Context, email string) (string, string, error) {
	var userID, passwordHash string
	err := r.pool.QueryRow(ctx, `
		SELECT id, password_hash
		FROM users
		WHERE email = $1
	`, email).Scan(&userID, &passwordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", "", domain.NewNotFoundError("user", email)
		}
		return "", "", err
	}
	return userID, passwordHash, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	rec := u.Record()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, username = $2, first_name = $3, last_name = $4, bio = $5,
			avatar_url = $6, is_premium = $7, premium_since = $8, updated_at = $9
		WHERE id = $10
	`, rec.Email, rec.Username, rec.Profile.FirstName(), rec.Profile.LastName(),
		rec.Profile.Bio(), rec.Profile.AvatarURL(), rec.IsPremium, rec.PremiumSince,
		rec.UpdatedAt, rec.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("user", rec.ID)
	}
	return nil
}
