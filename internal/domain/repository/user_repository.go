package repository

import (
	"context"

	"github.com/oceantrail/divelog-api/internal/domain/entity"
)

// UserRepository defines user persistence. Password hashes never enter the
// domain entity; they live beside it in the store.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User, passwordHash string) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetCredentials(ctx context.Context, email string) (userID, passwordHash string, err error)
	Update(ctx context.Context, u *entity.User) error
}
