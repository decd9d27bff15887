package repository

import (
	"context"

	"armabazar/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error)
	SetBanned(ctx context.Context, id string, banned bool) error
	SetAdmin(ctx context.Context, id string, admin bool) error
	Count(ctx context.Context) (int64, error)
}
