package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"armabazar/internal/domain/entity"
	"armabazar/internal/domain/repository"
	"armabazar/pkg/errors"
	"armabazar/pkg/utils"
)

type postgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) repository.UserRepository {
	return &postgresUserRepository{
		db: db,
	}
}

const userColumns = `id, email, username, nickname, avatar_url, bio, city, verified, banned, admin, reputation, created_at, updated_at`

func (r *postgresUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = utils.GenerateID()
	}
	if user.Reputation == "" {
		user.Reputation = entity.ReputationNeutral
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, username, nickname, avatar_url, bio, city, verified, banned, admin, reputation, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
         ON CONFLICT (id) DO NOTHING`,
		user.ID, user.Email, user.Username, user.Nickname, user.AvatarURL, user.Bio, user.City,
		user.Verified, user.Banned, user.Admin, user.Reputation, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}
	return &user, nil
}

func (r *postgresUserRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx,
		`UPDATE users
         SET email = $2, username = $3, nickname = $4, avatar_url = $5, bio = $6, city = $7,
             verified = $8, reputation = $9, updated_at = $10
         WHERE id = $1`,
		user.ID, user.Email, user.Username, user.Nickname, user.AvatarURL, user.Bio, user.City,
		user.Verified, user.Reputation, user.UpdatedAt)
	if err != nil {
		return errors.Internal("Failed to update user", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NotFound("User", nil)
	}
	return nil
}

func (r *postgresUserRepository) List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return nil, 0, errors.Internal("Failed to count users", err)
	}

	var users []*entity.User
	err := r.db.SelectContext(ctx, &users,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list users", err)
	}
	return users, total, nil
}

func (r *postgresUserRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET banned = $2, updated_at = NOW() WHERE id = $1`, id, banned)
	if err != nil {
		return errors.Internal("Failed to update user", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NotFound("User", nil)
	}
	return nil
}

func (r *postgresUserRepository) SetAdmin(ctx context.Context, id string, admin bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET admin = $2, updated_at = NOW() WHERE id = $1`, id, admin)
	if err != nil {
		return errors.Internal("Failed to update user", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NotFound("User", nil)
	}
	return nil
}

func (r *postgresUserRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, errors.Internal("Failed to count users", err)
	}
	return total, nil
}
