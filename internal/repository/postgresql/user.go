package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/user"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// GetByUsername implements user.UserRepository.
func (r *userRepositoryImpl) GetByUsername(ctx context.Context, username string) (user.AdminUser, error) {
	q := GetQuerier(ctx, r.db)

	var u user.AdminUser
	err := q.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at
		FROM admin_users
		WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.AdminUser{}, user.ErrUserNotFound
		}
		return user.AdminUser{}, err
	}
	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, username string, passwordHash string) (user.AdminUser, error) {
	q := GetQuerier(ctx, r.db)

	var u user.AdminUser
	err := q.QueryRow(ctx, `
		INSERT INTO admin_users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, password_hash, created_at
	`, username, passwordHash).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return user.AdminUser{}, user.ErrUserAlreadyExists
		}
		return user.AdminUser{}, fmt.Errorf("failed to create admin user: %w", err)
	}
	return u, nil
}
