package user

import "context"

type UserRepository interface {
	// GetByUsername returns ErrUserNotFound when no admin has the username
	GetByUsername(ctx context.Context, username string) (AdminUser, error)

	// Create returns ErrUserAlreadyExists when the username is taken
	Create(ctx context.Context, username string, passwordHash string) (AdminUser, error)
}
