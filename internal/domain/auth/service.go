package auth

import "context"

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// EnsureAdmin creates the bootstrap admin account when it does not exist yet
	EnsureAdmin(ctx context.Context, username, password string) error
}
