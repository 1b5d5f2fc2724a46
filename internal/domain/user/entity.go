package user

import "time"

// AdminUser is a dashboard account. Employees never log in; they use the chat bots.
type AdminUser struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
