package user

import (
	"time"

	"github.com/google/uuid"
)

// Roles understood by the authorization policy.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents the users table
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	DisplayName  string
	Role         string // "user" or "admin"
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSession represents the user_sessions table
type UserSession struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	RefreshTokenHash string
	ExpiresAt        time.Time
	IsRevoked        bool
	CreatedAt        time.Time
}

func (User) TableName() string {
	return "users"
}

func (UserSession) TableName() string {
	return "user_sessions"
}
