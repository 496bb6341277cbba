package models

import (
	"time"
)

// Role is the access level of a user account
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// IsAdmin returns true for administrative accounts
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User represents a registered platform account
type User struct {
	ID          int       `json:"id"`
	Username    string    `json:"username"`
	Password    string    `json:"-"` // Never serialize
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Institution *string   `json:"institution"`
	Role        Role      `json:"role"`
	AvatarURL   *string   `json:"avatarUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserInput is the registration payload
type UserInput struct {
	Username    *string `json:"username" validate:"required"`
	Password    *string `json:"password" validate:"required"`
	Email       *string `json:"email" validate:"required"`
	Name        *string `json:"name" validate:"required"`
	Institution *string `json:"institution"`
	Role        *string `json:"role" validate:"omitempty,oneof=student admin"`
	AvatarURL   *string `json:"avatarUrl"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
