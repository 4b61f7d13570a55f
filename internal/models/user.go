package models

import "time"

// Roles recognized by the authorization middleware.
const (
	RoleAdmin     = "admin"
	RoleVolunteer = "volunteer"
	RoleUser      = "user"
)

// User represents a registered actor: a reporter, a volunteer or an admin.
type User struct {
	ID           string    `json:"id" db:"id"` // UUID string from DB
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=user volunteer"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}
