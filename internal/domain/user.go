package domain

import (
	"time"
)

// Roles a user account can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account. The password hash is never
// serialized to JSON.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Fullname     string    `json:"fullname" db:"fullname"`
	Username     *string   `json:"username,omitempty" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Fullname string  `json:"fullname" validate:"required,min=3"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,username_chars"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6,password_strength"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// UpdateProfileRequest is the body of PATCH /api/auth/profile. All fields
// are optional; only provided fields are updated.
type UpdateProfileRequest struct {
	Fullname *string `json:"fullname,omitempty" validate:"omitempty,min=3"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,username_chars"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6,password_strength"`
}

// UserUpdate carries the effective column changes for a partial profile
// update. The password arrives here already hashed.
type UserUpdate struct {
	Fullname     *string
	Username     *string
	Email        *string
	PasswordHash *string
}
