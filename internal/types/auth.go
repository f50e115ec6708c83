package types

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RegisterRequest represents the expected JSON body for registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=30" example:"Alice"`
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required,min=8,max=72,password_strength" example:"Str0ngP@ss!"`
}

// LoginRequest represents the expected JSON body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"Str0ngP@ss!"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string     `json:"token" example:"eyJhbGciOiJI..."`
	User  PublicUser `json:"user"`
}

// Claims are the custom claims carried by a session token.
type Claims struct {
	UserID uuid.UUID `json:"uid"`
	Email  string    `json:"eml"`
	jwt.RegisteredClaims
}

// IssuedAtTime returns the issue time, zero if the claim is absent.
func (c *Claims) IssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// ExpiresAtTime returns the expiry time, zero if the claim is absent.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Response represents a generic API response for success or error messages.
type Response struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"Operation successful"`
	Error   string `json:"error,omitempty" example:"Resource not found"`
}
