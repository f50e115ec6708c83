package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UserStatus is the moderation state of an account.
type UserStatus string

const (
	StatusActive  UserStatus = "active"
	StatusBlocked UserStatus = "blocked"
)

// Valid reports whether s is one of the two known statuses.
func (s UserStatus) Valid() bool {
	return s == StatusActive || s == StatusBlocked
}

// ParseUserStatus converts a raw value into a UserStatus.
func ParseUserStatus(raw string) (UserStatus, error) {
	s := UserStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// User is the persisted account record.
type User struct {
	ID    uuid.UUID `json:"id" example:"d290f1ee-6c54-4b01-90e6-d701748f0851"`
	Name  string    `json:"name" example:"Alice"`
	Email string    `json:"email" example:"alice@example.com"`
	// PasswordHash is never serialised.
	PasswordHash string     `json:"-"`
	Status       UserStatus `json:"status" example:"active"`
	// LastLoginAt stays nil until the first successful login.
	LastLoginAt  *time.Time `json:"last_login_at"`
	RegisteredAt time.Time  `json:"registered_at"`
}

// IsBlocked reports whether the account is barred from authenticating.
func (u *User) IsBlocked() bool {
	return u.Status == StatusBlocked
}

// Public returns the subset of the user that is safe to hand back after register/login.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// PublicUser is returned alongside a freshly issued token.
type PublicUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// CreateUserParams holds the columns written when an account is registered.
type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
}

// UpdateStatusRequest is the body of PUT /users/status.
type UpdateStatusRequest struct {
	UserIDs []string `json:"userIds" validate:"required,min=1,dive,uuid" example:"d290f1ee-6c54-4b01-90e6-d701748f0851"`
	Status  string   `json:"status" validate:"required,oneof=active blocked" example:"blocked"`
}

// DeleteUsersRequest is the body of DELETE /users.
type DeleteUsersRequest struct {
	UserIDs []string `json:"userIds" validate:"required,min=1,dive,uuid" example:"d290f1ee-6c54-4b01-90e6-d701748f0851"`
}

// BulkActionResponse confirms a moderation action.
type BulkActionResponse struct {
	Success  bool   `json:"success" example:"true"`
	Message  string `json:"message" example:"Users blocked successfully"`
	Affected int64  `json:"affected" example:"2"`
}
