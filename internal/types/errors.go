package types

import (
	"errors"
	"strings"
)

var (
	ErrNotFound        = errors.New("requested item not found")
	ErrConflict        = errors.New("item already exists or conflict")
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidToken    = errors.New("invalid token")
	ErrAccessDenied    = errors.New("access denied")

	ErrInvalidCredentials          = errors.New("invalid credentials")
	ErrInvalidCredentialsOrBlocked = errors.New("invalid credentials or account blocked")

	ErrValidation     = errors.New("validation failed")
	ErrEmptySelection = errors.New("at least one user id is required")
	ErrInvalidStatus  = errors.New("status must be one of: active, blocked")
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field" example:"password"`
	Message string `json:"message" example:"Password must be at least 8 characters long"`
}

// ValidationErrors collects every field problem found in a request.
// It matches ErrValidation under errors.Is.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Fields returns the names of the invalid fields in order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for _, fe := range v {
		fields = append(fields, fe.Field)
	}
	return fields
}
