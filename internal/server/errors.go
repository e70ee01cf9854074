package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrAccountDisabled indicates the account was deactivated by an admin
type ErrAccountDisabled struct{}

func (e *ErrAccountDisabled) Error() string {
	return "account is disabled"
}

// ErrNotFound indicates a referenced entity does not exist
type ErrNotFound struct {
	Kind string
	ID   uuid.UUID
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ErrForbidden indicates the caller does not own the target entity
type ErrForbidden struct {
	Message string
}

func (e *ErrForbidden) Error() string {
	if e.Message == "" {
		return "forbidden"
	}
	return e.Message
}

// ErrConflict indicates a uniqueness violation (duplicate application, email)
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	return e.Message
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrRateLimited indicates the application volume cap was hit
type ErrRateLimited struct {
	Limit int
}

func (e *ErrRateLimited) Error() string {
	return fmt.Sprintf("application limit of %d per 24h reached", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists, *ErrConflict:
		return http.StatusConflict
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrAccountDisabled, *ErrForbidden:
		return http.StatusForbidden
	case *ErrNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
