package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized is returned when the caller's role or ownership does not
	// permit the requested operation.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConflict is returned when a unique constraint would be violated,
	// e.g. registering a username that is already taken.
	ErrConflict = errors.New("already exists")

	// ErrValidation is returned when input fails shape or range checks.
	// Callers wrap it with a description of the offending field.
	ErrValidation = errors.New("invalid input")

	// ErrInvalidCredentials is returned on a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// InsufficientStockError is returned when a reservation cannot be satisfied
// by the current inventory. It carries the counts so handlers can surface
// them to the volunteer.
type InsufficientStockError struct {
	Item      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: available %d, requested %d", e.Item, e.Available, e.Requested)
}

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Message string `json:"message"`
}
