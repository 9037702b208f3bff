package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	ErrSweetNotFound  = errors.New("sweet not found")
	ErrSweetExists    = errors.New("sweet with this name already exists")
	ErrInvalidSweetID = errors.New("invalid sweet ID format")

	ErrForbidden = errors.New("access forbidden")
)

// ValidationError carries every violated field rule from a single request,
// so callers see the full set of problems at once.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// NewValidationError builds a ValidationError from one or more rule messages.
func NewValidationError(violations ...string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// InsufficientStockError is returned when a purchase asks for more units
// than are available. Available is the exact stock level at check time.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock. Only %d items available", e.Available)
}
