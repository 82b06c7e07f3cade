package errors

import (
	"errors"
)

// Canonical error set for the clinic core. Services and repositories wrap
// these with context; the HTTP error handler translates them to status codes
// in one place.
var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrSlotConflict       = errors.New("appointment slot already booked")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
