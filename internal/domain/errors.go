package domain

import "errors"

// Business-rule errors shared by services and repositories. Handlers map
// these to HTTP status codes with errors.Is.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidState       = errors.New("operation not allowed in current state")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
