package usecase

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionInvalid     = errors.New("session invalid or expired")
	ErrNoSession          = errors.New("no session in context")
	ErrBookingNotFound    = errors.New("booking not found")
)
