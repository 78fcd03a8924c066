package entities

import "errors"

// Domain errors
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidEmail = errors.New("invalid email")

	// Invitation errors
	ErrInvalidGuestCount   = errors.New("guests needed must be at least 1")
	ErrInvalidDate         = errors.New("invalid invitation date")
	ErrInvalidTime         = errors.New("invalid invitation time")
	ErrInvalidPrivacy      = errors.New("invalid privacy setting")
	ErrInvalidReason       = errors.New("invalid cancellation reason")
	ErrMissingCustomReason = errors.New("custom reason required when reason is other")

	// Generic errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid request")
)
