package errors

import "errors"

// Common errors
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden access")
	ErrNotFound        = errors.New("resource not found")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Invitation errors
var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrNotHost            = errors.New("user is not the host")
	ErrNotEligible        = errors.New("user is not eligible to join this invitation")
	ErrCapacityExceeded   = errors.New("invitation is already at guest capacity")
	ErrInvalidCapacity    = errors.New("guest count cannot be below the number of joined guests")
	ErrAlreadyCompleted   = errors.New("invitation is already completed")
	ErrDailyLimitExceeded = errors.New("an active invitation already exists for this day")
	ErrAccountRestricted  = errors.New("account is restricted from creating invitations")
)

// Journey errors
var (
	ErrInvalidTransition = errors.New("invalid journey status transition")
	ErrNotParticipant    = errors.New("user is not a participant of this invitation")
)

// Completion errors
var (
	ErrLocationTooFar           = errors.New("too far from the venue to complete")
	ErrLocationPermissionDenied = errors.New("location permission denied")
	ErrLocationUnavailable      = errors.New("location unavailable")
	ErrNoJoinedParticipants     = errors.New("no joined participants")
	ErrMissingCoordinates       = errors.New("invitation has no venue coordinates")
)
