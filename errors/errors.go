package errors

import (
	"fmt"
	"net/http"
)

// AppError is the custom error type returned at the API boundary
type AppError struct {
	Raw      error             `json:"-"`
	HTTPCode int               `json:"-"`
	Code     ErrorCode         `json:"code"`
	Message  string            `json:"message"`
	Details  map[string]string `json:"details,omitempty"`
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	}
}

// Invitation Errors
func ErrInvitationNotFound(invitationID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_INVITATION_NOT_FOUND,
		Message:  "Invitation not found",
	}.WithDetail("invitation_id", invitationID)
}

func ErrNotHost() AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_NOT_HOST,
		Message:  "Only the host may perform this action",
	}
}

func ErrNotEligible() AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_NOT_ELIGIBLE,
		Message:  "You are not eligible to join this invitation",
	}
}

func ErrNotParticipant() AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_PERMISSION_DENIED,
		Message:  "User is not a participant of this invitation",
	}
}

func ErrCapacityExceeded(guestsNeeded int) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_CAPACITY_EXCEEDED,
		Message:  "The invitation is already full",
	}.WithDetail("guests_needed", fmt.Sprintf("%d", guestsNeeded))
}

func ErrInvalidCapacity(joined int) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_CAPACITY,
		Message:  "Guest count cannot be below the number of joined guests",
	}.WithDetail("joined", fmt.Sprintf("%d", joined))
}

func ErrInvalidTransition(current, requested string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_TRANSITION,
		Message:  "Journey status may only move forward",
	}.WithDetail("current", current).
		WithDetail("requested", requested)
}

func ErrAlreadyCompleted(invitationID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_ALREADY_COMPLETED,
		Message:  "Invitation is already completed",
	}.WithDetail("invitation_id", invitationID)
}

// Completion Errors
func ErrLocationTooFar(distanceMeters, maxMeters float64) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_LOCATION_TOO_FAR,
		Message:  "You are too far from the venue to complete this meal",
	}.WithDetail("distance_m", fmt.Sprintf("%.0f", distanceMeters)).
		WithDetail("max_distance_m", fmt.Sprintf("%.0f", maxMeters))
}

func ErrLocationPermissionDenied() AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_LOCATION_PERMISSION_DENIED,
		Message:  "Location permission denied, enable location access and retry",
	}
}

func ErrLocationUnavailable() AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_LOCATION_UNAVAILABLE,
		Message:  "Could not determine your location, try again",
	}
}

// Creation Gate Errors
func ErrDailyLimitExceeded(conflictingID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_DAILY_LIMIT_EXCEEDED,
		Message:  "You already have an active invitation",
	}.WithDetail("conflicting_invitation_id", conflictingID)
}

func ErrAccountRestricted(until string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_ACCOUNT_RESTRICTED,
		Message:  "Your account is restricted from creating invitations",
	}.WithDetail("until", until)
}

func ErrStoreUnavailable(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_STORE_UNAVAILABLE,
		Message:  "Storage temporarily unavailable",
	}
}
