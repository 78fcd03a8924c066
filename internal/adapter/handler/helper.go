package handler

import (
	stdErrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mealmeet-team/mealmeet/errors"
	invitationDTO "github.com/mealmeet-team/mealmeet/internal/adapter/dto/invitation"
	"github.com/mealmeet-team/mealmeet/internal/domain/entities"
	"github.com/mealmeet-team/mealmeet/internal/domain/repositories"
	usecaseErrors "github.com/mealmeet-team/mealmeet/internal/usecase/errors"
	invitationUsecase "github.com/mealmeet-team/mealmeet/internal/usecase/invitation"
	"github.com/mealmeet-team/mealmeet/internal/infrastructure/http/middleware"
)

// currentUserID reads the authenticated user from the echo context.
// The auth middleware guarantees it on protected routes.
func currentUserID(c echo.Context) (uuid.UUID, bool) {
	return middleware.GetUserID(c)
}

// respondError maps usecase errors to the API error envelope
func respondError(c echo.Context, err error) error {
	var appErr errors.AppError

	var dailyLimitErr *invitationUsecase.DailyLimitError
	var tooFarErr *invitationUsecase.LocationTooFarError

	switch {
	case stdErrors.As(err, &dailyLimitErr):
		conflictingID := ""
		if dailyLimitErr.Conflicting != nil {
			conflictingID = dailyLimitErr.Conflicting.ID.String()
		}
		appErr = errors.ErrDailyLimitExceeded(conflictingID)
	case stdErrors.As(err, &tooFarErr):
		appErr = errors.ErrLocationTooFar(tooFarErr.DistanceMeters, tooFarErr.MaxMeters)
	case stdErrors.Is(err, usecaseErrors.ErrInvitationNotFound):
		appErr = errors.ErrInvitationNotFound(c.Param("id"))
	case stdErrors.Is(err, usecaseErrors.ErrNotHost):
		appErr = errors.ErrNotHost()
	case stdErrors.Is(err, usecaseErrors.ErrNotEligible):
		appErr = errors.ErrNotEligible()
	case stdErrors.Is(err, usecaseErrors.ErrNotParticipant):
		appErr = errors.ErrNotParticipant()
	case stdErrors.Is(err, usecaseErrors.ErrCapacityExceeded):
		appErr = errors.ErrCapacityExceeded(0)
	case stdErrors.Is(err, usecaseErrors.ErrInvalidCapacity):
		appErr = errors.ErrInvalidCapacity(0)
	case stdErrors.Is(err, usecaseErrors.ErrAlreadyCompleted):
		appErr = errors.ErrAlreadyCompleted(c.Param("id"))
	case stdErrors.Is(err, usecaseErrors.ErrInvalidTransition):
		appErr = errors.ErrInvalidTransition("", "")
	case stdErrors.Is(err, usecaseErrors.ErrLocationPermissionDenied):
		appErr = errors.ErrLocationPermissionDenied()
	case stdErrors.Is(err, usecaseErrors.ErrLocationUnavailable):
		appErr = errors.ErrLocationUnavailable()
	case stdErrors.Is(err, usecaseErrors.ErrNoJoinedParticipants):
		appErr = errors.ErrInvalidArgument("invitation has no joined guests to complete with")
	case stdErrors.Is(err, usecaseErrors.ErrMissingCoordinates):
		appErr = errors.ErrInvalidArgument("invitation has no venue coordinates")
	case stdErrors.Is(err, usecaseErrors.ErrAccountRestricted):
		appErr = errors.ErrAccountRestricted("")
	case stdErrors.Is(err, usecaseErrors.ErrStoreUnavailable):
		appErr = errors.ErrStoreUnavailable(err)
	case stdErrors.Is(err, entities.ErrInvalidGuestCount):
		appErr = errors.ErrInvalidArgument("guests_needed must be at least 1")
	case stdErrors.Is(err, entities.ErrInvalidReason):
		appErr = errors.ErrInvalidArgument("unknown cancellation reason")
	case stdErrors.Is(err, entities.ErrMissingCustomReason):
		appErr = errors.ErrInvalidArgument("custom_reason is required when reason is other")
	default:
		appErr = errors.ErrInternal(err)
	}

	return c.JSON(appErr.HTTPCode, appErr)
}

// respondBindError reports a malformed or invalid request body
func respondBindError(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"error":   "invalid_request",
		"message": err.Error(),
	})
}

// respondUnauthenticated reports a missing authenticated user
func respondUnauthenticated(c echo.Context) error {
	appErr := errors.ErrUnauthenticated()
	return c.JSON(appErr.HTTPCode, appErr)
}

// parseIDParam parses the :id path parameter as a UUID
func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// buildFilters converts ListInvitationsRequest to repository filters
func buildFilters(req *invitationDTO.ListInvitationsRequest) repositories.InvitationFilters {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	filters := repositories.InvitationFilters{
		Search: req.Search,
		Limit:  req.PageSize,
		Offset: (req.Page - 1) * req.PageSize,
	}

	if req.AuthorID != nil {
		if id, err := uuid.Parse(*req.AuthorID); err == nil {
			filters.AuthorID = &id
		}
	}
	if req.Privacy != nil {
		p := entities.Privacy(*req.Privacy)
		filters.Privacy = &p
	}
	if req.Status != nil {
		s := entities.InvitationStatus(*req.Status)
		filters.Status = &s
	}

	return filters
}

// parseDateOnly normalizes a bound timestamp to its calendar date in UTC
func parseDateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
