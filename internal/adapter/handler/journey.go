package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mealmeet-team/mealmeet/errors"
	invitationDTO "github.com/mealmeet-team/mealmeet/internal/adapter/dto/invitation"
	"github.com/mealmeet-team/mealmeet/internal/adapter/presenter"
	"github.com/mealmeet-team/mealmeet/internal/domain/entities"
	invitationUsecase "github.com/mealmeet-team/mealmeet/internal/usecase/invitation"
)

// Journey handles journey-status and completion HTTP requests
type Journey struct {
	completionService *invitationUsecase.CompletionService
	invitationService *invitationUsecase.Service
}

// NewJourneyHandler creates a new journey handler
func NewJourneyHandler(
	completionService *invitationUsecase.CompletionService,
	invitationService *invitationUsecase.Service,
) *Journey {
	return &Journey{
		completionService: completionService,
		invitationService: invitationService,
	}
}

// UpdateStatus handles POST /invitations/:id/journey
// @Summary      Update own journey status
// @Description  Advances the acting user's journey status; only forward moves are allowed
// @Tags         Journey
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Invitation ID (UUID)"
// @Param        request  body      invitation.UpdateJourneyStatusRequest  true  "New journey status"
// @Success      200      {object}  invitation.InvitationResponse  "Updated invitation"
// @Failure      400      {object}  errors.AppError  "Backward or invalid transition"
// @Failure      403      {object}  errors.AppError  "Not a participant"
// @Router       /invitations/{id}/journey [post]
func (h *Journey) UpdateStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		appErr := errors.ErrInvalidArgument("invitation ID must be a valid UUID")
		return c.JSON(appErr.HTTPCode, appErr)
	}

	var req invitationDTO.UpdateJourneyStatusRequest
	if err := c.Bind(&req); err != nil {
		return respondBindError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondBindError(c, err)
	}

	userID, ok := currentUserID(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	inv, err := h.completionService.UpdateJourneyStatus(c.Request().Context(), id, userID, entities.JourneyStatus(req.Status))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToInvitationResponse(inv))
}

// CompletionCheck handles GET /invitations/:id/completion-check
// @Summary      Check completion preconditions
// @Description  Reports whether the acting user could complete the meeting right now, with one reason per failed check
// @Tags         Journey
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invitation ID (UUID)"
// @Success      200  {object}  invitation.CompletionCheckResponse  "Check result"
// @Failure      404  {object}  errors.AppError  "Invitation not found"
// @Router       /invitations/{id}/completion-check [get]
func (h *Journey) CompletionCheck(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		appErr := errors.ErrInvalidArgument("invitation ID must be a valid UUID")
		return c.JSON(appErr.HTTPCode, appErr)
	}

	userID, ok := currentUserID(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	inv, err := h.invitationService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	check := h.completionService.CanComplete(inv, userID)
	return c.JSON(http.StatusOK, invitationDTO.CompletionCheckResponse{
		Allowed: check.Allowed,
		Reasons: check.Reasons,
	})
}

// Complete handles POST /invitations/:id/complete
// @Summary      Complete a meeting
// @Description  Location-gated terminal transition; the host must be within the allowed radius of the venue
// @Tags         Journey
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Invitation ID (UUID)"
// @Param        request  body      invitation.CompleteInvitationRequest  false  "Client-reported position fallback"
// @Success      200      {object}  invitation.InvitationResponse  "Completed invitation"
// @Failure      403      {object}  errors.AppError  "Not the host"
// @Failure      409      {object}  errors.AppError  "Too far from venue or already completed"
// @Router       /invitations/{id}/complete [post]
func (h *Journey) Complete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		appErr := errors.ErrInvalidArgument("invitation ID must be a valid UUID")
		return c.JSON(appErr.HTTPCode, appErr)
	}

	var req invitationDTO.CompleteInvitationRequest
	if err := c.Bind(&req); err != nil {
		return respondBindError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondBindError(c, err)
	}

	userID, ok := currentUserID(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	var fallback *invitationUsecase.Position
	if req.Lat != nil && req.Lng != nil {
		fallback = &invitationUsecase.Position{Lat: *req.Lat, Lng: *req.Lng}
	}

	inv, err := h.completionService.Complete(c.Request().Context(), id, userID, fallback)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToInvitationResponse(inv))
}
