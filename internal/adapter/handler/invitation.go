package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mealmeet-team/mealmeet/errors"
	invitationDTO "github.com/mealmeet-team/mealmeet/internal/adapter/dto/invitation"
	"github.com/mealmeet-team/mealmeet/internal/adapter/presenter"
	"github.com/mealmeet-team/mealmeet/internal/domain/entities"
	invitationUsecase "github.com/mealmeet-team/mealmeet/internal/usecase/invitation"
)

// Invitation handles invitation-related HTTP requests
type Invitation struct {
	invitationService *invitationUsecase.Service
	joinService       *invitationUsecase.JoinService
	editService       *invitationUsecase.EditService
	cancelService     *invitationUsecase.CancelService
}

// NewInvitationHandler creates a new invitation handler
func NewInvitationHandler(
	invitationService *invitationUsecase.Service,
	joinService *invitationUsecase.JoinService,
	editService *invitationUsecase.EditService,
	cancelService *invitationUsecase.CancelService,
) *Invitation {
	return &Invitation{
		invitationService: invitationService,
		joinService:       joinService,
		editService:       editService,
		cancelService:     cancelService,
	}
}

// Create handles POST /invitations
// @Summary      Create a new invitation
// @Description  Creates a meal invitation after the penalty and daily-limit gates pass
// @Tags         Invitations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      invitation.CreateInvitationRequest  true  "Invitation creation request"
// @Success      201      {object}  invitation.InvitationResponse  "Invitation created"
// @Failure      400      {object}  errors.AppError  "Invalid request"
// @Failure      403      {object}  errors.AppError  "Account restricted"
// @Failure      409      {object}  errors.AppError  "Active invitation already exists"
// @Router       /invitations [post]
func (h *Invitation) Create(c echo.Context) error {
	var req invitationDTO.CreateInvitationRequest
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

	input := invitationUsecase.CreateInput{
		AuthorID:         userID,
		Title:            req.Title,
		Description:      req.Description,
		Date:             parseDateOnly(req.Date),
		Time:             req.Time,
		MinDate:          req.MinDate,
		MaxDate:          req.MaxDate,
		GuestsNeeded:     req.GuestsNeeded,
		Privacy:          entities.Privacy(req.Privacy),
		GenderPreference: entities.GenderPreference(req.GenderPreference),
		AgeGroups:        req.AgeGroups,
		Location:         req.Location,
		Lat:              req.Lat,
		Lng:              req.Lng,
		Draft:            req.Draft,
	}

	for _, raw := range req.InvitedUserIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			appErr := errors.ErrInvalidArgument("invited_user_ids must be valid UUIDs")
			return c.JSON(appErr.HTTPCode, appErr)
		}
		input.InvitedUserIDs = append(input.InvitedUserIDs, id)
	}
	if req.VenueID != nil {
		id, err := uuid.Parse(*req.VenueID)
		if err != nil {
			appErr := errors.ErrInvalidArgument("venue_id must be a valid UUID")
			return c.JSON(appErr.HTTPCode, appErr)
		}
		input.VenueID = &id
	}

	inv, err := h.invitationService.Create(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, presenter.ToInvitationResponse(inv))
}

// Get handles GET /invitations/:id
// @Summary      Get invitation details
// @Tags         Invitations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invitation ID (UUID)"
// @Success      200  {object}  invitation.InvitationResponse  "Invitation details"
// @Failure      404  {object}  errors.AppError  "Invitation not found"
// @Router       /invitations/{id} [get]
func (h *Invitation) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		appErr := errors.ErrInvalidArgument("invitation ID must be a valid UUID")
		return c.JSON(appErr.HTTPCode, appErr)
	}

	inv, err := h.invitationService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToInvitationResponse(inv))
}

// List handles GET /invitations
// @Summary      List invitations
// @Tags         Invitations
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int     false  "Page number (default: 1)"
// @Param        page_size  query     int     false  "Items per page (default: 20)"
// @Param        author_id  query     string  false  "Filter by author"
// @Param        privacy    query     string  false  "Privacy filter (public/followers/private)"
// @Param        status     query     string  false  "Status filter (draft/published/completed)"
// @Param        search     query     string  false  "Search in title and location"
// @Success      200        {object}  invitation.InvitationListResponse  "List of invitations"
// @Router       /invitations [get]
func (h *Invitation) List(c echo.Context) error {
	var req invitationDTO.ListInvitationsRequest
	if err := c.Bind(&req); err != nil {
		return respondBindError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondBindError(c, err)
	}

	filters := buildFilters(&req)
	invs, total, err := h.invitationService.List(c.Request().Context(), filters)
	if err != nil {
		return respondError(c, err)
	}

	page := filters.Offset/filters.Limit + 1
	return c.JSON(http.StatusOK, presenter.ToInvitationListResponse(invs, total, page, filters.Limit))
}

// RequestJoin handles POST /invitations/:id/requests
// @Summary      Request to join an invitation
// @Description  Adds the acting user to the pending requests after eligibility checks
// @Tags         Invitations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invitation ID (UUID)"
// @Success      200  {object}  invitation.InvitationResponse  "Updated invitation"
// @Failure      403  {object}  errors.AppError  "Not eligible"
// @Failure      409  {object}  errors.AppError  "Already completed"
// @Router       /invitations/{id}/requests [post]
func (h *Invitation) RequestJoin(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		appErr := errors.ErrInvalidArgument("invitation ID must be a valid UUID")
		return c.JSON(appErr.HTTPCode, appErr)
	}

	userID, ok := currentUserID(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	inv, err := h.joinService.RequestToJoin(c.Request().Context(), id, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToInvitationResponse(inv))
}

// CancelRequest handles DELETE /invitations/:id/requests
// @Summary      Withdraw a join request
// @Tags         Invitations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invitation ID (UUID)"
// @Success      200  {object}  invitation.InvitationResponse  "Updated invitation"
// @Router       /invitations/{id}/requests [delete]
func (h *Invitation) CancelRequest(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		appErr := errors.ErrInvalidArgument("invitation ID must be a valid UUID")
		return c.JSON(appErr.HTTPCode, appErr)
	}

	userID, ok := currentUserID(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	inv, err := h.joinService.CancelRequest(c.Request().Context(), id, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToInvitationResponse(inv))
}

// Approve handles POST /invitations/:id/requests/:userId/approve
// @Summary      Approve a join request
// @Description  Promotes a pending requester to joined, capacity permitting
// @Tags         Invitations
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Invitation ID (UUID)"
// @Param        userId  path      string  true  "Requester user ID (UUID)"
// @Success      200     {object}  invitation.InvitationResponse  "Updated invitation"
// @Failure      403     {object}  errors.AppError  "Not the host"
// @Failure      409     {object}  errors.AppError  "Capacity exceeded"
// @Router       /invitations/{id}/requests/{userId}/approve [post]
func (h *Invitation) Approve(c echo.Context) error {
	return h.resolveRequest(c, h.joinService.ApproveUser)
}

// Reject handles POST /invitations/:id/requests/:userId/reject
// @Summary      Reject a join request
// @Tags         Invitations
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Invitation ID (UUID)"
// @Param        userId  path      string  true  "Requester user ID (UUID)"
// @Success      200     {object}  invitation.InvitationResponse  "Updated invitation"
// @Failure      403     {object}  errors.AppError  "Not the host"
// @Router       /invitations/{id}/requests/{userId}/reject [post]
func (h *Invitation) Reject(c echo.Context) error {
	return h.resolveRequest(c, h.joinService.RejectUser)
}

// UpdateGuestCount handles PATCH /invitations/:id/guest-count
// @Summary      Change invitation capacity
// @Description  Raises or lowers guests needed; never below the joined count
// @Tags         Invitations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Invitation ID (UUID)"
// @Param        request  body      invitation.UpdateGuestCountRequest  true  "New guest count"
// @Success      200      {object}  invitation.InvitationResponse  "Updated invitation"
// @Failure      400      {object}  errors.AppError  "Guest count below joined guests"
// @Router       /invitations/{id}/guest-count [patch]
func (h *Invitation) UpdateGuestCount(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		appErr := errors.ErrInvalidArgument("invitation ID must be a valid UUID")
		return c.JSON(appErr.HTTPCode, appErr)
	}

	var req invitationDTO.UpdateGuestCountRequest
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

	inv, err := h.joinService.UpdateGuestCount(c.Request().Context(), id, req.GuestsNeeded, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToInvitationResponse(inv))
}

// UpdateSchedule handles PATCH /invitations/:id/schedule
// @Summary      Change invitation date or time
// @Description  Moves the schedule and demotes every joined guest back to pending re-approval
// @Tags         Invitations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Invitation ID (UUID)"
// @Param        request  body      invitation.UpdateScheduleRequest  true  "New date and time"
// @Success      200      {object}  invitation.InvitationResponse  "Updated invitation"
// @Failure      403      {object}  errors.AppError  "Not the host"
// @Failure      409      {object}  errors.AppError  "Already completed"
// @Router       /invitations/{id}/schedule [patch]
func (h *Invitation) UpdateSchedule(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		appErr := errors.ErrInvalidArgument("invitation ID must be a valid UUID")
		return c.JSON(appErr.HTTPCode, appErr)
	}

	var req invitationDTO.UpdateScheduleRequest
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

	inv, err := h.editService.UpdateDateTime(c.Request().Context(), id, parseDateOnly(req.Date), req.Time, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToInvitationResponse(inv))
}

// Cancel handles DELETE /invitations/:id
// @Summary      Cancel an invitation
// @Description  Records the cancellation for penalty evaluation, notifies participants and venue, purges chat history, deletes the invitation
// @Tags         Invitations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Invitation ID (UUID)"
// @Param        request  body      invitation.CancelInvitationRequest  true  "Cancellation reason"
// @Success      200      {object}  invitation.CancelInvitationResponse  "Cancellation summary"
// @Failure      400      {object}  errors.AppError  "Invalid or missing reason"
// @Failure      403      {object}  errors.AppError  "Not the host"
// @Router       /invitations/{id} [delete]
func (h *Invitation) Cancel(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		appErr := errors.ErrInvalidArgument("invitation ID must be a valid UUID")
		return c.JSON(appErr.HTTPCode, appErr)
	}

	var req invitationDTO.CancelInvitationRequest
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

	summary, err := h.cancelService.Cancel(c.Request().Context(), id, entities.CancellationReason(req.Reason), req.CustomReason, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToCancelResponse(summary))
}

// resolveRequest is the shared shape of approve/reject: both take the
// invitation ID and the requester's user ID from the path.
func (h *Invitation) resolveRequest(c echo.Context, fn func(ctx context.Context, invitationID, userID, actingUserID uuid.UUID) (*entities.Invitation, error)) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		appErr := errors.ErrInvalidArgument("invitation ID must be a valid UUID")
		return c.JSON(appErr.HTTPCode, appErr)
	}
	targetID, err := parseIDParam(c, "userId")
	if err != nil {
		appErr := errors.ErrInvalidArgument("user ID must be a valid UUID")
		return c.JSON(appErr.HTTPCode, appErr)
	}

	actingID, ok := currentUserID(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	inv, err := fn(c.Request().Context(), id, targetID, actingID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToInvitationResponse(inv))
}
