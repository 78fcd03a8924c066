package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	invitationDTO "github.com/mealmeet-team/mealmeet/internal/adapter/dto/invitation"
	penaltyUsecase "github.com/mealmeet-team/mealmeet/internal/usecase/penalty"
)

// Penalty handles penalty-state HTTP requests
type Penalty struct {
	penaltyService *penaltyUsecase.Service
}

// NewPenaltyHandler creates a new penalty handler
func NewPenaltyHandler(penaltyService *penaltyUsecase.Service) *Penalty {
	return &Penalty{penaltyService: penaltyService}
}

// GetMine handles GET /users/me/penalty
// @Summary      Get own penalty state
// @Description  Returns the acting user's current penalty tier, restriction window, and icon
// @Tags         Penalty
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  invitation.PenaltyResponse  "Current penalty state"
// @Failure      503  {object}  errors.AppError  "Penalty store unavailable"
// @Router       /users/me/penalty [get]
func (h *Penalty) GetMine(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondUnauthenticated(c)
	}

	info, err := h.penaltyService.GetPenaltyInfo(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, invitationDTO.PenaltyResponse{
		Level:        int(info.Level),
		Icon:         info.Icon,
		DurationDays: int(info.Duration.Hours() / 24),
		Until:        info.Until,
		Reason:       info.Reason,
	})
}
