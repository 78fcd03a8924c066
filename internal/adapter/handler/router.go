package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mealmeet-team/mealmeet/internal/infrastructure/http/middleware"
	"github.com/mealmeet-team/mealmeet/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	authMiddleware    *middleware.AuthMiddleware
	invitationHandler *Invitation
	journeyHandler    *Journey
	penaltyHandler    *Penalty
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	invitationHandler *Invitation,
	journeyHandler *Journey,
	penaltyHandler *Penalty,
) *Router {
	return &Router{
		cfg:               cfg,
		authMiddleware:    authMiddleware,
		invitationHandler: invitationHandler,
		journeyHandler:    journeyHandler,
		penaltyHandler:    penaltyHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group, all routes require authentication
	v1 := e.Group("/v1", rt.authMiddleware.Authenticate)

	rt.setupInvitationRoutes(v1)
	rt.setupUserRoutes(v1)
}

// setupInvitationRoutes configures invitation lifecycle routes
func (rt *Router) setupInvitationRoutes(g *echo.Group) {
	invitations := g.Group("/invitations")

	invitations.POST("", rt.invitationHandler.Create)
	invitations.GET("", rt.invitationHandler.List)
	invitations.GET("/:id", rt.invitationHandler.Get)
	invitations.DELETE("/:id", rt.invitationHandler.Cancel)

	// Join requests
	invitations.POST("/:id/requests", rt.invitationHandler.RequestJoin)
	invitations.DELETE("/:id/requests", rt.invitationHandler.CancelRequest)
	invitations.POST("/:id/requests/:userId/approve", rt.invitationHandler.Approve)
	invitations.POST("/:id/requests/:userId/reject", rt.invitationHandler.Reject)

	// Host edits
	invitations.PATCH("/:id/guest-count", rt.invitationHandler.UpdateGuestCount)
	invitations.PATCH("/:id/schedule", rt.invitationHandler.UpdateSchedule)

	// Journey and completion
	invitations.POST("/:id/journey", rt.journeyHandler.UpdateStatus)
	invitations.GET("/:id/completion-check", rt.journeyHandler.CompletionCheck)
	invitations.POST("/:id/complete", rt.journeyHandler.Complete)
}

// setupUserRoutes configures user-scoped routes
func (rt *Router) setupUserRoutes(g *echo.Group) {
	users := g.Group("/users")

	users.GET("/me/penalty", rt.penaltyHandler.GetMine)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
