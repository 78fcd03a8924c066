package invitation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mealmeet-team/mealmeet/internal/domain/entities"
	"github.com/mealmeet-team/mealmeet/internal/domain/repositories"
	usecaseErrors "github.com/mealmeet-team/mealmeet/internal/usecase/errors"
	"github.com/mealmeet-team/mealmeet/internal/usecase/penalty"
)

// CancelSummary reports what the orchestrator managed to do. Steps
// 2-4 are best-effort; only the penalty outcome is reported verbatim
// because it affects the user-facing message.
type CancelSummary struct {
	NotifiedUsers int              `json:"notified_users"`
	VenueNotified bool             `json:"venue_notified"`
	Penalty       *penalty.Outcome `json:"penalty,omitempty"`
	PenaltyErr    error            `json:"-"`
}

// CancelService terminates an invitation: penalty recording,
// notification fan-out, venue notification, chat purge, and finally the
// authoritative delete.
type CancelService struct {
	invitationRepo repositories.InvitationRepository
	venueRepo      repositories.VenueRepository
	penaltySvc     *penalty.Service
	notifier       Notifier
	chatPurger     ChatPurger
	logger         *zap.Logger
}

// NewCancelService creates a new cancel service
func NewCancelService(
	invitationRepo repositories.InvitationRepository,
	venueRepo repositories.VenueRepository,
	penaltySvc *penalty.Service,
	notifier Notifier,
	chatPurger ChatPurger,
	logger *zap.Logger,
) *CancelService {
	return &CancelService{
		invitationRepo: invitationRepo,
		venueRepo:      venueRepo,
		penaltySvc:     penaltySvc,
		notifier:       notifier,
		chatPurger:     chatPurger,
		logger:         logger,
	}
}

// Cancel terminates the invitation. Host-only. Each side-effect step is
// independent of its siblings' success; the final delete is
// authoritative and runs even when notifications or the chat purge
// failed. Only a failure of the delete itself aborts the operation.
func (s *CancelService) Cancel(ctx context.Context, invitationID uuid.UUID, reason entities.CancellationReason, customReason string, actingUserID uuid.UUID) (*CancelSummary, error) {
	if !entities.IsValidCancellationReason(reason) {
		return nil, entities.ErrInvalidReason
	}
	if reason == entities.ReasonOther && customReason == "" {
		return nil, entities.ErrMissingCustomReason
	}

	inv, err := s.invitationRepo.FindByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	if !inv.IsHost(actingUserID) {
		return nil, usecaseErrors.ErrNotHost
	}

	reasonText := entities.ResolveReasonText(reason, customReason)
	summary := &CancelSummary{}

	// Step 1: penalty recording. Its outcome, including failure, is
	// reported back verbatim.
	outcome, err := s.penaltySvc.RecordCancellation(ctx, inv, reason, customReason)
	if err != nil {
		s.logger.Error("penalty recording failed",
			zap.String("invitation_id", invitationID.String()),
			zap.Error(err),
		)
		summary.PenaltyErr = err
	} else {
		summary.Penalty = outcome
	}

	// Step 2: notify everyone who requested or joined.
	recipients := inv.RecipientIDs()
	if len(recipients) > 0 {
		summary.NotifiedUsers = s.notifier.Fanout(ctx, recipients, entities.Notification{
			Type:       entities.NotificationCancelled,
			Title:      "Invitation cancelled",
			Message:    fmt.Sprintf("%q was cancelled: %s", inv.Title, reasonText),
			FromUserID: &actingUserID,
			Metadata:   map[string]string{"reason": reasonText},
		})
	}

	// Step 3: notify the linked venue's account, if any.
	if inv.VenueID != nil {
		summary.VenueNotified = s.notifyVenue(ctx, inv, reasonText, actingUserID)
	}

	// Step 4: best-effort chat purge.
	if err := s.chatPurger.DeleteHistory(ctx, inv.ID); err != nil {
		s.logger.Warn("chat history purge failed",
			zap.String("invitation_id", inv.ID.String()),
			zap.Error(err),
		)
	}

	// Step 5: the authoritative delete. Must run regardless of steps
	// 1-4; its failure is the only fatal one.
	if err := s.invitationRepo.Delete(ctx, inv.ID); err != nil {
		return summary, fmt.Errorf("failed to delete invitation: %w", err)
	}

	s.logger.Info("invitation cancelled",
		zap.String("invitation_id", inv.ID.String()),
		zap.String("reason", string(reason)),
		zap.Int("notified_users", summary.NotifiedUsers),
		zap.Bool("venue_notified", summary.VenueNotified),
	)

	return summary, nil
}

func (s *CancelService) notifyVenue(ctx context.Context, inv *entities.Invitation, reasonText string, actingUserID uuid.UUID) bool {
	venue, err := s.venueRepo.FindByID(ctx, *inv.VenueID)
	if err != nil {
		s.logger.Warn("venue lookup failed",
			zap.String("venue_id", inv.VenueID.String()),
			zap.Error(err),
		)
		return false
	}

	err = s.notifier.Send(ctx, venue.OwnerUserID, entities.Notification{
		Type:       entities.NotificationCancelled,
		Title:      "Reservation group cancelled",
		Message:    fmt.Sprintf("The group %q cancelled their plan at %s: %s", inv.Title, venue.Name, reasonText),
		FromUserID: &actingUserID,
	})
	if err != nil {
		s.logger.Warn("venue notification failed",
			zap.String("venue_id", venue.ID.String()),
			zap.Error(err),
		)
		return false
	}
	return true
}
