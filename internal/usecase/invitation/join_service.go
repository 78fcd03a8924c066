package invitation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mealmeet-team/mealmeet/internal/domain/entities"
	"github.com/mealmeet-team/mealmeet/internal/domain/repositories"
	usecaseErrors "github.com/mealmeet-team/mealmeet/internal/usecase/errors"
)

// JoinService maintains the requests/joined sets: join requests, host
// approval and rejection, and guest-count changes. Every
// check-then-mutate runs under the repository's row lock so that two
// concurrent approvals cannot both win the last slot.
type JoinService struct {
	invitationRepo repositories.InvitationRepository
	userRepo       repositories.UserRepository
	notifier       Notifier
	logger         *zap.Logger
	now            func() time.Time
}

// NewJoinService creates a new join service
func NewJoinService(
	invitationRepo repositories.InvitationRepository,
	userRepo repositories.UserRepository,
	notifier Notifier,
	logger *zap.Logger,
) *JoinService {
	return &JoinService{
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		notifier:       notifier,
		logger:         logger,
		now:            time.Now,
	}
}

// RequestToJoin records a join request. Requesting twice is a no-op;
// eligibility filters (privacy, gender, age group) reject with
// ErrNotEligible. Requests are not capacity-limited, only joined is.
func (s *JoinService) RequestToJoin(ctx context.Context, invitationID, userID uuid.UUID) (*entities.Invitation, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	var added bool
	inv, err := s.updateLocked(ctx, invitationID, func(inv *entities.Invitation) error {
		if inv.IsCompleted() {
			return usecaseErrors.ErrAlreadyCompleted
		}
		if err := checkEligibility(inv, user, s.now()); err != nil {
			return err
		}
		added = inv.AddRequest(userID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if added {
		s.sendBestEffort(ctx, inv.AuthorID, entities.Notification{
			Type:       entities.NotificationJoinRequest,
			Title:      "New join request",
			Message:    fmt.Sprintf("%s wants to join %q", user.DisplayName, inv.Title),
			ActionURL:  invitationURL(inv.ID),
			FromUserID: &userID,
		})
	}

	return inv, nil
}

// CancelRequest withdraws a pending join request. No-op if absent.
func (s *JoinService) CancelRequest(ctx context.Context, invitationID, userID uuid.UUID) (*entities.Invitation, error) {
	return s.updateLocked(ctx, invitationID, func(inv *entities.Invitation) error {
		inv.RemoveRequest(userID)
		return nil
	})
}

// ApproveUser moves userID from requests to joined. Host-only; fails
// with CapacityExceeded when the joined set is full, re-derived from
// the locked row rather than any client-cached count.
func (s *JoinService) ApproveUser(ctx context.Context, invitationID, userID, actingUserID uuid.UUID) (*entities.Invitation, error) {
	inv, err := s.updateLocked(ctx, invitationID, func(inv *entities.Invitation) error {
		if !inv.IsHost(actingUserID) {
			return usecaseErrors.ErrNotHost
		}
		if !inv.HasRequested(userID) {
			return usecaseErrors.ErrNotParticipant
		}
		if inv.IsFull() {
			return usecaseErrors.ErrCapacityExceeded
		}
		inv.PromoteToJoined(userID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sendBestEffort(ctx, userID, entities.Notification{
		Type:       entities.NotificationRequestApproved,
		Title:      "Request approved",
		Message:    fmt.Sprintf("You're in! See you at %s", inv.Location),
		ActionURL:  invitationURL(inv.ID),
		FromUserID: &actingUserID,
	})

	if inv.IsFull() {
		s.notifyGroupFull(ctx, inv)
	}

	return inv, nil
}

// RejectUser removes userID from the request set. Host-only.
func (s *JoinService) RejectUser(ctx context.Context, invitationID, userID, actingUserID uuid.UUID) (*entities.Invitation, error) {
	inv, err := s.updateLocked(ctx, invitationID, func(inv *entities.Invitation) error {
		if !inv.IsHost(actingUserID) {
			return usecaseErrors.ErrNotHost
		}
		inv.RemoveRequest(userID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sendBestEffort(ctx, userID, entities.Notification{
		Type:       entities.NotificationRequestRejected,
		Title:      "Request declined",
		Message:    fmt.Sprintf("Your request to join %q was declined", inv.Title),
		FromUserID: &actingUserID,
	})

	return inv, nil
}

// UpdateGuestCount changes capacity. Host-only; fails with
// InvalidCapacity when the new count is below the current joined size.
// When the change makes the group full, every joined member is told.
func (s *JoinService) UpdateGuestCount(ctx context.Context, invitationID uuid.UUID, newCount int, actingUserID uuid.UUID) (*entities.Invitation, error) {
	if newCount < 1 {
		return nil, entities.ErrInvalidGuestCount
	}

	var becameFull bool
	inv, err := s.updateLocked(ctx, invitationID, func(inv *entities.Invitation) error {
		if !inv.IsHost(actingUserID) {
			return usecaseErrors.ErrNotHost
		}
		if newCount < len(inv.Joined) {
			return usecaseErrors.ErrInvalidCapacity
		}
		wasFull := inv.IsFull()
		inv.GuestsNeeded = newCount
		becameFull = !wasFull && inv.IsFull()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if becameFull {
		s.notifyGroupFull(ctx, inv)
	}

	return inv, nil
}

func (s *JoinService) notifyGroupFull(ctx context.Context, inv *entities.Invitation) {
	delivered := s.notifier.Fanout(ctx, inv.Joined, entities.Notification{
		Type:      entities.NotificationGroupFull,
		Title:     "The table is set",
		Message:   fmt.Sprintf("%q is now full, see you there!", inv.Title),
		ActionURL: invitationURL(inv.ID),
	})
	s.logger.Info("group full notification sent",
		zap.String("invitation_id", inv.ID.String()),
		zap.Int("delivered", delivered),
		zap.Int("recipients", len(inv.Joined)),
	)
}

func (s *JoinService) sendBestEffort(ctx context.Context, userID uuid.UUID, n entities.Notification) {
	if err := s.notifier.Send(ctx, userID, n); err != nil {
		s.logger.Warn("notification send failed",
			zap.String("user_id", userID.String()),
			zap.String("type", string(n.Type)),
			zap.Error(err),
		)
	}
}

func (s *JoinService) updateLocked(ctx context.Context, invitationID uuid.UUID, fn func(*entities.Invitation) error) (*entities.Invitation, error) {
	inv, err := s.invitationRepo.UpdateLocked(ctx, invitationID, fn)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrInvitationNotFound
		}
		return nil, err
	}
	return inv, nil
}

func invitationURL(id uuid.UUID) string {
	return "/invitations/" + id.String()
}
