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
	"github.com/mealmeet-team/mealmeet/pkg/geo"
)

// LocationTooFarError carries the measured distance so the caller can
// tell the host how far off they are.
type LocationTooFarError struct {
	DistanceMeters float64
	MaxMeters      float64
}

func (e *LocationTooFarError) Error() string {
	return fmt.Sprintf("too far from the venue: %.0fm away, must be within %.0fm", e.DistanceMeters, e.MaxMeters)
}

// Is makes the error match ErrLocationTooFar under errors.Is
func (e *LocationTooFarError) Is(target error) bool {
	return target == usecaseErrors.ErrLocationTooFar
}

// CompletionCheck is the result of the completion preconditions, with
// one reason per failed check so the caller can render a precise
// message.
type CompletionCheck struct {
	Allowed bool     `json:"allowed"`
	Reasons []string `json:"reasons,omitempty"`
}

// CompletionService drives the per-participant journey state machine
// and the location-gated terminal transition.
type CompletionService struct {
	invitationRepo    repositories.InvitationRepository
	locator           Locator
	notifier          Notifier
	maxDistanceMeters float64
	locationTimeout   time.Duration
	logger            *zap.Logger
	now               func() time.Time
}

// NewCompletionService creates a new completion service
func NewCompletionService(
	invitationRepo repositories.InvitationRepository,
	locator Locator,
	notifier Notifier,
	maxDistanceMeters float64,
	locationTimeout time.Duration,
	logger *zap.Logger,
) *CompletionService {
	return &CompletionService{
		invitationRepo:    invitationRepo,
		locator:           locator,
		notifier:          notifier,
		maxDistanceMeters: maxDistanceMeters,
		locationTimeout:   locationTimeout,
		logger:            logger,
		now:               time.Now,
	}
}

// UpdateJourneyStatus advances the acting user's own journey status.
// Only strictly forward moves are allowed; anything else fails with
// InvalidTransition.
func (s *CompletionService) UpdateJourneyStatus(ctx context.Context, invitationID, userID uuid.UUID, newStatus entities.JourneyStatus) (*entities.Invitation, error) {
	if !entities.IsValidJourneyStatus(newStatus) {
		return nil, usecaseErrors.ErrInvalidTransition
	}

	inv, err := s.invitationRepo.UpdateLocked(ctx, invitationID, func(inv *entities.Invitation) error {
		if !inv.HasJoined(userID) && !inv.IsHost(userID) {
			return usecaseErrors.ErrNotParticipant
		}
		current := inv.JourneyStatusOf(userID)
		if !entities.CanAdvance(current, newStatus) {
			return usecaseErrors.ErrInvalidTransition
		}
		inv.SetJourneyStatus(userID, newStatus)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrInvitationNotFound
		}
		return nil, err
	}
	return inv, nil
}

// CanComplete checks the completion preconditions: acting user is the
// host, at least one guest joined, venue coordinates are present, and
// the meeting is not already completed.
func (s *CompletionService) CanComplete(inv *entities.Invitation, actingUserID uuid.UUID) CompletionCheck {
	var reasons []string
	if !inv.IsHost(actingUserID) {
		reasons = append(reasons, usecaseErrors.ErrNotHost.Error())
	}
	if len(inv.Joined) == 0 {
		reasons = append(reasons, usecaseErrors.ErrNoJoinedParticipants.Error())
	}
	if !inv.HasCoordinates() {
		reasons = append(reasons, usecaseErrors.ErrMissingCoordinates.Error())
	}
	if inv.IsCompleted() {
		reasons = append(reasons, usecaseErrors.ErrAlreadyCompleted.Error())
	}
	return CompletionCheck{Allowed: len(reasons) == 0, Reasons: reasons}
}

// Complete performs the location-gated terminal transition. The
// preconditions are re-run against the locked row, the host's device
// position is acquired within the location timeout, and the transition
// commits only when the host is within the allowed radius. No partial
// state change occurs on any failure path.
//
// fallback is the position reported by the client, used only when the
// location provider cannot produce a fix of its own.
func (s *CompletionService) Complete(ctx context.Context, invitationID, actingUserID uuid.UUID, fallback *Position) (*entities.Invitation, error) {
	current, err := s.invitationRepo.FindByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	if check := s.CanComplete(current, actingUserID); !check.Allowed {
		return nil, completionError(check)
	}

	locCtx, cancel := context.WithTimeout(ctx, s.locationTimeout)
	defer cancel()
	pos, err := s.locator.CurrentPosition(locCtx, actingUserID)
	if err != nil {
		if fallback == nil || errors.Is(err, usecaseErrors.ErrLocationPermissionDenied) {
			return nil, err
		}
		s.logger.Warn("location provider failed, using client-reported position",
			zap.String("user_id", actingUserID.String()),
			zap.Error(err),
		)
		pos = fallback
	}

	distance := geo.Distance(pos.Lat, pos.Lng, *current.Lat, *current.Lng)
	if distance > s.maxDistanceMeters {
		s.logger.Info("completion refused, host too far",
			zap.String("invitation_id", invitationID.String()),
			zap.Float64("distance_m", distance),
			zap.Float64("max_m", s.maxDistanceMeters),
		)
		return nil, &LocationTooFarError{DistanceMeters: distance, MaxMeters: s.maxDistanceMeters}
	}

	inv, err := s.invitationRepo.UpdateLocked(ctx, invitationID, func(inv *entities.Invitation) error {
		// Re-check under the lock; another request may have completed
		// the meeting while the device fix was in flight.
		if check := s.CanComplete(inv, actingUserID); !check.Allowed {
			return completionError(check)
		}
		inv.Complete(actingUserID, s.now())
		inv.SetJourneyStatus(actingUserID, entities.JourneyStatusCompleted)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrInvitationNotFound
		}
		return nil, err
	}

	delivered := s.notifier.Fanout(ctx, inv.Joined, entities.Notification{
		Type:       entities.NotificationMeetingDone,
		Title:      "Meal completed",
		Message:    fmt.Sprintf("%q was completed, rate your meal!", inv.Title),
		ActionURL:  invitationURL(inv.ID),
		FromUserID: &actingUserID,
	})
	s.logger.Info("invitation completed",
		zap.String("invitation_id", inv.ID.String()),
		zap.Float64("distance_m", distance),
		zap.Int("notified", delivered),
	)

	return inv, nil
}

// completionError maps failed precondition reasons back to the most
// specific sentinel so handlers can distinguish them.
func completionError(check CompletionCheck) error {
	for _, reason := range check.Reasons {
		switch reason {
		case usecaseErrors.ErrNotHost.Error():
			return usecaseErrors.ErrNotHost
		case usecaseErrors.ErrAlreadyCompleted.Error():
			return usecaseErrors.ErrAlreadyCompleted
		case usecaseErrors.ErrNoJoinedParticipants.Error():
			return usecaseErrors.ErrNoJoinedParticipants
		case usecaseErrors.ErrMissingCoordinates.Error():
			return usecaseErrors.ErrMissingCoordinates
		}
	}
	return usecaseErrors.ErrInvalidTransition
}
