package penalty

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mealmeet-team/mealmeet/internal/domain/entities"
	"github.com/mealmeet-team/mealmeet/internal/domain/repositories"
	usecaseErrors "github.com/mealmeet-team/mealmeet/internal/usecase/errors"
)

// Cache is the key-value store fronting penalty reads. Both the Redis
// client and the in-memory store satisfy it.
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string, expiration time.Duration)
	Delete(key string)
}

// Service implements the penalty policy: a rolling count of non-exempt
// cancellations maps to an escalating tier, persisted so the creation
// gate can enforce it.
type Service struct {
	cancellationRepo repositories.CancellationRepository
	penaltyRepo      repositories.PenaltyRepository
	cache            Cache
	cacheTTL         time.Duration
	graceWindow      time.Duration
	logger           *zap.Logger
	now              func() time.Time
}

// NewService creates a new penalty service
func NewService(
	cancellationRepo repositories.CancellationRepository,
	penaltyRepo repositories.PenaltyRepository,
	cache Cache,
	cacheTTL time.Duration,
	graceWindow time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		cancellationRepo: cancellationRepo,
		penaltyRepo:      penaltyRepo,
		cache:            cache,
		cacheTTL:         cacheTTL,
		graceWindow:      graceWindow,
		logger:           logger,
		now:              time.Now,
	}
}

// Outcome describes the penalty applied by one recorded cancellation
type Outcome struct {
	Level    entities.PenaltyLevel `json:"level"`
	Duration time.Duration         `json:"duration"`
	Until    *time.Time            `json:"until,omitempty"`
	Exempt   bool                  `json:"exempt"`
	Reason   string                `json:"reason"`
}

// Info is the read-side penalty snapshot used by the creation gate and
// the profile screen
type Info struct {
	Level    entities.PenaltyLevel `json:"level"`
	Icon     string                `json:"icon"`
	Duration time.Duration         `json:"duration"`
	Until    *time.Time            `json:"until,omitempty"`
	Reason   string                `json:"reason"`
}

// RecordCancellation evaluates exemption against the cancelled
// invitation, appends the history record, and escalates the tier when
// the cancellation counts. The record is written even when exempt, for
// audit.
func (s *Service) RecordCancellation(ctx context.Context, invitation *entities.Invitation, reason entities.CancellationReason, customReason string) (*Outcome, error) {
	now := s.now()
	exempt := s.isExempt(invitation, reason, now)

	record := &entities.CancellationRecord{
		UserID:       invitation.AuthorID,
		InvitationID: invitation.ID,
		Reason:       reason,
		Exempt:       exempt,
	}
	if customReason != "" {
		record.CustomReason = &customReason
	}
	if err := s.cancellationRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record cancellation: %w", err)
	}

	if exempt {
		s.logger.Info("cancellation exempt from penalty",
			zap.String("user_id", invitation.AuthorID.String()),
			zap.String("invitation_id", invitation.ID.String()),
			zap.String("reason", string(reason)),
		)
		return &Outcome{Level: entities.PenaltyLevelNone, Exempt: true, Reason: "exempt cancellation"}, nil
	}

	count, err := s.cancellationRepo.CountNonExemptByUser(ctx, invitation.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("failed to count cancellations: %w", err)
	}

	level := entities.PenaltyLevelForCount(int(count))
	duration := level.Duration()
	reasonText := fmt.Sprintf("%d cancelled invitation(s)", count)

	state := &entities.PenaltyState{
		UserID:    invitation.AuthorID,
		Level:     level,
		Reason:    reasonText,
		UpdatedAt: now,
	}
	var until *time.Time
	if duration > 0 {
		u := now.Add(duration)
		until = &u
		state.Until = &u
	}

	if err := s.penaltyRepo.Upsert(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to persist penalty state: %w", err)
	}
	s.cache.Delete(cacheKey(invitation.AuthorID))

	s.logger.Info("penalty applied",
		zap.String("user_id", invitation.AuthorID.String()),
		zap.Int("level", int(level)),
		zap.Int64("non_exempt_count", count),
		zap.Duration("duration", duration),
	)

	return &Outcome{Level: level, Duration: duration, Until: until, Reason: reasonText}, nil
}

// isExempt applies the two exemption rules: a quick take-back with no
// joined guests, or a nobody-came cancellation where no guest ever
// joined.
func (s *Service) isExempt(invitation *entities.Invitation, reason entities.CancellationReason, now time.Time) bool {
	if len(invitation.Joined) == 0 && now.Sub(invitation.CreatedAt) <= s.graceWindow {
		return true
	}
	if reason == entities.ReasonNoParticipants && len(invitation.Joined) == 0 && !invitation.EverJoined {
		return true
	}
	return false
}

// GetPenaltyInfo is a pure read of the user's current penalty, served
// from cache when possible
func (s *Service) GetPenaltyInfo(ctx context.Context, userID uuid.UUID) (*Info, error) {
	key := cacheKey(userID)
	if raw, ok := s.cache.Get(key); ok {
		var info Info
		if err := json.Unmarshal([]byte(raw), &info); err == nil {
			return &info, nil
		}
	}

	state, err := s.penaltyRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrStoreUnavailable, err)
	}

	info := &Info{Level: entities.PenaltyLevelNone}
	if state != nil {
		info = &Info{
			Level:    state.Level,
			Icon:     state.Level.Icon(),
			Duration: state.Level.Duration(),
			Until:    state.Until,
			Reason:   state.Reason,
		}
	}

	if raw, err := json.Marshal(info); err == nil {
		s.cache.Set(key, string(raw), s.cacheTTL)
	}
	return info, nil
}

// CreationAllowed enforces the penalty side of the creation gate.
// Returns ErrAccountRestricted while a restriction tier is active.
func (s *Service) CreationAllowed(ctx context.Context, userID uuid.UUID) error {
	info, err := s.GetPenaltyInfo(ctx, userID)
	if err != nil {
		return err
	}
	if info.Level.Restricts() && info.Until != nil && info.Until.After(s.now()) {
		return fmt.Errorf("%w until %s", usecaseErrors.ErrAccountRestricted, info.Until.Format(time.RFC3339))
	}
	return nil
}

func cacheKey(userID uuid.UUID) string {
	return "penalty:" + userID.String()
}
