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

// EditService handles schedule edits. Changing date or time demotes
// every joined participant back to a request: they must re-confirm
// under the new schedule.
type EditService struct {
	invitationRepo repositories.InvitationRepository
	notifier       Notifier
	logger         *zap.Logger
	now            func() time.Time
}

// NewEditService creates a new edit service
func NewEditService(
	invitationRepo repositories.InvitationRepository,
	notifier Notifier,
	logger *zap.Logger,
) *EditService {
	return &EditService{
		invitationRepo: invitationRepo,
		notifier:       notifier,
		logger:         logger,
		now:            time.Now,
	}
}

// UpdateDateTime changes the invitation's schedule. Host-only. The
// edit-history append and the joined-to-requests transfer commit in one
// transaction; the operation is never partial. Displaced members are
// each notified afterwards.
func (s *EditService) UpdateDateTime(ctx context.Context, invitationID uuid.UUID, newDate time.Time, newTime string, actingUserID uuid.UUID) (*entities.Invitation, error) {
	var displaced []uuid.UUID
	var record entities.EditRecord

	inv, err := s.invitationRepo.UpdateLocked(ctx, invitationID, func(inv *entities.Invitation) error {
		if !inv.IsHost(actingUserID) {
			return usecaseErrors.ErrNotHost
		}
		if inv.IsCompleted() {
			return usecaseErrors.ErrAlreadyCompleted
		}

		record = entities.EditRecord{
			EditedAt: s.now(),
			EditedBy: actingUserID,
			OldDate:  inv.Date.Format("2006-01-02"),
			OldTime:  inv.Time,
			NewDate:  newDate.Format("2006-01-02"),
			NewTime:  newTime,
		}
		inv.AppendEdit(record)

		inv.Date = newDate
		inv.Time = newTime
		displaced = inv.DemoteJoinedToRequests()
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrInvitationNotFound
		}
		return nil, err
	}

	if len(displaced) > 0 {
		delivered := s.notifier.Fanout(ctx, displaced, entities.Notification{
			Type:       entities.NotificationScheduleChanged,
			Title:      "Schedule changed",
			Message:    fmt.Sprintf("%q moved to %s %s, please confirm you can still make it", inv.Title, record.NewDate, record.NewTime),
			ActionURL:  invitationURL(inv.ID),
			FromUserID: &actingUserID,
		})
		s.logger.Info("schedule change notified",
			zap.String("invitation_id", inv.ID.String()),
			zap.Int("displaced", len(displaced)),
			zap.Int("delivered", delivered),
		)
	}

	return inv, nil
}
