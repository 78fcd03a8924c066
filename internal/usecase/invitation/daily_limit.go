package invitation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealmeet-team/mealmeet/internal/domain/entities"
	"github.com/mealmeet-team/mealmeet/internal/domain/repositories"
	usecaseErrors "github.com/mealmeet-team/mealmeet/internal/usecase/errors"
)

// DailyLimitValidator enforces at most one active invitation per author
// per day.
type DailyLimitValidator struct {
	invitationRepo repositories.InvitationRepository
	now            func() time.Time
}

// NewDailyLimitValidator creates a new daily limit validator
func NewDailyLimitValidator(invitationRepo repositories.InvitationRepository) *DailyLimitValidator {
	return &DailyLimitValidator{
		invitationRepo: invitationRepo,
		now:            time.Now,
	}
}

// ValidateCreation checks whether the author may create a new
// invitation today. When an active invitation exists it is returned so
// the caller can offer navigation to it instead of creating another.
// A store error is fatal and never allows creation through.
func (v *DailyLimitValidator) ValidateCreation(ctx context.Context, authorID uuid.UUID) (*entities.Invitation, error) {
	today := startOfDay(v.now())

	existing, err := v.invitationRepo.FindActiveByAuthor(ctx, authorID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: daily limit check failed: %v", usecaseErrors.ErrStoreUnavailable, err)
	}

	return existing, usecaseErrors.ErrDailyLimitExceeded
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
