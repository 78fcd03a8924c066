package invitation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mealmeet-team/mealmeet/internal/domain/entities"
	"github.com/mealmeet-team/mealmeet/internal/domain/repositories"
	usecaseErrors "github.com/mealmeet-team/mealmeet/internal/usecase/errors"
	"github.com/mealmeet-team/mealmeet/internal/usecase/penalty"
)

// Service handles invitation creation and reads. Mutating lifecycle
// operations live in the join, edit, completion, and cancel services.
type Service struct {
	invitationRepo repositories.InvitationRepository
	dailyLimit     *DailyLimitValidator
	penaltySvc     *penalty.Service
	logger         *zap.Logger
}

// NewService creates a new invitation service
func NewService(
	invitationRepo repositories.InvitationRepository,
	dailyLimit *DailyLimitValidator,
	penaltySvc *penalty.Service,
	logger *zap.Logger,
) *Service {
	return &Service{
		invitationRepo: invitationRepo,
		dailyLimit:     dailyLimit,
		penaltySvc:     penaltySvc,
		logger:         logger,
	}
}

// CreateInput represents input for creating an invitation
type CreateInput struct {
	AuthorID         uuid.UUID
	Title            string
	Description      *string
	Date             time.Time
	Time             string
	MinDate          *time.Time
	MaxDate          *time.Time
	GuestsNeeded     int
	Privacy          entities.Privacy
	InvitedUserIDs   []uuid.UUID
	GenderPreference entities.GenderPreference
	AgeGroups        []string
	Location         string
	Lat              *float64
	Lng              *float64
	VenueID          *uuid.UUID
	Draft            bool
}

// DailyLimitError carries the conflicting invitation so callers can
// offer navigation to it instead of creation.
type DailyLimitError struct {
	Conflicting *entities.Invitation
}

func (e *DailyLimitError) Error() string {
	return usecaseErrors.ErrDailyLimitExceeded.Error()
}

// Is makes the error match ErrDailyLimitExceeded under errors.Is
func (e *DailyLimitError) Is(target error) bool {
	return target == usecaseErrors.ErrDailyLimitExceeded
}

// Create creates a new invitation. The penalty creation gate runs
// first, then the daily limit. A store error in either check refuses
// creation; the gates never fail open.
func (s *Service) Create(ctx context.Context, input CreateInput) (*entities.Invitation, error) {
	if input.GuestsNeeded < 1 {
		return nil, entities.ErrInvalidGuestCount
	}

	if err := s.penaltySvc.CreationAllowed(ctx, input.AuthorID); err != nil {
		return nil, err
	}

	conflicting, err := s.dailyLimit.ValidateCreation(ctx, input.AuthorID)
	if err != nil {
		if errors.Is(err, usecaseErrors.ErrDailyLimitExceeded) {
			return nil, &DailyLimitError{Conflicting: conflicting}
		}
		return nil, err
	}

	status := entities.InvitationStatusPublished
	if input.Draft {
		status = entities.InvitationStatusDraft
	}

	privacy := input.Privacy
	if privacy == "" {
		privacy = entities.PrivacyPublic
	}
	gender := input.GenderPreference
	if gender == "" {
		gender = entities.GenderPreferenceAny
	}
	groups := input.AgeGroups
	if len(groups) == 0 {
		groups = []string{entities.AgeGroupAny}
	}

	inv := &entities.Invitation{
		AuthorID:         input.AuthorID,
		Title:            input.Title,
		Description:      input.Description,
		Date:             input.Date,
		Time:             input.Time,
		MinDate:          input.MinDate,
		MaxDate:          input.MaxDate,
		GuestsNeeded:     input.GuestsNeeded,
		Requests:         datatypes.JSONSlice[uuid.UUID]{},
		Joined:           datatypes.JSONSlice[uuid.UUID]{},
		Privacy:          privacy,
		InvitedUserIDs:   datatypes.NewJSONSlice(input.InvitedUserIDs),
		GenderPreference: gender,
		AgeGroups:        datatypes.NewJSONSlice(groups),
		Location:         input.Location,
		Lat:              input.Lat,
		Lng:              input.Lng,
		VenueID:          input.VenueID,
		MeetingStatus:    entities.MeetingStatusPlanning,
		Status:           status,
		Version:          1,
	}

	if err := s.invitationRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	s.logger.Info("invitation created",
		zap.String("invitation_id", inv.ID.String()),
		zap.String("author_id", inv.AuthorID.String()),
		zap.Int("guests_needed", inv.GuestsNeeded),
	)

	return inv, nil
}

// Get retrieves an invitation by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entities.Invitation, error) {
	inv, err := s.invitationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	return inv, nil
}

// List retrieves invitations with filters
func (s *Service) List(ctx context.Context, filters repositories.InvitationFilters) ([]*entities.Invitation, int64, error) {
	invitations, total, err := s.invitationRepo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, total, nil
}
