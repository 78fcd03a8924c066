package invitation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mealmeet-team/mealmeet/internal/domain/entities"
	usecaseErrors "github.com/mealmeet-team/mealmeet/internal/usecase/errors"
)

func newCreateFixture() (*Service, *fakeInvitationRepo, *fakePenaltyRepo) {
	repo := newFakeInvitationRepo()
	penalties := newFakePenaltyRepo()
	penaltySvc := newTestPenaltyService(&fakeCancellationRepo{}, penalties)
	svc := NewService(repo, NewDailyLimitValidator(repo), penaltySvc, zap.NewNop())
	return svc, repo, penalties
}

func baseInput(authorID uuid.UUID) CreateInput {
	return CreateInput{
		AuthorID:     authorID,
		Title:        "Sushi counter",
		Date:         time.Now().AddDate(0, 0, 2),
		Time:         "19:00",
		GuestsNeeded: 2,
		Location:     "Tsukiji",
	}
}

func TestCreate_Defaults(t *testing.T) {
	svc, _, _ := newCreateFixture()
	author := uuid.New()

	inv, err := svc.Create(context.Background(), baseInput(author))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inv.Privacy != entities.PrivacyPublic {
		t.Fatalf("privacy should default to public, got %s", inv.Privacy)
	}
	if inv.GenderPreference != entities.GenderPreferenceAny {
		t.Fatalf("gender preference should default to any, got %s", inv.GenderPreference)
	}
	if len(inv.AgeGroups) != 1 || inv.AgeGroups[0] != entities.AgeGroupAny {
		t.Fatalf("age groups should default to [any], got %v", inv.AgeGroups)
	}
	if inv.Status != entities.InvitationStatusPublished {
		t.Fatalf("status should default to published, got %s", inv.Status)
	}
	if inv.MeetingStatus != entities.MeetingStatusPlanning {
		t.Fatalf("meeting status should start at planning, got %s", inv.MeetingStatus)
	}
}

func TestCreate_Draft(t *testing.T) {
	svc, _, _ := newCreateFixture()

	input := baseInput(uuid.New())
	input.Draft = true
	inv, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Status != entities.InvitationStatusDraft {
		t.Fatalf("expected draft status, got %s", inv.Status)
	}
}

func TestCreate_InvalidGuestCount(t *testing.T) {
	svc, _, _ := newCreateFixture()

	input := baseInput(uuid.New())
	input.GuestsNeeded = 0
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, entities.ErrInvalidGuestCount) {
		t.Fatalf("expected ErrInvalidGuestCount, got %v", err)
	}
}

func TestCreate_DailyLimit(t *testing.T) {
	svc, repo, _ := newCreateFixture()
	author := uuid.New()

	existing := newTestInvitation(author, 2)
	repo.activeByAuth[author] = existing

	_, err := svc.Create(context.Background(), baseInput(author))
	if !errors.Is(err, usecaseErrors.ErrDailyLimitExceeded) {
		t.Fatalf("expected ErrDailyLimitExceeded, got %v", err)
	}

	// The error carries the conflicting invitation for navigation
	var dailyErr *DailyLimitError
	if !errors.As(err, &dailyErr) {
		t.Fatalf("expected DailyLimitError, got %T", err)
	}
	if dailyErr.Conflicting == nil || dailyErr.Conflicting.ID != existing.ID {
		t.Fatalf("conflicting invitation not carried")
	}
}

func TestCreate_DailyLimitStoreErrorFailsClosed(t *testing.T) {
	svc, repo, _ := newCreateFixture()
	repo.activeErr = errors.New("connection refused")

	_, err := svc.Create(context.Background(), baseInput(uuid.New()))
	if !errors.Is(err, usecaseErrors.ErrStoreUnavailable) {
		t.Fatalf("a store error must refuse creation, got %v", err)
	}
}

func TestCreate_RestrictedAccount(t *testing.T) {
	svc, _, penalties := newCreateFixture()
	author := uuid.New()

	until := time.Now().Add(14 * 24 * time.Hour)
	penalties.states[author] = &entities.PenaltyState{
		UserID: author,
		Level:  entities.PenaltyLevelRestriction,
		Until:  &until,
	}

	if _, err := svc.Create(context.Background(), baseInput(author)); !errors.Is(err, usecaseErrors.ErrAccountRestricted) {
		t.Fatalf("expected ErrAccountRestricted, got %v", err)
	}
}

func TestCreate_ExpiredRestrictionAllows(t *testing.T) {
	svc, _, penalties := newCreateFixture()
	author := uuid.New()

	until := time.Now().Add(-time.Hour)
	penalties.states[author] = &entities.PenaltyState{
		UserID: author,
		Level:  entities.PenaltyLevelRestriction,
		Until:  &until,
	}

	if _, err := svc.Create(context.Background(), baseInput(author)); err != nil {
		t.Fatalf("an expired restriction must not block creation: %v", err)
	}
}

func TestCreate_WarningLevelAllows(t *testing.T) {
	svc, _, penalties := newCreateFixture()
	author := uuid.New()

	penalties.states[author] = &entities.PenaltyState{
		UserID: author,
		Level:  entities.PenaltyLevelWarning,
	}

	if _, err := svc.Create(context.Background(), baseInput(author)); err != nil {
		t.Fatalf("a warning carries no restriction: %v", err)
	}
}
