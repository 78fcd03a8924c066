package invitation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/mealmeet-team/mealmeet/internal/domain/entities"
	usecaseErrors "github.com/mealmeet-team/mealmeet/internal/usecase/errors"
)

type cancelFixture struct {
	svc           *CancelService
	repo          *fakeInvitationRepo
	venues        *fakeVenueRepo
	notifier      *fakeNotifier
	purger        *fakeChatPurger
	cancellations *fakeCancellationRepo
	penalties     *fakePenaltyRepo
}

func newCancelFixture(venues ...*entities.Venue) *cancelFixture {
	f := &cancelFixture{
		repo:          newFakeInvitationRepo(),
		venues:        newFakeVenueRepo(venues...),
		notifier:      newFakeNotifier(),
		purger:        &fakeChatPurger{},
		cancellations: &fakeCancellationRepo{},
		penalties:     newFakePenaltyRepo(),
	}
	f.svc = NewCancelService(
		f.repo,
		f.venues,
		newTestPenaltyService(f.cancellations, f.penalties),
		f.notifier,
		f.purger,
		zap.NewNop(),
	)
	return f
}

func TestCancel_NotifiesEveryoneAndDeletes(t *testing.T) {
	host := uuid.New()
	requester, joined := uuid.New(), uuid.New()
	f := newCancelFixture()

	inv := newTestInvitation(host, 3)
	inv.CreatedAt = time.Now().Add(-2 * time.Hour) // outside the grace window
	inv.Requests = datatypes.NewJSONSlice([]uuid.UUID{requester})
	inv.Joined = datatypes.NewJSONSlice([]uuid.UUID{joined})
	inv.EverJoined = true
	f.repo.put(inv)

	summary, err := f.svc.Cancel(context.Background(), inv.ID, entities.ReasonScheduleConflict, "", host)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.NotifiedUsers != 2 {
		t.Fatalf("expected 2 notified users, got %d", summary.NotifiedUsers)
	}
	if summary.Penalty == nil {
		t.Fatalf("penalty outcome missing")
	}
	if summary.Penalty.Level != entities.PenaltyLevelWarning {
		t.Fatalf("first cancellation should warn, got level %d", summary.Penalty.Level)
	}
	if len(f.purger.purged) != 1 {
		t.Fatalf("chat history should be purged")
	}
	if len(f.repo.deleted) != 1 {
		t.Fatalf("invitation should be deleted")
	}
	if _, err := f.repo.FindByID(context.Background(), inv.ID); err == nil {
		t.Fatalf("invitation should be gone")
	}
}

func TestCancel_PenaltyFailureStillDeletes(t *testing.T) {
	host := uuid.New()
	f := newCancelFixture()
	f.cancellations.createErr = errors.New("history store down")

	inv := newTestInvitation(host, 2)
	inv.CreatedAt = time.Now().Add(-2 * time.Hour)
	inv.Joined = datatypes.NewJSONSlice([]uuid.UUID{uuid.New()})
	f.repo.put(inv)

	summary, err := f.svc.Cancel(context.Background(), inv.ID, entities.ReasonScheduleConflict, "", host)
	if err != nil {
		t.Fatalf("a penalty failure must not abort the cancellation: %v", err)
	}
	if summary.PenaltyErr == nil {
		t.Fatalf("penalty error should be reported in the summary")
	}
	if summary.Penalty != nil {
		t.Fatalf("no outcome when recording failed")
	}
	if len(f.repo.deleted) != 1 {
		t.Fatalf("the delete is authoritative and must still run")
	}
}

func TestCancel_NotifierFailurePartialCount(t *testing.T) {
	host := uuid.New()
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	f := newCancelFixture()
	f.notifier.failUsers[b] = true

	inv := newTestInvitation(host, 3)
	inv.CreatedAt = time.Now().Add(-2 * time.Hour)
	inv.Joined = datatypes.NewJSONSlice([]uuid.UUID{a, b, c})
	f.repo.put(inv)

	summary, err := f.svc.Cancel(context.Background(), inv.ID, entities.ReasonBadWeather, "", host)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.NotifiedUsers != 2 {
		t.Fatalf("expected 2 delivered of 3, got %d", summary.NotifiedUsers)
	}
	if len(f.repo.deleted) != 1 {
		t.Fatalf("delete must still run")
	}
}

func TestCancel_VenueNotified(t *testing.T) {
	host := uuid.New()
	owner := uuid.New()
	venue := &entities.Venue{ID: uuid.New(), Name: "Ichiran", OwnerUserID: owner}
	f := newCancelFixture(venue)

	inv := newTestInvitation(host, 2)
	inv.VenueID = &venue.ID
	f.repo.put(inv)

	summary, err := f.svc.Cancel(context.Background(), inv.ID, entities.ReasonVenueClosed, "", host)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.VenueNotified {
		t.Fatalf("venue owner should be notified")
	}
	if sent := f.notifier.sentTo(owner); len(sent) != 1 {
		t.Fatalf("expected 1 venue notification, got %d", len(sent))
	}
}

func TestCancel_ReasonValidation(t *testing.T) {
	host := uuid.New()
	f := newCancelFixture()

	inv := newTestInvitation(host, 2)
	f.repo.put(inv)

	if _, err := f.svc.Cancel(context.Background(), inv.ID, "sudden_rain", "", host); !errors.Is(err, entities.ErrInvalidReason) {
		t.Fatalf("expected ErrInvalidReason, got %v", err)
	}
	if _, err := f.svc.Cancel(context.Background(), inv.ID, entities.ReasonOther, "", host); !errors.Is(err, entities.ErrMissingCustomReason) {
		t.Fatalf("expected ErrMissingCustomReason, got %v", err)
	}
	if _, err := f.svc.Cancel(context.Background(), inv.ID, entities.ReasonOther, "food poisoning", host); err != nil {
		t.Fatalf("other with custom text should pass: %v", err)
	}
}

func TestCancel_HostOnly(t *testing.T) {
	host := uuid.New()
	f := newCancelFixture()

	inv := newTestInvitation(host, 2)
	f.repo.put(inv)

	if _, err := f.svc.Cancel(context.Background(), inv.ID, entities.ReasonScheduleConflict, "", uuid.New()); !errors.Is(err, usecaseErrors.ErrNotHost) {
		t.Fatalf("expected ErrNotHost, got %v", err)
	}
	if len(f.repo.deleted) != 0 {
		t.Fatalf("nothing may be deleted")
	}
}

func TestCancel_DeleteFailureIsFatal(t *testing.T) {
	host := uuid.New()
	f := newCancelFixture()
	f.repo.deleteErr = errors.New("db down")

	inv := newTestInvitation(host, 2)
	f.repo.put(inv)

	if _, err := f.svc.Cancel(context.Background(), inv.ID, entities.ReasonScheduleConflict, "", host); err == nil {
		t.Fatalf("a failed delete must surface as an error")
	}
}

func TestCancel_ChatPurgeFailureTolerated(t *testing.T) {
	host := uuid.New()
	f := newCancelFixture()
	f.purger.err = errors.New("redis down")

	inv := newTestInvitation(host, 2)
	f.repo.put(inv)

	if _, err := f.svc.Cancel(context.Background(), inv.ID, entities.ReasonPersonalEmergency, "", host); err != nil {
		t.Fatalf("a purge failure must not abort: %v", err)
	}
	if len(f.repo.deleted) != 1 {
		t.Fatalf("delete must still run")
	}
}
