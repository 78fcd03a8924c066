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

func TestUpdateDateTime_DemotesJoined(t *testing.T) {
	host := uuid.New()
	a, b := uuid.New(), uuid.New()
	repo := newFakeInvitationRepo()
	notifier := newFakeNotifier()
	svc := NewEditService(repo, notifier, zap.NewNop())

	inv := newTestInvitation(host, 3)
	inv.Joined = datatypes.NewJSONSlice([]uuid.UUID{a, b})
	repo.put(inv)

	newDate := time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)
	got, err := svc.UpdateDateTime(context.Background(), inv.ID, newDate, "20:00", host)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.Joined) != 0 {
		t.Fatalf("joined should be empty after a schedule edit, got %d", len(got.Joined))
	}
	if !got.HasRequested(a) || !got.HasRequested(b) {
		t.Fatalf("displaced members must be back in requests")
	}
	if len(got.PendingChangeApproval) != 2 {
		t.Fatalf("expected 2 pending re-approvals, got %d", len(got.PendingChangeApproval))
	}
	if got.Time != "20:00" || !got.Date.Equal(newDate) {
		t.Fatalf("schedule not applied: %s %s", got.Date, got.Time)
	}

	// Both displaced members are told about the change
	var changed int
	for _, s := range notifier.sent {
		if s.Notification.Type == entities.NotificationScheduleChanged {
			changed++
		}
	}
	if changed != 2 {
		t.Fatalf("expected 2 schedule_changed notifications, got %d", changed)
	}
}

func TestUpdateDateTime_AppendsEditHistory(t *testing.T) {
	host := uuid.New()
	repo := newFakeInvitationRepo()
	svc := NewEditService(repo, newFakeNotifier(), zap.NewNop())

	inv := newTestInvitation(host, 2)
	oldDate := inv.Date.Format("2006-01-02")
	oldTime := inv.Time
	repo.put(inv)

	newDate := time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)
	got, err := svc.UpdateDateTime(context.Background(), inv.ID, newDate, "18:00", host)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.EditHistory) != 1 {
		t.Fatalf("expected 1 edit record, got %d", len(got.EditHistory))
	}
	rec := got.EditHistory[0]
	if rec.OldDate != oldDate || rec.OldTime != oldTime {
		t.Fatalf("old schedule not captured: %s %s", rec.OldDate, rec.OldTime)
	}
	if rec.NewDate != "2026-10-02" || rec.NewTime != "18:00" {
		t.Fatalf("new schedule not captured: %s %s", rec.NewDate, rec.NewTime)
	}
	if rec.EditedBy != host {
		t.Fatalf("editor not recorded")
	}
}

func TestUpdateDateTime_HostOnly(t *testing.T) {
	host := uuid.New()
	repo := newFakeInvitationRepo()
	svc := NewEditService(repo, newFakeNotifier(), zap.NewNop())

	inv := newTestInvitation(host, 2)
	repo.put(inv)

	if _, err := svc.UpdateDateTime(context.Background(), inv.ID, inv.Date, "18:00", uuid.New()); !errors.Is(err, usecaseErrors.ErrNotHost) {
		t.Fatalf("expected ErrNotHost, got %v", err)
	}
}

func TestUpdateDateTime_CompletedRefuses(t *testing.T) {
	host := uuid.New()
	repo := newFakeInvitationRepo()
	svc := NewEditService(repo, newFakeNotifier(), zap.NewNop())

	inv := newTestInvitation(host, 2)
	inv.MeetingStatus = entities.MeetingStatusCompleted
	repo.put(inv)

	if _, err := svc.UpdateDateTime(context.Background(), inv.ID, inv.Date, "18:00", host); !errors.Is(err, usecaseErrors.ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
}

func TestUpdateDateTime_NoJoinedNoFanout(t *testing.T) {
	host := uuid.New()
	repo := newFakeInvitationRepo()
	notifier := newFakeNotifier()
	svc := NewEditService(repo, notifier, zap.NewNop())

	inv := newTestInvitation(host, 2)
	repo.put(inv)

	if _, err := svc.UpdateDateTime(context.Background(), inv.ID, inv.Date, "18:00", host); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("no one to displace means no notifications, got %d", len(notifier.sent))
	}
}
