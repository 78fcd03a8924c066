package entities

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func TestAddRequest_Idempotent(t *testing.T) {
	inv := &Invitation{}
	user := uuid.New()

	if !inv.AddRequest(user) {
		t.Fatalf("first add should succeed")
	}
	if inv.AddRequest(user) {
		t.Fatalf("second add should be a no-op")
	}
	if len(inv.Requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(inv.Requests))
	}
}

func TestAddRequest_AlreadyJoined(t *testing.T) {
	user := uuid.New()
	inv := &Invitation{Joined: datatypes.NewJSONSlice([]uuid.UUID{user})}

	if inv.AddRequest(user) {
		t.Fatalf("a joined user must not re-enter requests")
	}
}

func TestPromoteToJoined(t *testing.T) {
	user := uuid.New()
	inv := &Invitation{Requests: datatypes.NewJSONSlice([]uuid.UUID{user})}

	inv.PromoteToJoined(user)

	if inv.HasRequested(user) {
		t.Fatalf("promotion must leave requests")
	}
	if !inv.HasJoined(user) {
		t.Fatalf("promotion must enter joined")
	}
	if !inv.EverJoined {
		t.Fatalf("EverJoined must flip on first approval")
	}

	// Promoting again must not duplicate
	inv.PromoteToJoined(user)
	if len(inv.Joined) != 1 {
		t.Fatalf("expected 1 joined entry, got %d", len(inv.Joined))
	}
}

func TestDemoteJoinedToRequests(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	inv := &Invitation{
		Joined:     datatypes.NewJSONSlice([]uuid.UUID{a, b}),
		EverJoined: true,
	}

	displaced := inv.DemoteJoinedToRequests()

	if len(displaced) != 2 {
		t.Fatalf("expected 2 displaced, got %d", len(displaced))
	}
	if len(inv.Joined) != 0 {
		t.Fatalf("joined must be empty")
	}
	if !inv.HasRequested(a) || !inv.HasRequested(b) {
		t.Fatalf("displaced members must be in requests")
	}
	if len(inv.PendingChangeApproval) != 2 {
		t.Fatalf("pending re-approval must list the displaced")
	}
	if !inv.EverJoined {
		t.Fatalf("EverJoined must survive a demotion")
	}
}

func TestIsFull(t *testing.T) {
	inv := &Invitation{GuestsNeeded: 2}
	if inv.IsFull() {
		t.Fatalf("empty invitation is not full")
	}
	inv.Joined = datatypes.NewJSONSlice([]uuid.UUID{uuid.New(), uuid.New()})
	if !inv.IsFull() {
		t.Fatalf("two of two is full")
	}
}

func TestCanAdvance(t *testing.T) {
	cases := []struct {
		from, to JourneyStatus
		want     bool
	}{
		{JourneyStatusPlanning, JourneyStatusOnWay, true},
		{JourneyStatusPlanning, JourneyStatusArrived, true}, // skips allowed
		{JourneyStatusOnWay, JourneyStatusCompleted, true},
		{JourneyStatusArrived, JourneyStatusOnWay, false}, // backward
		{JourneyStatusOnWay, JourneyStatusOnWay, false},   // no-op
		{JourneyStatusCompleted, JourneyStatusPlanning, false},
		{"teleporting", JourneyStatusArrived, false},
	}
	for _, c := range cases {
		if got := CanAdvance(c.from, c.to); got != c.want {
			t.Errorf("CanAdvance(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestJourneyStatusOf_DefaultsToPlanning(t *testing.T) {
	inv := &Invitation{}
	if got := inv.JourneyStatusOf(uuid.New()); got != JourneyStatusPlanning {
		t.Fatalf("expected planning, got %s", got)
	}
}

func TestSetJourneyStatus(t *testing.T) {
	inv := &Invitation{}
	a, b := uuid.New(), uuid.New()

	inv.SetJourneyStatus(a, JourneyStatusOnWay)
	inv.SetJourneyStatus(b, JourneyStatusArrived)

	if inv.JourneyStatusOf(a) != JourneyStatusOnWay {
		t.Fatalf("a's status lost")
	}
	if inv.JourneyStatusOf(b) != JourneyStatusArrived {
		t.Fatalf("b's status lost")
	}
}

func TestComplete(t *testing.T) {
	host := uuid.New()
	at := time.Date(2026, 9, 1, 21, 0, 0, 0, time.UTC)
	inv := &Invitation{Status: InvitationStatusPublished}

	inv.Complete(host, at)

	if !inv.IsCompleted() {
		t.Fatalf("meeting status should be completed")
	}
	if inv.Status != InvitationStatusCompleted {
		t.Fatalf("invitation status should be completed")
	}
	if inv.CompletedAt == nil || !inv.CompletedAt.Equal(at) {
		t.Fatalf("completed_at not recorded")
	}
	if inv.CompletedBy == nil || *inv.CompletedBy != host {
		t.Fatalf("completed_by not recorded")
	}
}

func TestRecipientIDs_Dedup(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	inv := &Invitation{
		Requests: datatypes.NewJSONSlice([]uuid.UUID{a, b}),
		Joined:   datatypes.NewJSONSlice([]uuid.UUID{b, c}),
	}

	got := inv.RecipientIDs()
	if len(got) != 3 {
		t.Fatalf("expected 3 recipients, got %d", len(got))
	}
}

func TestPenaltyLevelForCount(t *testing.T) {
	cases := []struct {
		count int
		want  PenaltyLevel
	}{
		{0, PenaltyLevelNone},
		{1, PenaltyLevelWarning},
		{2, PenaltyLevelRestriction},
		{3, PenaltyLevelRestriction},
		{4, PenaltyLevelBan},
		{5, PenaltyLevelExtendedBan},
		{12, PenaltyLevelExtendedBan},
	}
	for _, c := range cases {
		if got := PenaltyLevelForCount(c.count); got != c.want {
			t.Errorf("PenaltyLevelForCount(%d) = %d, want %d", c.count, got, c.want)
		}
	}
}

func TestPenaltyLevelDuration(t *testing.T) {
	if d := PenaltyLevelWarning.Duration(); d != 0 {
		t.Fatalf("warning has no duration, got %v", d)
	}
	if d := PenaltyLevelRestriction.Duration(); d != 14*24*time.Hour {
		t.Fatalf("restriction is 14 days, got %v", d)
	}
	if d := PenaltyLevelBan.Duration(); d != 30*24*time.Hour {
		t.Fatalf("ban is 30 days, got %v", d)
	}
	if d := PenaltyLevelExtendedBan.Duration(); d != 90*24*time.Hour {
		t.Fatalf("extended ban is 90 days, got %v", d)
	}
}

func TestResolveReasonText(t *testing.T) {
	if got := ResolveReasonText(ReasonVenueClosed, ""); got != "Venue closed" {
		t.Fatalf("unexpected text %q", got)
	}
	if got := ResolveReasonText(ReasonOther, "double booked"); got != "double booked" {
		t.Fatalf("custom text should win, got %q", got)
	}
	if got := ResolveReasonText(ReasonOther, ""); got != "Other" {
		t.Fatalf("missing custom text falls back, got %q", got)
	}
}

func TestUserAgeGroup(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		birth string
		want  string
	}{
		{"1998-03-10", "20s"},
		{"1996-12-01", "20s"}, // birthday not yet reached this year
		{"1990-01-15", "30s"},
		{"1980-06-20", "40s"},
		{"1970-01-01", "50s+"},
	}
	for _, c := range cases {
		birth, err := time.Parse("2006-01-02", c.birth)
		if err != nil {
			t.Fatalf("bad case date %s", c.birth)
		}
		u := &User{BirthDate: &birth}
		if got := u.AgeGroup(now); got != c.want {
			t.Errorf("AgeGroup(born %s) = %s, want %s", c.birth, got, c.want)
		}
	}

	noBirth := &User{}
	if got := noBirth.AgeGroup(now); got != AgeGroupAny {
		t.Fatalf("no birth date matches any, got %s", got)
	}
}
