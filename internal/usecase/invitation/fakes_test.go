package invitation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mealmeet-team/mealmeet/internal/domain/entities"
	"github.com/mealmeet-team/mealmeet/internal/domain/repositories"
	"github.com/mealmeet-team/mealmeet/internal/infrastructure/cache"
	"github.com/mealmeet-team/mealmeet/internal/usecase/penalty"
)

// fakeInvitationRepo is an in-memory InvitationRepository. UpdateLocked
// applies fn synchronously under a mutex, matching the transactional
// contract closely enough for unit tests.
type fakeInvitationRepo struct {
	mu           sync.Mutex
	invitations  map[uuid.UUID]*entities.Invitation
	findErr      error
	updateErr    error
	deleteErr    error
	deleted      []uuid.UUID
	activeByAuth map[uuid.UUID]*entities.Invitation
	activeErr    error
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{
		invitations:  make(map[uuid.UUID]*entities.Invitation),
		activeByAuth: make(map[uuid.UUID]*entities.Invitation),
	}
}

func (r *fakeInvitationRepo) put(inv *entities.Invitation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invitations[inv.ID] = inv
}

func (r *fakeInvitationRepo) Create(ctx context.Context, inv *entities.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	inv.CreatedAt = time.Now()
	r.invitations[inv.ID] = inv
	return nil
}

func (r *fakeInvitationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	inv, ok := r.invitations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return inv, nil
}

func (r *fakeInvitationRepo) FindActiveByAuthor(ctx context.Context, authorID uuid.UUID, onOrAfter time.Time) (*entities.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.activeErr != nil {
		return nil, r.activeErr
	}
	inv, ok := r.activeByAuth[authorID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return inv, nil
}

func (r *fakeInvitationRepo) Update(ctx context.Context, inv *entities.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invitations[inv.ID] = inv
	return nil
}

func (r *fakeInvitationRepo) UpdateLocked(ctx context.Context, id uuid.UUID, fn func(*entities.Invitation) error) (*entities.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	inv, ok := r.invitations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if err := fn(inv); err != nil {
		return nil, err
	}
	inv.Version++
	return inv, nil
}

func (r *fakeInvitationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.invitations, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeInvitationRepo) List(ctx context.Context, filters repositories.InvitationFilters) ([]*entities.Invitation, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Invitation
	for _, inv := range r.invitations {
		out = append(out, inv)
	}
	return out, int64(len(out)), nil
}

// fakeUserRepo serves users from a map
type fakeUserRepo struct {
	users map[uuid.UUID]*entities.User
}

func newFakeUserRepo(users ...*entities.User) *fakeUserRepo {
	m := make(map[uuid.UUID]*entities.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entities.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entities.User) error {
	r.users[user.ID] = user
	return nil
}

// fakeVenueRepo serves venues from a map
type fakeVenueRepo struct {
	venues map[uuid.UUID]*entities.Venue
}

func newFakeVenueRepo(venues ...*entities.Venue) *fakeVenueRepo {
	m := make(map[uuid.UUID]*entities.Venue, len(venues))
	for _, v := range venues {
		m[v.ID] = v
	}
	return &fakeVenueRepo{venues: m}
}

func (r *fakeVenueRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Venue, error) {
	v, ok := r.venues[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *fakeVenueRepo) Create(ctx context.Context, venue *entities.Venue) error {
	r.venues[venue.ID] = venue
	return nil
}

// sentNotification is one recorded Send or Fanout delivery
type sentNotification struct {
	UserID       uuid.UUID
	Notification entities.Notification
}

// fakeNotifier records deliveries; failUsers simulate per-recipient
// transport failure.
type fakeNotifier struct {
	mu        sync.Mutex
	sent      []sentNotification
	failUsers map[uuid.UUID]bool
	sendErr   error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{failUsers: make(map[uuid.UUID]bool)}
}

func (n *fakeNotifier) Send(ctx context.Context, userID uuid.UUID, notif entities.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sendErr != nil {
		return n.sendErr
	}
	if n.failUsers[userID] {
		return context.DeadlineExceeded
	}
	n.sent = append(n.sent, sentNotification{UserID: userID, Notification: notif})
	return nil
}

func (n *fakeNotifier) Fanout(ctx context.Context, userIDs []uuid.UUID, notif entities.Notification) int {
	delivered := 0
	for _, id := range userIDs {
		if n.Send(ctx, id, notif) == nil {
			delivered++
		}
	}
	return delivered
}

func (n *fakeNotifier) sentTo(userID uuid.UUID) []sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []sentNotification
	for _, s := range n.sent {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out
}

// fakeChatPurger records purged invitation ids
type fakeChatPurger struct {
	purged []uuid.UUID
	err    error
}

func (p *fakeChatPurger) DeleteHistory(ctx context.Context, invitationID uuid.UUID) error {
	if p.err != nil {
		return p.err
	}
	p.purged = append(p.purged, invitationID)
	return nil
}

// fakeLocator returns a fixed position or error
type fakeLocator struct {
	pos *Position
	err error
}

func (l *fakeLocator) CurrentPosition(ctx context.Context, userID uuid.UUID) (*Position, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.pos, nil
}

// fakeCancellationRepo backs the penalty service in cancel tests
type fakeCancellationRepo struct {
	records   []*entities.CancellationRecord
	createErr error
}

func (r *fakeCancellationRepo) Create(ctx context.Context, record *entities.CancellationRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.records = append(r.records, record)
	return nil
}

func (r *fakeCancellationRepo) CountNonExemptByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, rec := range r.records {
		if rec.UserID == userID && !rec.Exempt {
			count++
		}
	}
	return count, nil
}

func (r *fakeCancellationRepo) FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.CancellationRecord, error) {
	var out []*entities.CancellationRecord
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		if r.records[i].UserID == userID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

// fakePenaltyRepo stores one state per user
type fakePenaltyRepo struct {
	states  map[uuid.UUID]*entities.PenaltyState
	findErr error
}

func newFakePenaltyRepo() *fakePenaltyRepo {
	return &fakePenaltyRepo{states: make(map[uuid.UUID]*entities.PenaltyState)}
}

func (r *fakePenaltyRepo) Upsert(ctx context.Context, state *entities.PenaltyState) error {
	r.states[state.UserID] = state
	return nil
}

func (r *fakePenaltyRepo) FindByUser(ctx context.Context, userID uuid.UUID) (*entities.PenaltyState, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.states[userID], nil
}

func newTestPenaltyService(cancellations *fakeCancellationRepo, penalties *fakePenaltyRepo) *penalty.Service {
	return penalty.NewService(cancellations, penalties, cache.NewMemoryStore(), time.Minute, 10*time.Minute, zap.NewNop())
}

// newTestInvitation builds a published invitation hosted by authorID
func newTestInvitation(authorID uuid.UUID, guestsNeeded int) *entities.Invitation {
	return &entities.Invitation{
		ID:               uuid.New(),
		AuthorID:         authorID,
		Title:            "Ramen night",
		Date:             time.Now().AddDate(0, 0, 1),
		Time:             "19:30",
		GuestsNeeded:     guestsNeeded,
		Requests:         datatypes.JSONSlice[uuid.UUID]{},
		Joined:           datatypes.JSONSlice[uuid.UUID]{},
		Privacy:          entities.PrivacyPublic,
		GenderPreference: entities.GenderPreferenceAny,
		AgeGroups:        datatypes.NewJSONSlice([]string{entities.AgeGroupAny}),
		Location:         "Shinjuku",
		Status:           entities.InvitationStatusPublished,
		Version:          1,
		CreatedAt:        time.Now(),
	}
}

func newTestUser() *entities.User {
	return &entities.User{
		ID:          uuid.New(),
		Email:       uuid.NewString() + "@example.com",
		DisplayName: "Aoi",
		Gender:      entities.GenderUnspecified,
	}
}
