package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mealmeet-team/mealmeet/internal/domain/entities"
	"github.com/mealmeet-team/mealmeet/internal/domain/repositories"
)

// invitationRepository implements the InvitationRepository interface
type invitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(db *gorm.DB) repositories.InvitationRepository {
	return &invitationRepository{db: db}
}

// Create creates a new invitation record
func (r *invitationRepository) Create(ctx context.Context, invitation *entities.Invitation) error {
	return r.db.WithContext(ctx).Create(invitation).Error
}

// FindByID retrieves an invitation by ID
func (r *invitationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Invitation, error) {
	var invitation entities.Invitation
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Venue").
		Where("id = ?", id).
		First(&invitation).Error

	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// FindActiveByAuthor retrieves the author's invitation dated on or after
// the given day, if any
func (r *invitationRepository) FindActiveByAuthor(ctx context.Context, authorID uuid.UUID, onOrAfter time.Time) (*entities.Invitation, error) {
	var invitation entities.Invitation
	err := r.db.WithContext(ctx).
		Where("author_id = ? AND date >= ? AND status <> ?", authorID, onOrAfter, entities.InvitationStatusCompleted).
		Order("date ASC").
		First(&invitation).Error

	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// Update persists the full invitation state
func (r *invitationRepository) Update(ctx context.Context, invitation *entities.Invitation) error {
	return r.db.WithContext(ctx).Save(invitation).Error
}

// UpdateLocked applies fn to the row under a SELECT ... FOR UPDATE lock
// and persists the result in the same transaction. Capacity and
// membership checks inside fn therefore see the committed state, not a
// client-cached copy.
func (r *invitationRepository) UpdateLocked(ctx context.Context, id uuid.UUID, fn func(invitation *entities.Invitation) error) (*entities.Invitation, error) {
	var result *entities.Invitation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invitation entities.Invitation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&invitation).Error; err != nil {
			return err
		}

		if err := fn(&invitation); err != nil {
			return err
		}

		invitation.Version++
		if err := tx.Save(&invitation).Error; err != nil {
			return err
		}

		result = &invitation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes an invitation record
func (r *invitationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Invitation{}, "id = ?", id).Error
}

// List retrieves invitations with filters and pagination
func (r *invitationRepository) List(ctx context.Context, filters repositories.InvitationFilters) ([]*entities.Invitation, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.Invitation{})

	if filters.AuthorID != nil {
		query = query.Where("author_id = ?", *filters.AuthorID)
	}
	if filters.Privacy != nil {
		query = query.Where("privacy = ?", *filters.Privacy)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.DateFrom != nil {
		query = query.Where("date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("date <= ?", *filters.DateTo)
	}
	if filters.Search != "" {
		search := "%" + filters.Search + "%"
		query = query.Where("title ILIKE ? OR location ILIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Preload("Author").Order("date ASC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var invitations []*entities.Invitation
	err := query.Find(&invitations).Error
	return invitations, total, err
}
