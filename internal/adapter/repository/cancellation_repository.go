package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mealmeet-team/mealmeet/internal/domain/entities"
	"github.com/mealmeet-team/mealmeet/internal/domain/repositories"
)

// cancellationRepository implements the CancellationRepository interface
type cancellationRepository struct {
	db *gorm.DB
}

// NewCancellationRepository creates a new cancellation repository
func NewCancellationRepository(db *gorm.DB) repositories.CancellationRepository {
	return &cancellationRepository{db: db}
}

// Create appends a cancellation record
func (r *cancellationRepository) Create(ctx context.Context, record *entities.CancellationRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// CountNonExemptByUser counts non-exempt cancellations for a user
func (r *cancellationRepository) CountNonExemptByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.CancellationRecord{}).
		Where("user_id = ? AND exempt = false", userID).
		Count(&count).Error
	return count, err
}

// FindByUser retrieves the user's cancellation history, newest first
func (r *cancellationRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.CancellationRecord, error) {
	var records []*entities.CancellationRecord
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&records).Error
	return records, err
}

// penaltyRepository implements the PenaltyRepository interface
type penaltyRepository struct {
	db *gorm.DB
}

// NewPenaltyRepository creates a new penalty repository
func NewPenaltyRepository(db *gorm.DB) repositories.PenaltyRepository {
	return &penaltyRepository{db: db}
}

// Upsert writes the user's penalty state
func (r *penaltyRepository) Upsert(ctx context.Context, state *entities.PenaltyState) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(state).Error
}

// FindByUser retrieves the user's penalty state, nil when absent
func (r *penaltyRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*entities.PenaltyState, error) {
	var state entities.PenaltyState
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &state, nil
}
