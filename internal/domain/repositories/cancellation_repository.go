package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealmeet-team/mealmeet/internal/domain/entities"
)

// CancellationRepository defines the interface for cancellation history access
type CancellationRepository interface {
	// Create appends one cancellation record to the user's history
	Create(ctx context.Context, record *entities.CancellationRecord) error

	// CountNonExemptByUser counts the user's non-exempt cancellations
	CountNonExemptByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// FindByUser retrieves the user's cancellation history, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.CancellationRecord, error)
}

// PenaltyRepository defines the interface for penalty state access
type PenaltyRepository interface {
	// Upsert writes the user's penalty state, replacing any existing row
	Upsert(ctx context.Context, state *entities.PenaltyState) error

	// FindByUser retrieves the user's penalty state; returns nil without
	// error when the user has no penalty on record
	FindByUser(ctx context.Context, userID uuid.UUID) (*entities.PenaltyState, error)
}
