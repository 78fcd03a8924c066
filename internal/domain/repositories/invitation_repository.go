package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mealmeet-team/mealmeet/internal/domain/entities"
)

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	// Create creates a new invitation
	Create(ctx context.Context, invitation *entities.Invitation) error

	// FindByID retrieves an invitation by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Invitation, error)

	// FindActiveByAuthor retrieves the author's invitation with a date on
	// or after the given day, if one exists. Used by the daily limit gate.
	FindActiveByAuthor(ctx context.Context, authorID uuid.UUID, onOrAfter time.Time) (*entities.Invitation, error)

	// Update persists the full invitation state
	Update(ctx context.Context, invitation *entities.Invitation) error

	// UpdateLocked runs fn against the row locked for update inside a
	// transaction and persists the mutated invitation on success. The
	// invitation passed to fn is re-read at commit time; fn must
	// re-derive any size or membership checks from it rather than trust
	// caller-cached state.
	UpdateLocked(ctx context.Context, id uuid.UUID, fn func(invitation *entities.Invitation) error) (*entities.Invitation, error)

	// Delete removes the invitation document entirely
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves invitations with filters and pagination
	List(ctx context.Context, filters InvitationFilters) ([]*entities.Invitation, int64, error)
}

// InvitationFilters represents filter options for listing invitations
type InvitationFilters struct {
	AuthorID *uuid.UUID
	Privacy  *entities.Privacy
	Status   *entities.InvitationStatus
	DateFrom *time.Time
	DateTo   *time.Time
	Search   string // Search in title, location
	Limit    int
	Offset   int
}
