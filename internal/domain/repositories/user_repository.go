package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealmeet-team/mealmeet/internal/domain/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	// Update updates an existing user
	Update(ctx context.Context, user *entities.User) error
}

// VenueRepository defines the interface for venue data access
type VenueRepository interface {
	// FindByID finds a venue by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Venue, error)

	// Create creates a new venue
	Create(ctx context.Context, venue *entities.Venue) error
}
