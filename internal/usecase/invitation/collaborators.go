package invitation

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealmeet-team/mealmeet/internal/domain/entities"
)

// Notifier delivers notifications to users. Delivery is best-effort:
// a failed or slow send must never abort the operation that produced it.
type Notifier interface {
	// Send delivers one notification, bounded by its own timeout
	Send(ctx context.Context, userID uuid.UUID, n entities.Notification) error

	// Fanout delivers the notification to every recipient concurrently
	// and returns how many sends succeeded
	Fanout(ctx context.Context, userIDs []uuid.UUID, n entities.Notification) int
}

// Position is a device fix from the geolocation provider
type Position struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Accuracy float64 `json:"accuracy"`
}

// Locator resolves the acting user's current device position. This is
// the only blocking external call in the core; implementations must
// honor the context deadline.
type Locator interface {
	CurrentPosition(ctx context.Context, userID uuid.UUID) (*Position, error)
}

// ChatPurger removes an invitation's chat history. Purging is
// best-effort during cancellation.
type ChatPurger interface {
	DeleteHistory(ctx context.Context, invitationID uuid.UUID) error
}
