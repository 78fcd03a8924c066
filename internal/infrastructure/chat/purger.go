package chat

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Purger removes an invitation's chat history from Redis. Chat delivery
// itself lives outside this service; messages are kept under
// chat:<invitationID>:* keys by the chat gateway.
type Purger struct {
	client *redis.Client
}

// NewPurger creates a new chat purger
func NewPurger(client *redis.Client) *Purger {
	return &Purger{client: client}
}

// DeleteHistory removes every chat key belonging to the invitation.
// Keys are collected with SCAN to avoid blocking the server on large
// histories.
func (p *Purger) DeleteHistory(ctx context.Context, invitationID uuid.UUID) error {
	pattern := fmt.Sprintf("chat:%s:*", invitationID)

	var cursor uint64
	for {
		keys, next, err := p.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan chat keys: %w", err)
		}
		if len(keys) > 0 {
			if err := p.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete chat keys: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
