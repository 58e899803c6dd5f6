package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardTTL = 30 * 24 * time.Hour

// TokenGuard records which capability links have already been acted on.
// Key format: capability:<entity_id>:<status>
type TokenGuard struct {
	client *redis.Client
}

// NewTokenGuard creates a TokenGuard wrapping the given Redis client.
func NewTokenGuard(client *redis.Client) *TokenGuard {
	return &TokenGuard{client: client}
}

// Used reports whether a link for this (entity, status) pair was already
// followed.
func (g *TokenGuard) Used(ctx context.Context, entityID, status string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(entityID, status)).Result()
	if err != nil {
		return false, fmt.Errorf("token guard check: %w", err)
	}
	return n > 0, nil
}

// MarkUsed records that the link was followed (expires after guardTTL, well
// past the useful life of any emailed document).
func (g *TokenGuard) MarkUsed(ctx context.Context, entityID, status string) error {
	return g.client.Set(ctx, g.key(entityID, status), "1", guardTTL).Err()
}

func (g *TokenGuard) key(entityID, status string) string {
	return fmt.Sprintf("capability:%s:%s", entityID, status)
}
