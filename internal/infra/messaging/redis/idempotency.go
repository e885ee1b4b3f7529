package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/Vinamra-Agarwal/CareChain/internal/node"
)

// idempotencyKey builds the key marking an inbound event as claimed.
func idempotencyKey(eventID string) string {
	return fmt.Sprintf("%s:idempotency:%s", channelPrefix, eventID)
}

// ClaimEvent reserves eventID for the caller. It reports false when another
// node already claimed the same event within ttl.
func (c *client) ClaimEvent(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	return c.conn.SetNX(ctx, idempotencyKey(eventID), time.Now().UTC().Format(time.RFC3339Nano), ttl).Result()
}

// Ensure the client satisfies the IdempotencyGuard interface at compile time.
var _ node.IdempotencyGuard = (*client)(nil)
