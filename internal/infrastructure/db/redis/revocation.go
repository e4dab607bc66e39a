package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eventflow/identity-service/internal/core/domain"
)

// minRetention keeps entries for already-expired tokens around briefly so a
// revoke-then-validate sequence still observes the revocation.
const minRetention = time.Minute

// RevocationList stores revoked token keys in Redis with a per-entry TTL
// equal to the token's remaining lifetime, so entries self-expire and survive
// process restarts and scale-out.
// Key format: revoked:<token digest>
type RevocationList struct {
	client *redis.Client
}

// NewRevocationList creates a RevocationList wrapping the given Redis client.
func NewRevocationList(client *redis.Client) *RevocationList {
	return &RevocationList{client: client}
}

// Revoke records the key until expiresAt. The same token bytes always derive
// the same expiry, so re-revoking is an idempotent overwrite.
func (r *RevocationList) Revoke(ctx context.Context, key string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl < minRetention {
		ttl = minRetention
	}
	if err := r.client.Set(ctx, r.key(key), "1", ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// IsRevoked reports whether the key is present.
func (r *RevocationList) IsRevoked(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: redis exists: %v", domain.ErrStorageUnavailable, err)
	}
	return n > 0, nil
}

func (r *RevocationList) key(digest string) string {
	return fmt.Sprintf("revoked:%s", digest)
}
