package ports

import (
	"context"
	"time"
)

// RevocationList is the shared set of revoked token keys. Entries are never
// un-revoked; they may only disappear once expiresAt has passed, since an
// expired token can never validate again.
//
// Implementations must be safe for concurrent use: once a Revoke call for a
// key returns, every subsequent IsRevoked call for that key reports true.
type RevocationList interface {
	Revoke(ctx context.Context, key string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, key string) (bool, error)
}
