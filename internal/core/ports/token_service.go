package ports

import (
	"context"

	"github.com/eventflow/identity-service/internal/core/domain"
)

// TokenService governs the token lifecycle: issue, validate, revoke.
type TokenService interface {
	// Issue mints a signed token for the user with a fresh token id.
	Issue(userID int64, role domain.Role) (string, error)

	// Validate checks revocation, signature and expiry, in that order, and
	// returns the verified claims. Failures come back as
	// domain.ErrTokenRevoked, domain.ErrTokenExpired or
	// domain.ErrTokenMalformed; expired and malformed tokens are recorded in
	// the revocation list as a side effect.
	Validate(ctx context.Context, raw string) (*domain.TokenClaims, error)

	// Revoke permanently invalidates a token. Expired and even unparsable
	// tokens are still recorded; the only visible failure is an unreachable
	// revocation store.
	Revoke(ctx context.Context, raw string) error
}
