package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eventflow/identity-service/internal/core/domain"
	"github.com/eventflow/identity-service/internal/core/ports"
)

const defaultLifetime = time.Hour

// TokenService implements the token lifecycle. A token's state (valid,
// expired, revoked) is never stored anywhere; it is recomputed on every
// Validate call from the expiry claim and revocation list membership.
type TokenService struct {
	secret      []byte
	method      jwt.SigningMethod
	lifetime    time.Duration
	revocations ports.RevocationList
	log         zerolog.Logger
}

// NewTokenService builds a TokenService for the given HMAC algorithm
// (HS256, HS384 or HS512). A non-positive lifetime falls back to one hour.
func NewTokenService(secret, algorithm string, lifetime time.Duration, revocations ports.RevocationList, log zerolog.Logger) (*TokenService, error) {
	var method jwt.SigningMethod
	switch algorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if secret == "" {
		return nil, errors.New("signing secret must not be empty")
	}
	if lifetime <= 0 {
		lifetime = defaultLifetime
	}
	return &TokenService{
		secret:      []byte(secret),
		method:      method,
		lifetime:    lifetime,
		revocations: revocations,
		log:         log,
	}, nil
}

// Issue mints a signed token for the user. Each issuance carries a fresh jti
// so two tokens for the same subject remain individually revocable.
func (s *TokenService) Issue(userID int64, role domain.Role) (string, error) {
	now := time.Now().UTC()
	claims := domain.TokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    domain.TokenIssuer,
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	s.log.Info().
		Int64("user_id", userID).
		Str("role", string(role)).
		Str("jti", claims.ID).
		Msg("token issued")

	return signed, nil
}

// Validate checks a token in three short-circuiting steps: revocation list
// lookup, signature verification, expiry. A token that fails signature or
// expiry is poisoned into the revocation list so replaying the same bytes
// never costs more than the set lookup and can never flip to a different
// outcome.
func (s *TokenService) Validate(ctx context.Context, raw string) (*domain.TokenClaims, error) {
	revoked, err := s.revocations.IsRevoked(ctx, revocationKey(raw))
	if err != nil {
		return nil, fmt.Errorf("revocation lookup: %w", err)
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}

	claims := &domain.TokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, s.keyFunc,
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithIssuer(domain.TokenIssuer),
	)
	switch {
	case err == nil && token.Valid:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		// Signature checked out, only the clock ran past exp.
		s.poison(ctx, raw, claims.ExpiresAt, claims.ID)
		return nil, domain.ErrTokenExpired
	default:
		// Bad signature, bad structure or wrong issuer/algorithm. The claims
		// are untrusted, so the entry is retained for a full lifetime.
		s.poison(ctx, raw, nil, "")
		return nil, domain.ErrTokenMalformed
	}
}

// Revoke adds a token to the revocation list. Expiry is deliberately ignored
// when parsing: "this credential must never again be honored" has to be
// satisfiable even for an already-expired token. A token that does not parse
// at all is still recorded under its raw-bytes digest so a replay of those
// exact bytes is blocked.
func (s *TokenService) Revoke(ctx context.Context, raw string) error {
	expiresAt := time.Now().UTC().Add(s.lifetime)
	jti := ""

	claims := &domain.TokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, s.keyFunc,
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err == nil {
		jti = claims.ID
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}
	}

	if err := s.revocations.Revoke(ctx, revocationKey(raw), expiresAt); err != nil {
		return fmt.Errorf("record revocation: %w", err)
	}

	s.log.Info().Str("jti", jti).Msg("token revoked")
	return nil
}

// poison records a token that failed validation. The validation outcome is
// already decided at this point, so a store failure is only logged.
func (s *TokenService) poison(ctx context.Context, raw string, expiresAt *jwt.NumericDate, jti string) {
	deadline := time.Now().UTC().Add(s.lifetime)
	if expiresAt != nil {
		deadline = expiresAt.Time
	}
	if err := s.revocations.Revoke(ctx, revocationKey(raw), deadline); err != nil {
		s.log.Warn().Err(err).Str("jti", jti).Msg("failed to record poisoned token")
	}
}

func (s *TokenService) keyFunc(_ *jwt.Token) (any, error) {
	return s.secret, nil
}

// revocationKey derives the revocation list key from the raw compact token.
// A digest of the full bytes keeps the key constant-size and lets the revoked
// check run before any parsing, which also covers tokens too mangled to carry
// a readable jti.
func revocationKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
