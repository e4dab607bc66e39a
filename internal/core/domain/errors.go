package domain

import "errors"

// Credential errors. ErrInvalidCredentials deliberately covers both "no such
// user" and "wrong password" so Authenticate responses cannot be used to
// enumerate registered emails.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserNotFound       = errors.New("user not found")
)

// Token errors. All three are terminal: once a token validates to one of
// these, no later call can return it to valid.
var (
	ErrTokenRevoked   = errors.New("token revoked")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)

// ErrStorageUnavailable marks infrastructure failures (database or revocation
// store unreachable). Callers must be able to tell "denied" apart from
// "the service could not answer", so this is never folded into a business
// failure.
var ErrStorageUnavailable = errors.New("storage unavailable")
