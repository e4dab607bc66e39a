package ports

import (
	"context"

	"github.com/eventflow/identity-service/internal/core/domain"
)

// CredentialService owns password hashing and verification on top of the
// user repository.
type CredentialService interface {
	// CreateUser validates the role against the closed set, hashes the
	// password and persists a new record. Fails with domain.ErrInvalidRole
	// or domain.ErrEmailTaken.
	CreateUser(ctx context.Context, email, password, role string) (*domain.User, error)

	// VerifyCredentials returns the user when email and password match.
	// Unknown email and wrong password both yield domain.ErrInvalidCredentials.
	VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error)
}
