package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventflow/identity-service/internal/core/domain"
	"github.com/eventflow/identity-service/internal/core/ports"
)

// CredentialService implements user creation and password verification.
type CredentialService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewCredentialService(repo ports.UserRepository, log zerolog.Logger) *CredentialService {
	return &CredentialService{repo: repo, log: log}
}

// CreateUser hashes the password with bcrypt at the default cost and persists
// a new record. Email uniqueness is enforced by the repository, not here, so
// concurrent registrations cannot race past an application-level check.
func (s *CredentialService) CreateUser(ctx context.Context, email, password, role string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	parsed, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         parsed,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("user_id", created.ID).
		Str("role", string(created.Role)).
		Msg("user created")

	return created, nil
}

// VerifyCredentials looks up the user and compares the candidate password
// against the stored hash. bcrypt's comparison is constant-time; raw strings
// are never compared. Unknown email and wrong password collapse into the same
// error so responses cannot be used to probe which emails are registered.
func (s *CredentialService) VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
