package ports

import (
	"context"

	"github.com/eventflow/identity-service/internal/core/domain"
)

// UserRepository defines the interface for identity record persistence.
// Create must enforce email uniqueness at the storage layer so two concurrent
// registrations with the same email cannot both succeed.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
