package ports

import (
	"context"

	"github.com/payrollhq/payroll-system/internal/core/domain"
)

// AuthRepository is the persistence interface for user credentials. Email
// uniqueness is enforced by the store's own unique constraint, not by
// application-level locking.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
