package repository

import (
	"context"
	"time"

	"github.com/freshtrack/freshtrack/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByResetTokenHash finds the user holding the given reset-token hash
	// whose expiry is still in the future (inclusive of now).
	GetByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	// GetByID is owner-scoped: a product that exists but belongs to another
	// owner is reported as not found.
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Product, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.Product, error)
	// Update applies fields to the row matching (id, owner_id) in a single
	// conditioned statement and returns the number of rows affected.
	Update(ctx context.Context, id, ownerID uuid.UUID, fields map[string]interface{}) (int64, error)
	// Delete removes the row matching (id, owner_id) and returns the number
	// of rows affected.
	Delete(ctx context.Context, id, ownerID uuid.UUID) (int64, error)
	DeleteByOwnerID(ctx context.Context, ownerID uuid.UUID) error
}

type Repositories struct {
	User    UserRepository
	Product ProductRepository
}
