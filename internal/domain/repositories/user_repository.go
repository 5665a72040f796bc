package repositories

import (
	"context"

	"github.com/directoriodominicano/backend/internal/domain/entities"
)

// UserRepository defines the interface for user account operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// Update updates a user profile
	Update(ctx context.Context, user *entities.User) error

	// UpdateRole changes the user's role
	UpdateRole(ctx context.Context, id string, role entities.Role) error
}

// ReviewRepository defines the interface for review operations.
// Reviews have no update or delete path; they are immutable.
type ReviewRepository interface {
	// Create creates a new review
	Create(ctx context.Context, review *entities.Review) error

	// ListByBusiness retrieves reviews for a business, newest first
	ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]*entities.Review, error)

	// AggregateForBusiness returns the rating average and count
	AggregateForBusiness(ctx context.Context, businessID string) (avg float64, count int, err error)
}
