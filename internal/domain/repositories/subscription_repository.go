package repositories

import (
	"context"

	"github.com/directoriodominicano/backend/internal/domain/entities"
)

// SubscriptionRepository defines the interface for subscription records
type SubscriptionRepository interface {
	// Activate persists a verified subscription and applies the premium
	// upgrade (user role + business flags) in a single transaction.
	Activate(ctx context.Context, sub *entities.Subscription) error

	// GetByUser retrieves the most recent subscription for a user
	GetByUser(ctx context.Context, userID string) (*entities.Subscription, error)

	// GetByProviderID retrieves a subscription by the provider's id
	GetByProviderID(ctx context.Context, providerSubscriptionID string) (*entities.Subscription, error)
}
