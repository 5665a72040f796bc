package providers

import (
	"context"
	"time"
)

// ProviderSubscription is the provider-side view of a subscription
type ProviderSubscription struct {
	ID            string
	PlanID        string
	Status        string
	NextBillingAt *time.Time
}

// PaymentProvider verifies subscriptions against the hosted checkout
// provider. The client-side approval callback is never trusted on its
// own; activation requires a server-side status check through this
// interface.
type PaymentProvider interface {
	// GetSubscription fetches the subscription state from the provider
	GetSubscription(ctx context.Context, subscriptionID string) (*ProviderSubscription, error)
}
