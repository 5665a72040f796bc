package entities

import (
	"time"
)

// SubscriptionStatus mirrors the provider-side subscription state
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
	SubscriptionExpired   SubscriptionStatus = "EXPIRED"
)

// Subscription records a verified premium subscription. A row is only
// written after the provider confirmed the subscription server-side.
type Subscription struct {
	ID                     string             `json:"id" db:"id"`
	UserID                 string             `json:"user_id" db:"user_id"`
	ProviderSubscriptionID string             `json:"provider_subscription_id" db:"provider_subscription_id"`
	Plan                   string             `json:"plan" db:"plan"`
	Status                 SubscriptionStatus `json:"status" db:"status"`
	ActivatedAt            time.Time          `json:"activated_at" db:"activated_at"`
	ExpiresAt              *time.Time         `json:"expires_at,omitempty" db:"expires_at"`
	CreatedAt              time.Time          `json:"created_at" db:"created_at"`
}
