package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/directoriodominicano/backend/internal/domain/entities"
	"github.com/directoriodominicano/backend/internal/domain/providers"
	"github.com/directoriodominicano/backend/internal/domain/repositories"
	apperrors "github.com/directoriodominicano/backend/pkg/errors"
)

// SubscriptionService verifies premium subscriptions with the payment
// provider and applies the upgrade. The client-side approval callback
// is never trusted on its own.
type SubscriptionService struct {
	repo     repositories.SubscriptionRepository
	payment  providers.PaymentProvider
	eventBus providers.EventBus
	planID   string
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(
	repo repositories.SubscriptionRepository,
	payment providers.PaymentProvider,
	eventBus providers.EventBus,
	planID string,
) *SubscriptionService {
	return &SubscriptionService{
		repo:     repo,
		payment:  payment,
		eventBus: eventBus,
		planID:   planID,
	}
}

// Activate verifies a subscription server-side and, only if the
// provider reports it ACTIVE, applies the premium upgrade in one
// transaction. Nothing is persisted on verification failure.
func (s *SubscriptionService) Activate(ctx context.Context, userID, providerSubscriptionID string) (*entities.Subscription, error) {
	if providerSubscriptionID == "" {
		return nil, apperrors.NewValidationError("subscription id is required")
	}
	if s.payment == nil {
		return nil, apperrors.NewUnavailableError("payment provider not configured", nil)
	}

	// A provider subscription can back at most one upgrade. The unique
	// constraint on the table is the backstop; the check here gives the
	// caller a proper conflict instead of a failed transaction.
	if existing, err := s.repo.GetByProviderID(ctx, providerSubscriptionID); err == nil && existing != nil {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("subscription %s already activated", providerSubscriptionID))
	} else if err != nil && !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}

	providerSub, err := s.payment.GetSubscription(ctx, providerSubscriptionID)
	if err != nil {
		return nil, err
	}

	// Verification failures share the External type so the activation
	// endpoint can answer them all with 402.
	if providerSub.Status != string(entities.SubscriptionActive) {
		return nil, apperrors.NewExternalError(
			fmt.Sprintf("subscription %s is %s, not ACTIVE", providerSubscriptionID, providerSub.Status), nil)
	}
	if s.planID != "" && providerSub.PlanID != s.planID {
		return nil, apperrors.NewExternalError(
			fmt.Sprintf("subscription %s belongs to plan %s", providerSubscriptionID, providerSub.PlanID), nil)
	}

	now := time.Now()
	sub := &entities.Subscription{
		ID:                     uuid.New().String(),
		UserID:                 userID,
		ProviderSubscriptionID: providerSub.ID,
		Plan:                   providerSub.PlanID,
		Status:                 entities.SubscriptionActive,
		ActivatedAt:            now,
		ExpiresAt:              providerSub.NextBillingAt,
		CreatedAt:              now,
	}

	if err := s.repo.Activate(ctx, sub); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		event := &entities.BusinessEvent{
			ID:         uuid.New().String(),
			Type:       entities.BusinessUpgraded,
			OccurredAt: now,
		}
		if err := s.eventBus.Publish(ctx, providers.EventChannelBusinessUpdates, event); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("failed to publish upgrade event")
		}
	}

	return sub, nil
}

// Current returns the user's most recent subscription
func (s *SubscriptionService) Current(ctx context.Context, userID string) (*entities.Subscription, error) {
	return s.repo.GetByUser(ctx, userID)
}
