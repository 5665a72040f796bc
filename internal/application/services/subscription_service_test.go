package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/directoriodominicano/backend/internal/application/services"
	"github.com/directoriodominicano/backend/internal/domain/entities"
	"github.com/directoriodominicano/backend/internal/domain/providers"
	apperrors "github.com/directoriodominicano/backend/pkg/errors"
	"github.com/directoriodominicano/backend/tests/mocks"
)

func TestSubscriptionService_Activate(t *testing.T) {
	ctx := context.Background()

	t.Run("activates after the provider confirms ACTIVE", func(t *testing.T) {
		repo := mocks.NewMockSubscriptionRepository(t)
		payment := mocks.NewMockPaymentProvider(t)
		service := services.NewSubscriptionService(repo, payment, nil, "P-PREMIUM")

		repo.On("GetByProviderID", mock.Anything, "I-ABC123").
			Return(nil, apperrors.NewNotFoundError("subscription not found"))
		payment.On("GetSubscription", mock.Anything, "I-ABC123").Return(&providers.ProviderSubscription{
			ID:     "I-ABC123",
			PlanID: "P-PREMIUM",
			Status: "ACTIVE",
		}, nil)
		repo.On("Activate", mock.Anything, mock.MatchedBy(func(s *entities.Subscription) bool {
			return s.UserID == "user-1" &&
				s.ProviderSubscriptionID == "I-ABC123" &&
				s.Status == entities.SubscriptionActive
		})).Return(nil)

		sub, err := service.Activate(ctx, "user-1", "I-ABC123")

		require.NoError(t, err)
		assert.Equal(t, entities.SubscriptionActive, sub.Status)
	})

	t.Run("persists nothing when the provider reports another status", func(t *testing.T) {
		repo := mocks.NewMockSubscriptionRepository(t)
		payment := mocks.NewMockPaymentProvider(t)
		service := services.NewSubscriptionService(repo, payment, nil, "P-PREMIUM")

		repo.On("GetByProviderID", mock.Anything, "I-ABC123").
			Return(nil, apperrors.NewNotFoundError("subscription not found"))
		payment.On("GetSubscription", mock.Anything, "I-ABC123").Return(&providers.ProviderSubscription{
			ID:     "I-ABC123",
			PlanID: "P-PREMIUM",
			Status: "APPROVAL_PENDING",
		}, nil)

		sub, err := service.Activate(ctx, "user-1", "I-ABC123")

		require.Error(t, err)
		assert.Nil(t, sub)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
		repo.AssertNotCalled(t, "Activate", mock.Anything, mock.Anything)
	})

	t.Run("rejects subscriptions from another plan", func(t *testing.T) {
		repo := mocks.NewMockSubscriptionRepository(t)
		payment := mocks.NewMockPaymentProvider(t)
		service := services.NewSubscriptionService(repo, payment, nil, "P-PREMIUM")

		repo.On("GetByProviderID", mock.Anything, "I-OTRO").
			Return(nil, apperrors.NewNotFoundError("subscription not found"))
		payment.On("GetSubscription", mock.Anything, "I-OTRO").Return(&providers.ProviderSubscription{
			ID:     "I-OTRO",
			PlanID: "P-CHEAPO",
			Status: "ACTIVE",
		}, nil)

		_, err := service.Activate(ctx, "user-1", "I-OTRO")

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
	})

	t.Run("propagates provider verification failures", func(t *testing.T) {
		repo := mocks.NewMockSubscriptionRepository(t)
		payment := mocks.NewMockPaymentProvider(t)
		service := services.NewSubscriptionService(repo, payment, nil, "")

		repo.On("GetByProviderID", mock.Anything, "I-DOWN").
			Return(nil, apperrors.NewNotFoundError("subscription not found"))
		payment.On("GetSubscription", mock.Anything, "I-DOWN").
			Return(nil, apperrors.NewExternalError("PayPal returned status 500", nil))

		_, err := service.Activate(ctx, "user-1", "I-DOWN")

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
		repo.AssertNotCalled(t, "Activate", mock.Anything, mock.Anything)
	})

	t.Run("rejects a subscription id that already backed an upgrade", func(t *testing.T) {
		repo := mocks.NewMockSubscriptionRepository(t)
		payment := mocks.NewMockPaymentProvider(t)
		service := services.NewSubscriptionService(repo, payment, nil, "P-PREMIUM")

		repo.On("GetByProviderID", mock.Anything, "I-USED").
			Return(&entities.Subscription{ID: "sub-1", ProviderSubscriptionID: "I-USED"}, nil)

		_, err := service.Activate(ctx, "user-2", "I-USED")

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
		payment.AssertNotCalled(t, "GetSubscription", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Activate", mock.Anything, mock.Anything)
	})

	t.Run("requires a configured provider", func(t *testing.T) {
		repo := mocks.NewMockSubscriptionRepository(t)
		service := services.NewSubscriptionService(repo, nil, nil, "")

		_, err := service.Activate(ctx, "user-1", "I-ABC123")

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))
	})

	t.Run("requires a subscription id", func(t *testing.T) {
		repo := mocks.NewMockSubscriptionRepository(t)
		payment := mocks.NewMockPaymentProvider(t)
		service := services.NewSubscriptionService(repo, payment, nil, "")

		_, err := service.Activate(ctx, "user-1", "")

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}
