package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/directoriodominicano/backend/internal/application/services"
	"github.com/directoriodominicano/backend/internal/domain/entities"
	apperrors "github.com/directoriodominicano/backend/pkg/errors"
	"github.com/directoriodominicano/backend/tests/mocks"
)

func reviewAuthor() *entities.User {
	return &entities.User{ID: "user-1", FullName: "María Pérez", Role: entities.RoleCliente}
}

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("writes the review and refreshes the aggregate", func(t *testing.T) {
		reviewRepo := mocks.NewMockReviewRepository(t)
		businessRepo := mocks.NewMockBusinessRepository(t)
		service := services.NewReviewService(reviewRepo, businessRepo, nil)

		businessRepo.On("GetByID", mock.Anything, "biz-1").
			Return(&entities.Business{ID: "biz-1", IsApproved: true}, nil)
		reviewRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.Review) bool {
			return r.BusinessID == "biz-1" && r.Rating == 5 && r.UserName == "María Pérez"
		})).Return(nil)
		reviewRepo.On("AggregateForBusiness", mock.Anything, "biz-1").Return(4.75, 8, nil)
		businessRepo.On("UpdateRating", mock.Anything, "biz-1", 4.75, 8).Return(nil)

		review, err := service.Create(ctx, reviewAuthor(), "biz-1", 5, "Excelente comida")

		require.NoError(t, err)
		assert.Equal(t, 5, review.Rating)
	})

	t.Run("rejects out-of-range ratings", func(t *testing.T) {
		service := services.NewReviewService(
			mocks.NewMockReviewRepository(t), mocks.NewMockBusinessRepository(t), nil)

		for _, rating := range []int{0, 6, -1} {
			_, err := service.Create(ctx, reviewAuthor(), "biz-1", rating, "")
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		}
	})

	t.Run("unapproved businesses cannot be reviewed", func(t *testing.T) {
		reviewRepo := mocks.NewMockReviewRepository(t)
		businessRepo := mocks.NewMockBusinessRepository(t)
		service := services.NewReviewService(reviewRepo, businessRepo, nil)

		businessRepo.On("GetByID", mock.Anything, "biz-2").
			Return(&entities.Business{ID: "biz-2", IsApproved: false}, nil)

		_, err := service.Create(ctx, reviewAuthor(), "biz-2", 4, "")

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
		reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("a second review from the same user conflicts", func(t *testing.T) {
		reviewRepo := mocks.NewMockReviewRepository(t)
		businessRepo := mocks.NewMockBusinessRepository(t)
		service := services.NewReviewService(reviewRepo, businessRepo, nil)

		businessRepo.On("GetByID", mock.Anything, "biz-1").
			Return(&entities.Business{ID: "biz-1", IsApproved: true}, nil)
		reviewRepo.On("Create", mock.Anything, mock.Anything).
			Return(apperrors.NewConflictError("user has already reviewed this business"))

		_, err := service.Create(ctx, reviewAuthor(), "biz-1", 4, "otra vez")

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	})

	t.Run("aggregate failure does not fail the write", func(t *testing.T) {
		reviewRepo := mocks.NewMockReviewRepository(t)
		businessRepo := mocks.NewMockBusinessRepository(t)
		service := services.NewReviewService(reviewRepo, businessRepo, nil)

		businessRepo.On("GetByID", mock.Anything, "biz-1").
			Return(&entities.Business{ID: "biz-1", IsApproved: true}, nil)
		reviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		reviewRepo.On("AggregateForBusiness", mock.Anything, "biz-1").
			Return(0.0, 0, apperrors.NewInternalError("aggregate failed", assert.AnError))

		review, err := service.Create(ctx, reviewAuthor(), "biz-1", 3, "")

		require.NoError(t, err)
		assert.NotNil(t, review)
	})
}
