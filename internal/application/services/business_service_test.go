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

func freeOwner() *entities.User {
	return &entities.User{ID: "owner-1", Role: entities.RoleNegocioGratis}
}

func validInput() services.CreateInput {
	return services.CreateInput{
		Name:        "El Rincón, Dominicano!",
		Category:    "restaurantes",
		City:        "Barcelona",
		Description: "Cocina criolla",
		Address:     "Carrer Major 1",
		Phone:       "600111222",
	}
}

func TestBusinessService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("derives the slug and starts unapproved", func(t *testing.T) {
		repo := mocks.NewMockBusinessRepository(t)
		service := services.NewBusinessService(repo, nil, nil)

		repo.On("SlugExists", mock.Anything, "el-rincón-dominicano").Return(false, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(b *entities.Business) bool {
			return b.Slug == "el-rincón-dominicano" && !b.IsApproved && !b.IsPremium
		})).Return(nil)

		business, err := service.Create(ctx, freeOwner(), validInput())

		require.NoError(t, err)
		assert.Equal(t, "el-rincón-dominicano", business.Slug)
		assert.False(t, business.IsApproved, "new businesses await moderation")
		assert.NotEmpty(t, business.ID)
	})

	t.Run("premium owners get premium listings from the start", func(t *testing.T) {
		repo := mocks.NewMockBusinessRepository(t)
		service := services.NewBusinessService(repo, nil, nil)

		repo.On("SlugExists", mock.Anything, mock.Anything).Return(false, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(b *entities.Business) bool {
			return b.IsPremium
		})).Return(nil)

		owner := &entities.User{ID: "owner-2", Role: entities.RoleNegocioPremium}

		business, err := service.Create(ctx, owner, validInput())

		require.NoError(t, err)
		assert.True(t, business.IsPremium)
	})

	t.Run("suffixes the slug on collision", func(t *testing.T) {
		repo := mocks.NewMockBusinessRepository(t)
		service := services.NewBusinessService(repo, nil, nil)

		repo.On("SlugExists", mock.Anything, "el-rincón-dominicano").Return(true, nil).Once()
		repo.On("SlugExists", mock.Anything, "el-rincón-dominicano-2").Return(true, nil).Once()
		repo.On("SlugExists", mock.Anything, "el-rincón-dominicano-3").Return(false, nil).Once()
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		business, err := service.Create(ctx, freeOwner(), validInput())

		require.NoError(t, err)
		assert.Equal(t, "el-rincón-dominicano-3", business.Slug)
	})

	t.Run("rejects unknown categories before any write", func(t *testing.T) {
		repo := mocks.NewMockBusinessRepository(t)
		service := services.NewBusinessService(repo, nil, nil)

		input := validInput()
		input.Category = "criptomonedas"

		business, err := service.Create(ctx, freeOwner(), input)

		require.Error(t, err)
		assert.Nil(t, business)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		repo := mocks.NewMockBusinessRepository(t)
		service := services.NewBusinessService(repo, nil, nil)

		input := validInput()
		input.Name = "   "

		_, err := service.Create(ctx, freeOwner(), input)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("publishes a created event", func(t *testing.T) {
		repo := mocks.NewMockBusinessRepository(t)
		bus := mocks.NewMockEventBus(t)
		service := services.NewBusinessService(repo, nil, bus)

		repo.On("SlugExists", mock.Anything, mock.Anything).Return(false, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		bus.On("Publish", mock.Anything, "business:updates", mock.MatchedBy(func(e *entities.BusinessEvent) bool {
			return e.Type == entities.BusinessCreated
		})).Return(nil)

		_, err := service.Create(ctx, freeOwner(), validInput())

		require.NoError(t, err)
	})
}

func TestBusinessService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("only the owner can edit", func(t *testing.T) {
		repo := mocks.NewMockBusinessRepository(t)
		service := services.NewBusinessService(repo, nil, nil)

		repo.On("GetByID", mock.Anything, "biz-1").
			Return(&entities.Business{ID: "biz-1", OwnerID: "owner-1", Slug: "x"}, nil)

		stranger := &entities.User{ID: "someone-else", Role: entities.RoleNegocioGratis}

		_, err := service.Update(ctx, stranger, "biz-1", validInput())

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
	})

	t.Run("keeps the slug and re-indexes approved businesses", func(t *testing.T) {
		repo := mocks.NewMockBusinessRepository(t)
		searchRepo := mocks.NewMockBusinessSearchRepository(t)
		service := services.NewBusinessService(repo, searchRepo, nil)

		existing := &entities.Business{
			ID: "biz-1", OwnerID: "owner-1", Slug: "el-criollo",
			Name: "Viejo nombre", IsApproved: true,
		}
		repo.On("GetByID", mock.Anything, "biz-1").Return(existing, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(b *entities.Business) bool {
			return b.Slug == "el-criollo" && b.Name == "El Rincón, Dominicano!"
		})).Return(nil)
		searchRepo.On("Index", mock.Anything, mock.Anything).Return(nil)

		updated, err := service.Update(ctx, freeOwner(), "biz-1", validInput())

		require.NoError(t, err)
		assert.Equal(t, "el-criollo", updated.Slug)
	})
}
