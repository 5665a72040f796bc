package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/directoriodominicano/backend/internal/application/services"
	"github.com/directoriodominicano/backend/internal/domain/entities"
	"github.com/directoriodominicano/backend/pkg/config"
	apperrors "github.com/directoriodominicano/backend/pkg/errors"
	"github.com/directoriodominicano/backend/tests/mocks"
)

func authConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
		BCryptCost:    bcrypt.MinCost,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a client account with a hashed password", func(t *testing.T) {
		repo := mocks.NewMockUserRepository(t)
		service := services.NewAuthService(repo, authConfig())

		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.Email == "maria@example.com" &&
				u.Role == entities.RoleCliente &&
				u.PasswordHash != "secreto123"
		})).Return(nil)

		user, token, err := service.Register(ctx, services.RegisterInput{
			Email:    "Maria@Example.com",
			Password: "secreto123",
			FullName: "María Pérez",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secreto123")))
	})

	t.Run("business sign-ups start on the free tier", func(t *testing.T) {
		repo := mocks.NewMockUserRepository(t)
		service := services.NewAuthService(repo, authConfig())

		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		user, _, err := service.Register(ctx, services.RegisterInput{
			Email:       "negocio@example.com",
			Password:    "secreto123",
			FullName:    "Dueño Negocio",
			AccountType: "negocio",
		})

		require.NoError(t, err)
		assert.Equal(t, entities.RoleNegocioGratis, user.Role)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		repo := mocks.NewMockUserRepository(t)
		service := services.NewAuthService(repo, authConfig())

		_, _, err := service.Register(ctx, services.RegisterInput{
			Email:    "x@example.com",
			Password: "corta",
			FullName: "X",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("duplicate email surfaces as conflict", func(t *testing.T) {
		repo := mocks.NewMockUserRepository(t)
		service := services.NewAuthService(repo, authConfig())

		repo.On("Create", mock.Anything, mock.Anything).
			Return(apperrors.NewConflictError("email maria@example.com already registered"))

		_, _, err := service.Register(ctx, services.RegisterInput{
			Email:    "maria@example.com",
			Password: "secreto123",
			FullName: "María Pérez",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	storedUser := func(t *testing.T) *entities.User {
		t.Helper()
		hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
		require.NoError(t, err)
		return &entities.User{
			ID:           "user-1",
			Email:        "maria@example.com",
			PasswordHash: string(hash),
			Role:         entities.RoleNegocioGratis,
		}
	}

	t.Run("returns a token carrying id and role", func(t *testing.T) {
		repo := mocks.NewMockUserRepository(t)
		service := services.NewAuthService(repo, authConfig())

		repo.On("GetByEmail", mock.Anything, "maria@example.com").Return(storedUser(t), nil)

		user, token, err := service.Login(ctx, "maria@example.com", "secreto123")

		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)

		claims, err := service.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.Subject)
		assert.Equal(t, entities.RoleNegocioGratis, claims.Role)
	})

	t.Run("wrong password and unknown email look identical", func(t *testing.T) {
		repo := mocks.NewMockUserRepository(t)
		service := services.NewAuthService(repo, authConfig())

		repo.On("GetByEmail", mock.Anything, "maria@example.com").Return(storedUser(t), nil)
		repo.On("GetByEmail", mock.Anything, "nadie@example.com").
			Return(nil, apperrors.NewNotFoundError("user not found"))

		_, _, wrongPassword := service.Login(ctx, "maria@example.com", "incorrecta1")
		_, _, unknownEmail := service.Login(ctx, "nadie@example.com", "secreto123")

		require.Error(t, wrongPassword)
		require.Error(t, unknownEmail)
		assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
		assert.True(t, apperrors.IsType(wrongPassword, apperrors.ErrorTypeUnauthorized))
	})
}

func TestAuthService_VerifyToken(t *testing.T) {
	service := services.NewAuthService(mocks.NewMockUserRepository(t), authConfig())

	t.Run("rejects garbage tokens", func(t *testing.T) {
		_, err := service.VerifyToken("not.a.token")

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	})

	t.Run("rejects tokens signed with another secret", func(t *testing.T) {
		other := services.NewAuthService(mocks.NewMockUserRepository(t), &config.AuthConfig{
			JWTSecret:     "other-secret",
			TokenTTLHours: 1,
			BCryptCost:    bcrypt.MinCost,
		})

		repo := mocks.NewMockUserRepository(t)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		_, token, err := services.NewAuthService(repo, &config.AuthConfig{
			JWTSecret:     "test-secret",
			TokenTTLHours: 1,
			BCryptCost:    bcrypt.MinCost,
		}).Register(context.Background(), services.RegisterInput{
			Email:    "x@example.com",
			Password: "secreto123",
			FullName: "X",
		})
		require.NoError(t, err)

		_, err = other.VerifyToken(token)
		require.Error(t, err)
	})
}
