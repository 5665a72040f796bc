package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/directoriodominicano/backend/internal/api/middleware"
	"github.com/directoriodominicano/backend/internal/application/services"
	"github.com/directoriodominicano/backend/internal/domain/entities"
	"github.com/directoriodominicano/backend/pkg/config"
	"github.com/directoriodominicano/backend/tests/mocks"
)

func newAuthMiddleware(t *testing.T) (*middleware.AuthMiddleware, *services.AuthService, *mocks.MockUserRepository) {
	t.Helper()

	repo := mocks.NewMockUserRepository(t)
	auth := services.NewAuthService(repo, &config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
		BCryptCost:    bcrypt.MinCost,
	})
	return middleware.NewAuthMiddleware(auth), auth, repo
}

func registerAccount(t *testing.T, auth *services.AuthService, repo *mocks.MockUserRepository, role entities.Role) (*entities.User, string) {
	t.Helper()

	var stored *entities.User
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*entities.User)
	}).Return(nil).Once()

	accountType := "cliente"
	if role != entities.RoleCliente {
		accountType = "negocio"
	}
	user, token, err := auth.Register(t.Context(), services.RegisterInput{
		Email:       "ana@example.com",
		Password:    "super-secreta",
		FullName:    "Ana Reyes",
		AccountType: accountType,
	})
	require.NoError(t, err)
	require.NotNil(t, stored)

	stored.Role = role
	return user, token
}

func TestRequireAuth(t *testing.T) {
	t.Run("passes the loaded account to the handler", func(t *testing.T) {
		mw, auth, repo := newAuthMiddleware(t)
		user, token := registerAccount(t, auth, repo, entities.RoleCliente)

		repo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

		var seen *entities.User
		handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
			seen = middleware.UserFromContext(r.Context())
			w.WriteHeader(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "ana@example.com", seen.Email)
	})

	t.Run("rejects requests without a token", func(t *testing.T) {
		mw, _, _ := newAuthMiddleware(t)

		handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		rec := httptest.NewRecorder()

		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a token minted with another secret", func(t *testing.T) {
		mw, _, _ := newAuthMiddleware(t)

		foreignRepo := mocks.NewMockUserRepository(t)
		foreignRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		foreign := services.NewAuthService(foreignRepo, &config.AuthConfig{
			JWTSecret:     "other-secret",
			TokenTTLHours: 1,
			BCryptCost:    bcrypt.MinCost,
		})
		_, token, err := foreign.Register(t.Context(), services.RegisterInput{
			Email:    "eva@example.com",
			Password: "super-secreta",
			FullName: "Eva",
		})
		require.NoError(t, err)

		handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects tokens for deleted accounts", func(t *testing.T) {
		mw, auth, repo := newAuthMiddleware(t)
		user, token := registerAccount(t, auth, repo, entities.RoleCliente)

		repo.On("GetByID", mock.Anything, user.ID).
			Return(nil, assert.AnError)

		handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("forbids non-admin accounts", func(t *testing.T) {
		mw, auth, repo := newAuthMiddleware(t)
		user, token := registerAccount(t, auth, repo, entities.RoleNegocioGratis)

		repo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

		handler := mw.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/admin/businesses/pending", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admits accounts promoted to admin after the token was issued", func(t *testing.T) {
		mw, auth, repo := newAuthMiddleware(t)
		user, token := registerAccount(t, auth, repo, entities.RoleCliente)

		// The stored record is re-read per request, so the promotion
		// takes effect with the old token.
		promoted := *user
		promoted.Role = entities.RoleAdmin
		repo.On("GetByID", mock.Anything, user.ID).Return(&promoted, nil)

		handler := mw.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/admin/businesses/pending", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
