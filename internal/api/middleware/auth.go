package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/directoriodominicano/backend/internal/application/services"
	"github.com/directoriodominicano/backend/internal/domain/entities"
)

type contextKey string

// userContextKey carries the authenticated user through the request
const userContextKey contextKey = "auth.user"

// UserFromContext returns the authenticated user, or nil on public routes
func UserFromContext(ctx context.Context) *entities.User {
	user, _ := ctx.Value(userContextKey).(*entities.User)
	return user
}

// AuthMiddleware verifies the bearer token and loads the account. The
// stored record is re-read on every request, so role changes (premium
// upgrade, demotion) take effect without re-login.
type AuthMiddleware struct {
	auth *services.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(auth *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAuth rejects requests without a valid bearer token
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := m.authenticate(w, r)
		if !ok {
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	}
}

// RequireAdmin rejects requests whose account lacks the admin role
func (m *AuthMiddleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := m.authenticate(w, r)
		if !ok {
			return
		}

		if !user.IsAdmin() {
			writeAuthError(w, http.StatusForbidden, "admin role required")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	}
}

func (m *AuthMiddleware) authenticate(w http.ResponseWriter, r *http.Request) (*entities.User, bool) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		writeAuthError(w, http.StatusUnauthorized, "missing bearer token")
		return nil, false
	}

	claims, err := m.auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		writeAuthError(w, http.StatusUnauthorized, "invalid or expired token")
		return nil, false
	}

	user, err := m.auth.Profile(r.Context(), claims.Subject)
	if err != nil {
		writeAuthError(w, http.StatusUnauthorized, "account no longer exists")
		return nil, false
	}

	return user, true
}

func writeAuthError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
