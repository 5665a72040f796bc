package routes

import (
	"net/http"

	"github.com/directoriodominicano/backend/internal/api/handlers"
	"github.com/directoriodominicano/backend/internal/api/middleware"
	"github.com/directoriodominicano/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	directoryHandler    *handlers.DirectoryHandler
	businessHandler     *handlers.BusinessHandler
	authHandler         *handlers.AuthHandler
	adminHandler        *handlers.AdminHandler
	reviewHandler       *handlers.ReviewHandler
	subscriptionHandler *handlers.SubscriptionHandler
	referenceHandler    *handlers.ReferenceHandler

	authMiddleware  *middleware.AuthMiddleware
	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	directoryHandler *handlers.DirectoryHandler,
	businessHandler *handlers.BusinessHandler,
	authHandler *handlers.AuthHandler,
	adminHandler *handlers.AdminHandler,
	reviewHandler *handlers.ReviewHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	referenceHandler *handlers.ReferenceHandler,
	authMiddleware *middleware.AuthMiddleware,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                 http.NewServeMux(),
		directoryHandler:    directoryHandler,
		businessHandler:     businessHandler,
		authHandler:         authHandler,
		adminHandler:        adminHandler,
		reviewHandler:       reviewHandler,
		subscriptionHandler: subscriptionHandler,
		referenceHandler:    referenceHandler,
		authMiddleware:      authMiddleware,
		cacheMiddleware:     cacheMiddleware,
		metrics:             metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Public directory
	r.mux.HandleFunc("GET /api/businesses", r.directoryHandler.ListBusinesses)
	r.mux.HandleFunc("GET /api/businesses/{slug}", r.directoryHandler.GetBusiness)
	r.mux.HandleFunc("POST /api/businesses/{id}/view", r.directoryHandler.RecordView)
	r.mux.HandleFunc("POST /api/businesses/{id}/click", r.directoryHandler.RecordClick)

	// Reference data
	r.mux.HandleFunc("GET /api/categories", r.referenceHandler.ListCategories)
	r.mux.HandleFunc("GET /api/cities", r.referenceHandler.ListCities)

	// Reviews
	r.mux.HandleFunc("GET /api/businesses/{id}/reviews", r.reviewHandler.ListReviews)
	r.mux.HandleFunc("POST /api/businesses/{id}/reviews", r.authMiddleware.RequireAuth(r.reviewHandler.CreateReview))

	// Accounts
	r.mux.HandleFunc("POST /api/auth/register", r.authHandler.Register)
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	r.mux.HandleFunc("GET /api/auth/me", r.authMiddleware.RequireAuth(r.authHandler.Me))

	// Owner-side management
	r.mux.HandleFunc("POST /api/businesses", r.authMiddleware.RequireAuth(r.businessHandler.CreateBusiness))
	r.mux.HandleFunc("PATCH /api/businesses/{id}", r.authMiddleware.RequireAuth(r.businessHandler.UpdateBusiness))
	r.mux.HandleFunc("GET /api/my/businesses", r.authMiddleware.RequireAuth(r.businessHandler.ListOwnBusinesses))

	// Moderation
	r.mux.HandleFunc("GET /api/admin/businesses/pending", r.authMiddleware.RequireAdmin(r.adminHandler.ListPending))
	r.mux.HandleFunc("POST /api/admin/businesses/{id}/approve", r.authMiddleware.RequireAdmin(r.adminHandler.ApproveBusiness))
	r.mux.HandleFunc("POST /api/admin/businesses/{id}/revoke", r.authMiddleware.RequireAdmin(r.adminHandler.RevokeBusiness))
	r.mux.HandleFunc("DELETE /api/admin/businesses/{id}", r.authMiddleware.RequireAdmin(r.adminHandler.RejectBusiness))

	// Subscriptions
	r.mux.HandleFunc("POST /api/subscriptions/activate", r.authMiddleware.RequireAuth(r.subscriptionHandler.Activate))
	r.mux.HandleFunc("GET /api/subscriptions/current", r.authMiddleware.RequireAuth(r.subscriptionHandler.Current))

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.CORSMiddleware(handler)

	return handler
}
