package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/directoriodominicano/backend/internal/api/middleware"
	"github.com/directoriodominicano/backend/internal/application/services"
	apperrors "github.com/directoriodominicano/backend/pkg/errors"
)

// SubscriptionHandler handles premium subscription activation
type SubscriptionHandler struct {
	subscriptions *services.SubscriptionService
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptions *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

// Activate handles POST /api/subscriptions/activate. The request
// carries the provider subscription id from the approval callback; the
// upgrade applies only after server-side verification.
func (h *SubscriptionHandler) Activate(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input struct {
		SubscriptionID string `json:"subscription_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := h.subscriptions.Activate(r.Context(), user.ID, input.SubscriptionID)
	if err != nil {
		// Verification failures mean no payment went through
		if apperrors.IsType(err, apperrors.ErrorTypeExternal) {
			respondWithError(w, http.StatusPaymentRequired, "subscription could not be verified")
			return
		}
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, sub)
}

// Current handles GET /api/subscriptions/current
func (h *SubscriptionHandler) Current(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	sub, err := h.subscriptions.Current(r.Context(), user.ID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, sub)
}
