package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/directoriodominicano/backend/internal/api/middleware"
	"github.com/directoriodominicano/backend/internal/application/services"
)

// BusinessHandler handles owner-side business management
type BusinessHandler struct {
	business *services.BusinessService
}

// NewBusinessHandler creates a new business handler
func NewBusinessHandler(business *services.BusinessService) *BusinessHandler {
	return &BusinessHandler{business: business}
}

// CreateBusiness handles POST /api/businesses
func (h *BusinessHandler) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	owner := middleware.UserFromContext(r.Context())
	if owner == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input services.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	business, err := h.business.Create(r.Context(), owner, input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, business)
}

// UpdateBusiness handles PATCH /api/businesses/{id}
func (h *BusinessHandler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())
	if actor == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "business id is required")
		return
	}

	var input services.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	business, err := h.business.Update(r.Context(), actor, id, input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, business)
}

// ListOwnBusinesses handles GET /api/my/businesses
func (h *BusinessHandler) ListOwnBusinesses(w http.ResponseWriter, r *http.Request) {
	owner := middleware.UserFromContext(r.Context())
	if owner == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	businesses, err := h.business.ListByOwner(r.Context(), owner.ID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"businesses": businesses,
		"count":      len(businesses),
	})
}
