package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/directoriodominicano/backend/internal/api/middleware"
	"github.com/directoriodominicano/backend/internal/application/services"
)

// ReviewHandler handles business reviews
type ReviewHandler struct {
	reviews *services.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// ListReviews handles GET /api/businesses/{id}/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	businessID := r.PathValue("id")
	if businessID == "" {
		respondWithError(w, http.StatusBadRequest, "business id is required")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	reviews, err := h.reviews.ListByBusiness(r.Context(), businessID, limit, offset)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// CreateReview handles POST /api/businesses/{id}/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	author := middleware.UserFromContext(r.Context())
	if author == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	businessID := r.PathValue("id")
	if businessID == "" {
		respondWithError(w, http.StatusBadRequest, "business id is required")
		return
	}

	var input struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.reviews.Create(r.Context(), author, businessID, input.Rating, input.Comment)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, review)
}
