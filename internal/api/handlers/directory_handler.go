package handlers

import (
	"net/http"

	"github.com/directoriodominicano/backend/internal/api/query"
	"github.com/directoriodominicano/backend/internal/application/services"
)

// DirectoryHandler serves the public listing and business profiles
type DirectoryHandler struct {
	directory *services.DirectoryService
	business  *services.BusinessService
	cityDef   string
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(directory *services.DirectoryService, business *services.BusinessService, defaultCity string) *DirectoryHandler {
	return &DirectoryHandler{
		directory: directory,
		business:  business,
		cityDef:   defaultCity,
	}
}

// ListBusinesses handles GET /api/businesses
func (h *DirectoryHandler) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	state := query.Parse(r.URL.Query(), h.cityDef)

	listing := h.directory.Fetch(r.Context(), state)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"businesses": listing.Businesses,
		"count":      len(listing.Businesses),
		"fallback":   listing.FromFallback,
		"filters": map[string]string{
			"search":   state.Search,
			"category": state.Category,
			"city":     state.City,
		},
	})
}

// GetBusiness handles GET /api/businesses/{slug}
func (h *DirectoryHandler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		respondWithError(w, http.StatusBadRequest, "business slug is required")
		return
	}

	business, err := h.directory.GetBySlug(r.Context(), slug)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, business)
}

// RecordView handles POST /api/businesses/{id}/view
func (h *DirectoryHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	if err := h.business.RecordView(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordClick handles POST /api/businesses/{id}/click
func (h *DirectoryHandler) RecordClick(w http.ResponseWriter, r *http.Request) {
	if err := h.business.RecordClick(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
