package handlers

import (
	"net/http"

	"github.com/directoriodominicano/backend/internal/domain/entities"
)

// ReferenceHandler serves the static reference data the front-end
// renders its filter controls from
type ReferenceHandler struct{}

// NewReferenceHandler creates a new reference data handler
func NewReferenceHandler() *ReferenceHandler {
	return &ReferenceHandler{}
}

// ListCategories handles GET /api/categories
func (h *ReferenceHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"categories": entities.Categories,
	})
}

// ListCities handles GET /api/cities
func (h *ReferenceHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"cities":  entities.Cities,
		"default": "Barcelona",
	})
}
