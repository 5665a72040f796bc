package handlers

import (
	"net/http"

	"github.com/directoriodominicano/backend/internal/application/services"
)

// AdminHandler handles the moderation queue. Routes carrying this
// handler sit behind the admin-role middleware.
type AdminHandler struct {
	moderation *services.ModerationService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(moderation *services.ModerationService) *AdminHandler {
	return &AdminHandler{moderation: moderation}
}

// ListPending handles GET /api/admin/businesses/pending
func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.moderation.Pending(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"businesses": pending,
		"count":      len(pending),
	})
}

// ApproveBusiness handles POST /api/admin/businesses/{id}/approve
func (h *AdminHandler) ApproveBusiness(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "business id is required")
		return
	}

	business, err := h.moderation.Approve(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, business)
}

// RevokeBusiness handles POST /api/admin/businesses/{id}/revoke. The
// business drops out of the public listing but its record survives, so
// approval can be granted again later.
func (h *AdminHandler) RevokeBusiness(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "business id is required")
		return
	}

	if err := h.moderation.Revoke(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RejectBusiness handles DELETE /api/admin/businesses/{id}
func (h *AdminHandler) RejectBusiness(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "business id is required")
		return
	}

	if err := h.moderation.Reject(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
