package handlers

import (
	"net/http"

	"ismaalAdmin/internal/models"
	"ismaalAdmin/internal/services"
)

type BusinessHandler struct {
	Service *services.BusinessService
}

func (h *BusinessHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.List(r.Context(), entityQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *BusinessHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.Get(r.Context(), entityID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *BusinessHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), entityID(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Update forwards the edit form. The acting admin id goes upstream as
// the x-user-id header.
func (h *BusinessHandler) Update(w http.ResponseWriter, r *http.Request) {
	admin, ok := AdminFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, CodeUnauthorized, "Not authenticated")
		return
	}
	var form models.BusinessUpdate
	if err := decodeBody(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, CodeBadRequest, "Invalid body")
		return
	}

	updated, err := h.Service.Update(r.Context(), entityID(r), form, admin.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
