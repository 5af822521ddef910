package handlers

import (
	"net/http"

	"ismaalAdmin/internal/services"
)

type ProfessionalHandler struct {
	Service *services.ProfessionalService
}

func (h *ProfessionalHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.List(r.Context(), entityQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *ProfessionalHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.Get(r.Context(), entityID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *ProfessionalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), entityID(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
