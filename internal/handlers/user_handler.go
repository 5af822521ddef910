package handlers

import (
	"net/http"

	"ismaalAdmin/internal/services"
)

// UserHandler exposes marketplace accounts read-only, plus delete.
type UserHandler struct {
	Service *services.UserService
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.List(r.Context(), entityQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.Get(r.Context(), entityID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), entityID(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
