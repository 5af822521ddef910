package handlers

import (
	"net/http"

	"ismaalAdmin/internal/services"
)

type ProductHandler struct {
	Service *services.ProductService
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.List(r.Context(), entityQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.Get(r.Context(), entityID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), entityID(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
