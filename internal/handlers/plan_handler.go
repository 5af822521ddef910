package handlers

import (
	"net/http"

	"ismaalAdmin/internal/models"
	"ismaalAdmin/internal/services"
)

type PlanHandler struct {
	Service *services.PlanService
}

func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.List(r.Context(), entityQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.Get(r.Context(), entityID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *PlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), entityID(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	var form models.PlanUpdate
	if err := decodeBody(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, CodeBadRequest, "Invalid body")
		return
	}

	updated, err := h.Service.Update(r.Context(), entityID(r), form)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
