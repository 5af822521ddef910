package handlers

import (
	"context"
	"net/http"

	"ismaalAdmin/internal/models"
	"ismaalAdmin/internal/services"
)

type decisionFunc func(ctx context.Context, adminID models.EntityID, key models.SubmissionKey, notes string) (models.Submission, error)

type SubmissionHandler struct {
	Service *services.SubmissionService
}

type decisionRequest struct {
	AdminNotes string `json:"adminNotes"`
}

func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	admin, ok := AdminFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, CodeUnauthorized, "Not authenticated")
		return
	}

	q := r.URL.Query()
	page, err := h.Service.List(r.Context(), admin.ID, services.SubmissionQuery{
		Filter:  q.Get("filter"),
		Page:    queryInt(r, "page"),
		PerPage: queryInt(r, "perPage"),
		Refresh: q.Get("refresh") == "1" || q.Get("refresh") == "true",
	})
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	admin, ok := AdminFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, CodeUnauthorized, "Not authenticated")
		return
	}
	key, err := submissionKey(r)
	if err != nil {
		writeError(w, err)
		return
	}

	sub, err := h.Service.Get(r.Context(), admin.ID, key)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

func (h *SubmissionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Approve)
}

func (h *SubmissionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Reject)
}

func (h *SubmissionHandler) decide(w http.ResponseWriter, r *http.Request, action decisionFunc) {
	admin, ok := AdminFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, CodeUnauthorized, "Not authenticated")
		return
	}
	key, err := submissionKey(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req decisionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, CodeBadRequest, "Invalid body")
		return
	}

	sub, err := action(r.Context(), admin.ID, key, req.AdminNotes)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

func (h *SubmissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	admin, ok := AdminFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, CodeUnauthorized, "Not authenticated")
		return
	}
	key, err := submissionKey(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Service.Delete(r.Context(), admin.ID, key); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SubmissionHandler) Audit(w http.ResponseWriter, r *http.Request) {
	n := queryInt(r, "limit")
	if n <= 0 {
		n = 50
	}
	entries, err := h.Service.Audit(r.Context(), n)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
