package handlers

import (
	"net/http"

	"ismaalAdmin/internal/models"
	"ismaalAdmin/internal/services"
)

type AuthHandler struct {
	Service *services.AuthService
	// OnLogout runs after the session is cleared, with the admin's id.
	OnLogout func(adminID models.EntityID)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, CodeBadRequest, "Invalid body")
		return
	}

	resp, err := h.Service.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, CodeUnauthorized, "Not authenticated")
		return
	}
	if err := h.Service.Logout(r.Context(), claims); err != nil {
		writeError(w, err)
		return
	}
	if h.OnLogout != nil {
		h.OnLogout(models.EntityID(claims.AdminID))
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := AdminFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, CodeUnauthorized, "Not authenticated")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
