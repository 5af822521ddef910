package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"ismaalAdmin/internal/marketplace"
	"ismaalAdmin/internal/models"
	"ismaalAdmin/internal/moderation"
	"ismaalAdmin/internal/services"
	"ismaalAdmin/internal/session"
	"ismaalAdmin/utils"
)

// Error codes sent next to the message in error bodies.
const (
	CodeInFlight      = "IN_FLIGHT"
	CodeNoTransition  = "NO_TRANSITION"
	CodeNotFound      = "NOT_FOUND"
	CodeBadRequest    = "BAD_REQUEST"
	CodeValidation    = "VALIDATION_FAILED"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeUpstream      = "UPSTREAM_ERROR"
	CodeTimeout       = "TIMEOUT"
	CodeInternalError = "INTERNAL_ERROR"
)

type errorBody struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("handlers: encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorBody{Error: message, Code: code})
}

// writeError maps a service error onto a status and an error body.
func writeError(w http.ResponseWriter, err error) {
	var (
		authErr   *marketplace.AuthError
		apiErr    *marketplace.APIError
		fieldErrs models.FieldErrors
	)

	switch {
	case errors.As(err, &fieldErrs):
		respondJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error:  "Please fix the highlighted fields",
			Code:   CodeValidation,
			Fields: fieldErrs,
		})
	case errors.As(err, &authErr):
		status := http.StatusUnauthorized
		switch authErr.Code {
		case marketplace.ErrNotAdmin.Code:
			status = http.StatusForbidden
		case marketplace.ErrUserNotFound.Code:
			status = http.StatusNotFound
		}
		respondError(w, status, authErr.Code, authErr.Message)
	case errors.Is(err, marketplace.ErrEndpointUnavailable):
		respondError(w, http.StatusNotImplemented, marketplace.EndpointNotFoundCode, err.Error())
	case errors.Is(err, moderation.ErrInFlight):
		respondError(w, http.StatusConflict, CodeInFlight, "A moderation request for this submission is already running")
	case errors.Is(err, moderation.ErrNoTransition):
		respondError(w, http.StatusConflict, CodeNoTransition, "Submission already has that status")
	case errors.Is(err, moderation.ErrSubmissionNotFound):
		respondError(w, http.StatusNotFound, CodeNotFound, "Submission not found")
	case errors.Is(err, models.ErrUnknownSubmissionType),
		errors.Is(err, moderation.ErrInvalidFilter),
		errors.Is(err, moderation.ErrInvalidPageSize),
		errors.Is(err, models.ErrMissingID),
		errors.Is(err, models.ErrInvalidID),
		errors.Is(err, services.ErrMissingID),
		errors.Is(err, services.ErrMissingCredentials):
		respondError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
	case errors.Is(err, session.ErrNoSession), errors.Is(err, utils.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, CodeUnauthorized, "Not authenticated")
	case errors.As(err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = apiErr.Error()
		}
		respondError(w, http.StatusBadGateway, CodeUpstream, msg)
	case errors.Is(err, marketplace.ErrMalformedResponse):
		respondError(w, http.StatusBadGateway, CodeUpstream, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, CodeTimeout, "Marketplace did not answer in time")
	default:
		log.Printf("handlers: %v", err)
		respondError(w, http.StatusInternalServerError, CodeInternalError, "Internal Server Error")
	}
}

func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
