package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/roamlog/roamlog/internal/repository"
	"github.com/roamlog/roamlog/internal/service"
)

// Envelope is the uniform response shape: {error, message, ...payload}.
type Envelope map[string]any

// WriteJSON writes the envelope with error=false unless already set.
func WriteJSON(w http.ResponseWriter, code int, payload Envelope) {
	if payload == nil {
		payload = Envelope{}
	}
	if _, ok := payload["error"]; !ok {
		payload["error"] = false
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	err := json.NewEncoder(w).Encode(payload)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// WriteError writes the error envelope.
func WriteError(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, Envelope{"error": true, "message": message})
}

// HandleError is the single mapping from error kind to status and envelope.
// Handlers never construct ad hoc error shapes. Internal detail never
// reaches the response body.
func HandleError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		WriteError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrUnauthenticated):
		WriteError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, repository.ErrUserNotFound):
		WriteError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, repository.ErrStoryNotFound):
		// Absent and not-owned are intentionally indistinguishable.
		WriteError(w, http.StatusNotFound, "travel story not found")
	case errors.Is(err, repository.ErrDuplicateEmail):
		WriteError(w, http.StatusConflict, "email already in use")
	case errors.Is(err, service.ErrStorageFailure):
		slog.Error("media storage failure", "error", err)
		WriteError(w, http.StatusInternalServerError, "media storage unavailable")
	default:
		slog.Error("request failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
