package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/simaogato/geohash-backend/internal/domain"
)

// ErrorResponse is the body of every non-2xx answer
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// writeError maps a domain error to its HTTP status and writes it.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := classify(err)

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", requestAttrs(r, slog.Any("error", err), slog.Int("status", status))...)
	} else {
		slog.InfoContext(r.Context(), "request rejected", requestAttrs(r, slog.Any("error", err), slog.Int("status", status))...)
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	writeJSON(w, status, ErrorResponse{Error: message, Kind: kind})
}

// classify returns the HTTP status and error kind of a pipeline error
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusServiceUnavailable, "upstream"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
