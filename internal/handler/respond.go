package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/templui/habitkit/internal/repository"
	"github.com/templui/habitkit/internal/validation"
)

// errorResponse is the body of every JSON error.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to marshal json response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, err = w.Write(body)
	if err != nil {
		slog.Error("failed to write json response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondServiceError maps service errors onto status codes: validation is
// 400, a habit the caller does not own is 404, anything else is logged and 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, msg string, attrs ...any) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error(), Fields: verr.Fields})
	case errors.Is(err, repository.ErrHabitNotFound):
		respondError(w, http.StatusNotFound, "habit not found")
	default:
		slog.Error(msg, append([]any{"error", err, "path", r.URL.Path}, attrs...)...)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// refreshHTMX asks HTMX callers to reload the page after a write.
func refreshHTMX(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Refresh", "true")
	}
}
