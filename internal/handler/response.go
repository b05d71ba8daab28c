// Package handler contains the HTTP request handlers for all four apps.
//
// Handlers are the glue between HTTP and the services: they parse the
// request (form values, URL params, JSON bodies), call a service, and write
// the response. Business rules live in the services; error-to-HTTP mapping
// lives here, at the edge.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/web-playground/internal/apperror"
)

// ErrorResponse is the standard error shape for the JSON APIs.
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable error type (e.g. "not_found")
	Message string `json:"message"` // human-readable description
}

// writeJSON sends a JSON response with the given status code.
//
// Headers and status must be written before the body: once Encode starts
// writing, any later header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// errorStatus maps a domain error to its HTTP status. Shared by the JSON
// writer below and the HTML handlers' error paths.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperror.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorType is the machine-readable name for an error category.
func errorType(err error) string {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return "validation_error"
	case errors.Is(err, apperror.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperror.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, apperror.ErrForbidden):
		return "authentication_failed"
	case errors.Is(err, apperror.ErrConflict):
		return "conflict"
	default:
		return "internal_error"
	}
}

// writeError translates a domain error into a JSON error response.
//
// errors.As pulls out the AppError for its human-readable message; anything
// that isn't an AppError is an infrastructure failure and becomes a generic
// 500 — internal error text (SQL, file paths) never reaches the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, errorStatus(err), ErrorResponse{
			Error:   errorType(err),
			Message: appErr.Message,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
