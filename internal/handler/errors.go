package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/drivemapz/backend/internal/domain"
)

// errorResponse is the JSON shape of every error body.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError sends a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// writeDomainError maps the error taxonomy to HTTP statuses:
// not-found → 404, validation → 422, missing session → 401, anything else is
// a remote-operation failure → 500 with the message passed through (and the
// full chain logged server-side).
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", unwrapMessage(err))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrNoSession):
		writeError(w, http.StatusUnauthorized, "auth_required", unwrapMessage(err))
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

// badRequest rejects a request before it reaches the service layer
// (e.g. missing or malformed body, unparsable UUID).
func badRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, "bad_request", message)
}

// unwrapMessage extracts the human-readable tail from a wrapped sentinel error,
// e.g. "service.TripService.Create: validation error: name is required"
// → "name is required". Falls back to the full message when no sentinel text
// is present.
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, marker := range []string{
		"validation error: ",
		"auth session missing: ",
	} {
		if i := strings.LastIndex(msg, marker); i >= 0 {
			return msg[i+len(marker):]
		}
	}
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
