package handler

import (
	"log/slog"
	"net/http"

	"github.com/osse101/casevault/internal/domain"
	"github.com/osse101/casevault/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := acquireResponseBuffer()
	defer releaseResponseBuffer(buf)

	// Encode before writing headers so a failure can still become a 500
	if err := buf.encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, LogFieldError, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, LogFieldError, err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// statusForKind maps a domain error kind to an HTTP status
func statusForKind(kind string) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInvalidInput:
		return http.StatusBadRequest
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

// respondServiceError logs err and writes the status of its domain kind.
// Internal errors get a generic message.
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := logger.FromContext(r.Context())
	kind := domain.ErrorKind(err)
	status := statusForKind(kind)

	if status == http.StatusInternalServerError {
		log.Error(LogMsgServiceFailed, LogFieldOperation, op, LogFieldError, err)
		respondJSON(w, status, ErrorResponse{Error: ErrMsgGenericServerError, Kind: kind})
		return
	}

	log.Warn(LogMsgServiceRejected,
		LogFieldOperation, op,
		LogFieldKind, kind,
		LogFieldStatus, status,
		LogFieldError, err)
	respondJSON(w, status, ErrorResponse{Error: err.Error(), Kind: kind})
}
