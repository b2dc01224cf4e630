package handler

import (
	"encoding/json"
	"net/http"

	"techstore/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps a service error to an HTTP response. Domain errors
// surface their own message; anything else is a persistence or internal
// failure and is surfaced generically.
func writeDomainError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	code := model.ErrorCode(err)

	var status int
	switch code {
	case model.ErrCodeValidation, model.ErrCodeInvalidJSON,
		model.ErrCodeInvalidStatus, model.ErrCodeStateConflict:
		status = http.StatusBadRequest
	case model.ErrCodeNotFound:
		status = http.StatusNotFound
	case model.ErrCodeUnauthorised:
		status = http.StatusUnauthorized
	case model.ErrCodeForbidden:
		status = http.StatusForbidden
	default:
		logger.Error().Err(err).Msg(fallback)
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, fallback, logger)
		return
	}

	writeError(w, status, code, err.Error(), logger)
}
