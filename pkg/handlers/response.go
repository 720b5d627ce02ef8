package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/apperrors"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/llm"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/middleware"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/services"
)

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	return middleware.WriteError(w, statusCode, errorCode, message)
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// HandleError maps a service error onto the wire. Domain sentinels map to
// 4xx, provider errors to 5xx variants clients can distinguish, and anything
// unrecognized to 500 with the caller's fallback code.
func HandleError(w http.ResponseWriter, logger *zap.Logger, err error, fallbackCode string) {
	status := http.StatusInternalServerError
	code := fallbackCode

	switch {
	case errors.Is(err, services.ErrKeyMissing):
		status, code = http.StatusServiceUnavailable, "ai_key_missing"
	case errors.Is(err, apperrors.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, apperrors.ErrForbidden):
		status, code = http.StatusForbidden, "forbidden"
	case errors.Is(err, apperrors.ErrValidation):
		status, code = http.StatusBadRequest, "validation_error"
	case errors.Is(err, apperrors.ErrConflict):
		status, code = http.StatusConflict, "conflict"
	default:
		switch llm.GetErrorType(err) {
		case llm.ErrorTypeBlocked:
			status, code = http.StatusBadRequest, "ai_content_blocked"
		case llm.ErrorTypeUnavailable:
			status, code = http.StatusServiceUnavailable, "ai_provider_unavailable"
		case llm.ErrorTypeMalformed:
			status, code = http.StatusBadGateway, "ai_malformed_response"
		case llm.ErrorTypeAuth:
			status, code = http.StatusServiceUnavailable, "ai_key_missing"
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("code", code), zap.Error(err))
	}
	if err := ErrorResponse(w, status, code, err.Error()); err != nil {
		logger.Error("Failed to write error response", zap.Error(err))
	}
}

// DecodeJSON decodes the request body into dst and writes a 400 on failure.
// Returns false when the caller should stop.
func DecodeJSON(w http.ResponseWriter, r *http.Request, logger *zap.Logger, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return false
	}
	return true
}

// Middleware is the function shape every route wrapper in this package uses.
type Middleware = func(http.HandlerFunc) http.HandlerFunc

func chain(h http.HandlerFunc, mw ...Middleware) http.HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}
