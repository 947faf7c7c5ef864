package response

import (
	"encoding/json"
	"net/http"

	"github.com/toshihome/homestay-bookings/pkg/logger"
)

// ErrorResponse is the structured JSON error shape. Fields is only set
// for validation failures and maps field name to reason.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Error codes surfaced to clients
const (
	CodeValidationError  = "VALIDATION_ERROR"
	CodeMalformedDate    = "MALFORMED_DATE"
	CodeInvalidDateRange = "INVALID_DATE_RANGE"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeInternalError    = "INTERNAL_ERROR"
)

// WriteJSON writes a JSON payload with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// WriteError writes a structured JSON error response.
func WriteError(w http.ResponseWriter, statusCode int, message string, code string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

// ValidationFailed writes the 422 validation shape enumerating every
// violated field.
func ValidationFailed(w http.ResponseWriter, fields map[string]string) {
	WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error:  "validation failed",
		Code:   CodeValidationError,
		Fields: fields,
	})
}

// BadRequest writes a 400 with an explicit detail message.
func BadRequest(w http.ResponseWriter, message, code string) {
	WriteError(w, http.StatusBadRequest, message, code)
}

// StoreUnavailable writes the fixed store-precondition failure. The
// detail never leaks connection internals.
func StoreUnavailable(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, "Database not configured", CodeStoreUnavailable)
}

// InternalError writes a generic 500.
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message, CodeInternalError)
}
