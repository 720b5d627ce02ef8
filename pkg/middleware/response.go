package middleware

import (
	"encoding/json"
	"net/http"
)

// WriteError writes the error envelope every layer of the API answers with:
// {"error": code, "message": message}. Handlers and the guard/transaction
// middlewares all route through here so the wire shape has one definition.
func WriteError(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}
