package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/stickynotes/stickynotes/internal/handler/dto"
)

// writeError writes the API error envelope.
func writeError(w http.ResponseWriter, status int, code, message, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{
		Code:    code,
		Message: message,
		Error:   detail,
	})
}
