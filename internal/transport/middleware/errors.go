package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

// writeError writes the same error envelope the REST handlers use.
func writeError(w http.ResponseWriter, status int, code domain.ErrorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": code, "message": message},
	})
}
