// internal/web/respond.go
//
// JSON response helpers shared by every handler.
package web

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// respondJSON writes v with the given status.  Encoding failures are
// logged; by then the status line is gone, so there is nothing better to
// do for the client.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Errorw("response encode failed", "err", err)
	}
}

// respondError writes a {"error": msg} body with the given status.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
