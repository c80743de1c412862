package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError writes the same {"success":false,"error":...} envelope the
// REST handlers use.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}
