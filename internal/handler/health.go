package handler

import (
	"encoding/json"
	"net/http"
	"time"
)

// Version reported by the health endpoints.
const Version = "1.0.0"

// Health returns a liveness handler. The store is in-memory, so there
// is no dependency to probe.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
			"version":   Version,
		})
	}
}
