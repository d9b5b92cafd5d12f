package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/outlink-dev/outlink/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready     bool `json:"ready"`
	Providers int  `json:"providers"`
}

// Readyz reports whether the service can resolve links: ready means the
// provider catalog is loaded. Redis being down does not make the
// service unready (resolution degrades, it does not stop).
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := d.MemoryIndex.Count()
		ready := count > 0

		w.Header().Set("Content-Type", "application/json")
		if !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(readyzResponse{
			Ready:     ready,
			Providers: count,
		})
	}
}
