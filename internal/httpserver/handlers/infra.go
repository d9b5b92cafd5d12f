package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/outlink-dev/outlink/internal/httpserver/deps"
)

type componentStatus struct {
	OK              bool   `json:"ok"`
	ProvidersLoaded *int   `json:"providers_loaded,omitempty"`
	LastReload      string `json:"last_reload,omitempty"`
	Mode            string `json:"mode,omitempty"`
	Impact          string `json:"impact,omitempty"`
	Error           string `json:"error,omitempty"`
}

type infraResponse struct {
	RoutingMode string                     `json:"routing_mode"`
	GeneratedAt string                     `json:"generated_at"`
	Components  map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		providersCount := d.MemoryIndex.Count()
		lastReload := d.MemoryIndex.GetLastReload()
		lastReloadStr := "builtin"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		redisStatus := checkRedis(d)

		components := map[string]componentStatus{
			"catalog": {
				OK:              providersCount > 0,
				ProvidersLoaded: &providersCount,
				LastReload:      lastReloadStr,
			},
			"redis": redisStatus,
			"resolver": {
				OK:   true,
				Mode: "catalog+usage-learning",
			},
		}

		response := infraResponse{
			RoutingMode: determineRoutingMode(components),
			GeneratedAt: d.TimeNow().UTC().Format(time.RFC3339),
			Components:  components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func determineRoutingMode(components map[string]componentStatus) string {
	// No providers loaded means nothing can resolve at all.
	if catalog, exists := components["catalog"]; exists {
		if !catalog.OK || (catalog.ProvidersLoaded != nil && *catalog.ProvidersLoaded == 0) {
			return "critical"
		}
	}

	// Redis down is non-critical: resolution still works, caching and
	// usage learning do not.
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "degraded"
	}

	return "intelligent"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "cache-and-usage-learning-disabled",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := d.RedisClient.Ping(ctx).Err()
	if err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "cache-and-usage-learning-disabled",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "cache-and-usage-learning-enabled",
		Error:  "none",
	}
}
