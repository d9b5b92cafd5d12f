package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/outlink-dev/outlink/internal/codec"
	"github.com/outlink-dev/outlink/internal/domain"
	"github.com/outlink-dev/outlink/internal/httpserver/deps"
	"github.com/outlink-dev/outlink/internal/logger"
	"github.com/outlink-dev/outlink/internal/resolver"
	redisstore "github.com/outlink-dev/outlink/internal/store/redis"
)

type resolveResponse struct {
	Link  domain.CandidateLink `json:"link"`
	Token string               `json:"token"`
}

// Resolve builds the candidate-link bundle for one routing decision and
// returns it together with its encoded transport token.
func Resolve(d deps.Deps) http.HandlerFunc {
	store := redisstore.NewStore(d.RedisClient)
	memIndex := d.MemoryIndex

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		in := parseResolveInput(r)

		link := resolver.Resolve(memIndex.Registry(), in)

		token, err := codec.Encode(link)
		if err != nil {
			d.Logger.Error("failed to encode candidate link",
				logger.String("provider", link.Provider),
				logger.Error(err))
			http.Error(w, "encoding failed", http.StatusInternalServerError)
			return
		}

		d.Logger.Info("resolved outbound link",
			logger.String("provider", link.Provider),
			logger.String("requested", in.Provider),
			logger.String("category", in.Category),
			logger.String("region", link.Metadata.Region))

		// Increment usage counter (best effort)
		_ = store.IncrementUsage(ctx, link.Provider)
		memIndex.IncrementUsage(link.Provider)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resolveResponse{
			Link:  link,
			Token: token,
		})
	}
}
