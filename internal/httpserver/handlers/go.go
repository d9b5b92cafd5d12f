package handlers

import (
	"net/http"
	"net/url"

	"github.com/outlink-dev/outlink/internal/codec"
	"github.com/outlink-dev/outlink/internal/httpserver/deps"
	"github.com/outlink-dev/outlink/internal/logger"
	"github.com/outlink-dev/outlink/internal/resolver"
	redisstore "github.com/outlink-dev/outlink/internal/store/redis"
)

// Go resolves a routing decision and redirects to the landing page with
// the encoded token. Resolutions are cached in Redis keyed by the
// normalized input; the cache is best effort and never blocks the
// redirect.
func Go(d deps.Deps) http.HandlerFunc {
	store := redisstore.NewStore(d.RedisClient)
	memIndex := d.MemoryIndex

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		in := parseResolveInput(r)
		cacheKey := cacheKeyFor(in)

		token, err := store.GetCachedToken(ctx, cacheKey)
		if err != nil || token == "" {
			link := resolver.Resolve(memIndex.Registry(), in)
			token, err = codec.Encode(link)
			if err != nil {
				d.Logger.Error("failed to encode candidate link",
					logger.String("provider", link.Provider),
					logger.Error(err))
				http.Error(w, "encoding failed", http.StatusInternalServerError)
				return
			}
			_ = store.CacheToken(ctx, cacheKey, token, d.CacheTTL)
			_ = store.IncrementUsage(ctx, link.Provider)
			memIndex.IncrementUsage(link.Provider)
			d.Logger.Info("resolved for redirect",
				logger.String("provider", link.Provider))
		} else {
			d.Logger.Debug("resolution cache hit",
				logger.String("key", cacheKey))
		}

		target := d.LandingPath + "?data=" + url.QueryEscape(token)
		if rt := codec.ValidateReturnTo(r.URL.Query().Get("returnTo")); rt != "" {
			target += "&returnTo=" + url.QueryEscape(rt)
		}
		http.Redirect(w, r, target, http.StatusFound)
	}
}
