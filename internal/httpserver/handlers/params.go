package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/outlink-dev/outlink/internal/resolver"
)

// parseResolveInput maps the shared query parameters of /api/resolve
// and /api/go onto a resolver input.
func parseResolveInput(r *http.Request) resolver.Input {
	q := r.URL.Query()
	mobile, _ := strconv.ParseBool(q.Get("mobile"))
	return resolver.Input{
		Title:    strings.TrimSpace(q.Get("title")),
		Query:    strings.TrimSpace(q.Get("q")),
		Category: strings.ToLower(strings.TrimSpace(q.Get("category"))),
		Locale:   strings.TrimSpace(q.Get("locale")),
		Region:   strings.ToUpper(strings.TrimSpace(q.Get("region"))),
		Provider: strings.TrimSpace(q.Get("provider")),
		IsMobile: mobile,
	}
}

// cacheKeyFor builds the normalized cache key for one resolution input.
// Every field that influences the output participates.
func cacheKeyFor(in resolver.Input) string {
	return strings.ToLower(strings.Join([]string{
		in.Provider,
		in.Title,
		in.Query,
		in.Category,
		in.Locale,
		in.Region,
		strconv.FormatBool(in.IsMobile),
	}, "|"))
}
