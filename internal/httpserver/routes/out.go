package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/outlink-dev/outlink/internal/httpserver/deps"
	"github.com/outlink-dev/outlink/internal/httpserver/handlers"
	"github.com/outlink-dev/outlink/internal/httpserver/mw"
)

func init() { Register(registerOut) }

func registerOut(r chi.Router, d deps.Deps) {
	r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger), mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/api/out", handlers.Out(d))
}
