// internal/web/router.go
//
// Route table and middleware chain.
//
// Ordering matters: security headers and CORS run outermost so even 401
// and 404 responses carry them; request enrichment runs just before the
// handlers so its cost is skipped for pre-flight OPTIONS.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanizio/showcase/internal/gate"
	"github.com/yanizio/showcase/internal/middleware"
	"github.com/yanizio/showcase/internal/requestinfo"
)

// NewRouter wires handlers, gate, and middleware into one http.Handler.
func NewRouter(h *Handlers, g *gate.Gate, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Security)
	r.Use(middleware.CORS(corsOrigins))
	r.Use(requestinfo.Enrich)

	r.Get("/health", h.HandleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/emails", h.HandleCreateEmail)
		r.Get("/content/{locale}/{sectionKey}", h.HandleSection)

		r.Group(func(r chi.Router) {
			r.Use(g.Require)
			r.Get("/admin/emails", h.HandleAdminEmails)
		})
	})

	return r
}
