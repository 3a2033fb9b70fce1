// Package app wires configuration, adapters, and routes into a runnable
// HTTP application.
package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpserver "github.com/hirecraft/hirecraft-backend/internal/adapter/httpserver"
	"github.com/hirecraft/hirecraft-backend/internal/adapter/observability"
	"github.com/hirecraft/hirecraft-backend/internal/config"
)

// ParseOrigins splits a comma-separated origin list into a slice, trimming spaces.
// If the input is empty, returns ["*"].
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// BuildRouter constructs the HTTP handler with all middlewares and routes.
func BuildRouter(cfg config.Config, srv *httpserver.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(httpserver.Recoverer())
	r.Use(httpserver.RequestID())
	r.Use(httpserver.TimeoutMiddleware(cfg.HTTPWriteTimeout))
	r.Use(httpserver.TraceMiddleware)
	r.Use(httpserver.AccessLog())
	r.Use(observability.HTTPMetricsMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ParseOrigins(cfg.CORSAllowOrigins),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Rate limit mutating endpoints
	r.Group(func(wr chi.Router) {
		wr.Use(httprate.LimitByIP(cfg.RateLimitPerMin, 1*time.Minute))
		wr.Post("/v1/hiring/start", srv.HiringStartHandler())
		wr.Post("/v1/hiring/message", srv.HiringMessageHandler())
		wr.Post("/v1/hiring/regenerate", srv.HiringRegenerateHandler())
		wr.Post("/v1/hiring/save", srv.HiringSaveHandler())
		wr.Post("/v1/finder/start", srv.FinderStartHandler())
		wr.Post("/v1/finder/message", srv.FinderMessageHandler())
	})

	// Read-only endpoints
	r.Get("/v1/hiring/preview/{id}", srv.HiringPreviewHandler())
	r.Get("/v1/finder/recommendations/{id}", srv.FinderRecommendationsHandler())
	r.Post("/v1/finder/search", srv.FinderSearchHandler())
	r.Get("/v1/finder/filters", srv.FinderFiltersHandler())

	// Health and metrics
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) { promhttp.Handler().ServeHTTP(w, r) })
	r.Get("/readyz", srv.ReadyzHandler())

	return httpserver.SecurityHeaders(r)
}
