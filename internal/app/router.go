// Package app wires middleware, routes, and readiness probes into the HTTP
// handler served by cmd/server.
package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/merchbase/site-api/internal/adapter/httpserver"
	"github.com/merchbase/site-api/internal/config"
	"github.com/merchbase/site-api/internal/observability"
)

// ParseOrigins splits a comma-separated origin list, trimming spaces. An
// empty input allows every origin.
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
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
	r.Use(httpserver.AccessLog())
	r.Use(observability.HTTPMetricsMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ParseOrigins(cfg.CORSAllowOrigins),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id", "ETag"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Rate limit mutating endpoints
	r.Group(func(wr chi.Router) {
		wr.Use(httprate.LimitByIP(cfg.RateLimitPerMin, 1*time.Minute))
		wr.Post("/v1/assessments", srv.SubmitHandler())
		wr.Post("/v1/assessments/{id}/analyze", srv.AnalyzeHandler())
		wr.Post("/v1/assessments/{id}/notify", srv.NotifyHandler())
	})

	// Read-only endpoints
	r.Get("/v1/assessments/{id}", srv.ResultHandler())
	r.Get("/v1/blog/posts", srv.BlogListHandler())
	r.Get("/v1/blog/posts/{slug}", srv.BlogGetHandler())

	// Health and metrics
	metrics := promhttp.Handler()
	r.Get("/healthz", srv.HealthzHandler())
	r.Get("/readyz", srv.ReadyzHandler())
	r.Get("/metrics", metrics.ServeHTTP)

	return httpserver.SecurityHeaders(r)
}
