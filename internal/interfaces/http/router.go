// Package http wires the REST API: routing, middleware, and the server
// lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/materiascout/materiascout/internal/infrastructure/monitoring/logging"
	"github.com/materiascout/materiascout/internal/infrastructure/monitoring/prometheus"
	"github.com/materiascout/materiascout/internal/interfaces/http/handlers"
	"github.com/materiascout/materiascout/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies needed
// to build the route tree. Nil handlers leave their routes unregistered;
// nil middleware is skipped.
type RouterConfig struct {
	QueryHandler  *handlers.QueryHandler
	SearchHandler *handlers.SearchHandler
	HealthHandler *handlers.HealthHandler

	Logger        logging.Logger
	LoggingConfig *middleware.LoggingConfig
	CORSConfig    *middleware.CORSConfig
	RateLimiter   middleware.RateLimiter
	RateConfig    *middleware.RateLimitConfig

	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector

	MaxBodySize int64
}

// NewRouter constructs the complete HTTP route tree: global middleware,
// public health and metrics endpoints, and the /api/v1 group.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if cfg.CORSConfig != nil {
		r.Use(middleware.CORS(*cfg.CORSConfig))
	}
	if cfg.Logger != nil {
		lc := middleware.DefaultLoggingConfig()
		if cfg.LoggingConfig != nil {
			lc = *cfg.LoggingConfig
		}
		r.Use(middleware.RequestLogging(cfg.Logger, lc))
	}
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		rc := middleware.DefaultRateLimitConfig()
		if cfg.RateConfig != nil {
			rc = *cfg.RateConfig
		}
		r.Use(middleware.RateLimit(cfg.RateLimiter, rc))
	}
	if cfg.MaxBodySize > 0 {
		r.Use(maxBodySize(cfg.MaxBodySize))
	}

	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		r.Handle("/metrics", cfg.MetricsCollector.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		if cfg.QueryHandler != nil {
			api.Post("/query", cfg.QueryHandler.Query)
			api.Post("/extract", cfg.QueryHandler.Extract)
			api.Get("/materials/properties", cfg.QueryHandler.Properties)
		}
		if cfg.SearchHandler != nil {
			api.Post("/materials/search", cfg.SearchHandler.Search)
		}
	})

	return r
}

// maxBodySize caps request body reads so oversized bodies fail inside the
// JSON decoder instead of exhausting memory.
func maxBodySize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
