package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/materiascout/materiascout/internal/infrastructure/monitoring/prometheus"
)

// Metrics returns middleware that records request count and latency per
// route. The chi route pattern is used as the path label so parameterised
// routes do not explode label cardinality.
func Metrics(metrics *prometheus.AppMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			metrics.HTTPActiveRequests.WithLabelValues(r.Method).Inc()
			defer metrics.HTTPActiveRequests.WithLabelValues(r.Method).Dec()

			wrapped := newWrappedResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}

			metrics.RecordHTTPRequest(r.Method, path, wrapped.statusCode, time.Since(start))
		})
	}
}
