package handlers

import (
	"context"
	"net/http"
	"time"
)

// ReadinessChecker reports whether one dependency is ready to serve.
type ReadinessChecker interface {
	Name() string
	Check(ctx context.Context) error
}

// CheckerFunc adapts a function to ReadinessChecker.
type CheckerFunc struct {
	Component string
	Fn        func(ctx context.Context) error
}

func (c CheckerFunc) Name() string                    { return c.Component }
func (c CheckerFunc) Check(ctx context.Context) error { return c.Fn(ctx) }

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	version  string
	started  time.Time
	checkers []ReadinessChecker
}

func NewHealthHandler(version string, checkers ...ReadinessChecker) *HealthHandler {
	return &HealthHandler{
		version:  version,
		started:  time.Now(),
		checkers: checkers,
	}
}

type healthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Uptime  string            `json:"uptime"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// Liveness reports that the process is running.
//
//	GET /healthz
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	})
}

// Readiness runs every dependency check. Any failure yields 503 with the
// failing components named.
//
//	GET /readyz
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.checkers))
	healthy := true
	for _, c := range h.checkers {
		if err := c.Check(ctx); err != nil {
			checks[c.Name()] = err.Error()
			healthy = false
		} else {
			checks[c.Name()] = "ok"
		}
	}

	status := http.StatusOK
	resp := healthResponse{
		Status:  "ready",
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
		Checks:  checks,
	}
	if !healthy {
		status = http.StatusServiceUnavailable
		resp.Status = "not_ready"
	}
	writeJSON(w, status, resp)
}
