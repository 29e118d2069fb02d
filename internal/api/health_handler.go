package api

import (
	"context"
	"net/http"
	"time"

	"github.com/ignite/creative-engine/internal/pkg/httputil"
)

var startTime = time.Now()

// componentCheck is the health of a single dependency.
type componentCheck struct {
	Status  string `json:"status"` // up, down, not_configured
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}

// HealthCheck reports liveness plus the state of the database and the
// background worker. The endpoint stays 200 while degraded so load
// balancers only evict the instance when the process itself is broken.
//
//	GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	checks := map[string]componentCheck{}
	status := "healthy"

	checks["database"] = h.checkDB(r.Context())
	if checks["database"].Status == "down" {
		status = "unhealthy"
	}

	if h.Worker != nil {
		wc := componentCheck{Status: "up"}
		if !h.Worker.IsHealthy() {
			wc.Status = "down"
			wc.Message = "last run failed"
			if status == "healthy" {
				status = "degraded"
			}
		}
		if last := h.Worker.LastRunAt(); !last.IsZero() {
			wc.Latency = time.Since(last).Round(time.Second).String()
		}
		checks["lifecycle_worker"] = wc
	}

	code := http.StatusOK
	if status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	httputil.JSON(w, code, map[string]any{
		"status": status,
		"uptime": time.Since(startTime).Round(time.Second).String(),
		"checks": checks,
	})
}

func (h *Handlers) checkDB(ctx context.Context) componentCheck {
	if h.DB == nil {
		return componentCheck{Status: "not_configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	if err := h.DB.PingContext(ctx); err != nil {
		return componentCheck{Status: "down", Message: err.Error()}
	}
	return componentCheck{Status: "up", Latency: time.Since(start).Round(time.Millisecond).String()}
}
