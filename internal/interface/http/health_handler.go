package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/worksafe-api/pkg/response"
)

const readinessTimeout = 2 * time.Second

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	Checks map[string]HealthCheck
}

func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{Checks: checks}
}

// Live always answers 200 while the process serves requests.
func (h *HealthHandler) Live(c *gin.Context) {
	response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "alive", nil)
}

// Ready runs every check and answers 503 when any fails.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := make(map[string]string, len(names))
	failed := false
	for _, name := range names {
		if err := h.Checks[name](ctx); err != nil {
			status[name] = err.Error()
			failed = true
			continue
		}
		status[name] = "ok"
	}

	if failed {
		response.Error[any](c, http.StatusServiceUnavailable, "not ready", status)
		return
	}
	response.Success(c, http.StatusOK, status, "ready", nil)
}
