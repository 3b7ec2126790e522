package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/worksafe-api/internal/interface/http"
	"github.com/oksasatya/worksafe-api/internal/observability/metrics"
)

// HealthModule serves probes and the Prometheus scrape endpoint at the root.
type HealthModule struct {
	Handler *handlers.HealthHandler
}

func NewHealthModule(h *handlers.HealthHandler) *HealthModule { return &HealthModule{Handler: h} }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.Handler.Live)
	rg.GET("/readyz", m.Handler.Ready)
	rg.GET("/metrics", gin.WrapH(metrics.Handler()))
}
