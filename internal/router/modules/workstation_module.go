package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/worksafe-api/internal/interface/http"
)

// WorkstationModule wires the workstation handlers under /api/workstations.
// Static segments (search, lookup, export, reports) are registered beside /:id.
type WorkstationModule struct {
	Handler *handlers.WorkstationHandler
}

func NewWorkstationModule(h *handlers.WorkstationHandler) *WorkstationModule {
	return &WorkstationModule{Handler: h}
}

func (m *WorkstationModule) Register(rg *gin.RouterGroup) {
	ws := rg.Group("/workstations")
	{
		ws.GET("", m.Handler.Search)
		ws.GET("/search", m.Handler.Search)
		ws.GET("/lookup", m.Handler.Lookup)
		ws.GET("/export", m.Handler.Export)
		ws.POST("/reports", m.Handler.PublishReport)
		ws.POST("", m.Handler.Create)
		ws.GET("/:id", m.Handler.Get)
		ws.PUT("/:id", m.Handler.Update)
		ws.DELETE("/:id", m.Handler.Delete)
	}
}
