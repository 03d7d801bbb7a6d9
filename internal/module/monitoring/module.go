package monitoring

import (
	"github.com/gin-gonic/gin"

	"github.com/identi-digital/identi-modules/internal/domain"
)

// MonitoringModule implements the app.Module interface for field visits.
type MonitoringModule struct {
	handler *VisitHandler
}

// NewModule creates a new MonitoringModule. Panics if h is nil.
func NewModule(h *VisitHandler) *MonitoringModule {
	if h == nil {
		panic("monitoring.NewModule: handler must not be nil")
	}
	return &MonitoringModule{handler: h}
}

func (m *MonitoringModule) Name() string { return "monitoring" }

func (m *MonitoringModule) Models() []any {
	return []any{&domain.MonitoringVisit{}}
}

// RegisterRoutes registers monitoring visit API routes.
func (m *MonitoringModule) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/monitoring-visits")
	g.GET("", m.handler.List)
	g.POST("", m.handler.Create)
	g.GET("/:id", m.handler.Get)
	g.PATCH("/:id", m.handler.Update)
	g.DELETE("/:id", m.handler.Disable)
	g.POST("/:id/restore", m.handler.Restore)
}
