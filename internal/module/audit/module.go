package audit

import (
	"github.com/gin-gonic/gin"

	"github.com/identi-digital/identi-modules/internal/domain"
)

// AuditModule implements the app.Module interface for the audit log.
// Entries are written by the other modules through domain.AuditRecorder and
// are read-only over HTTP.
type AuditModule struct {
	handler *AuditHandler
}

// NewModule creates a new AuditModule. Panics if h is nil.
func NewModule(h *AuditHandler) *AuditModule {
	if h == nil {
		panic("audit.NewModule: handler must not be nil")
	}
	return &AuditModule{handler: h}
}

func (m *AuditModule) Name() string { return "audit" }

func (m *AuditModule) Models() []any {
	return []any{&domain.AuditLog{}}
}

// RegisterRoutes registers audit log API routes.
func (m *AuditModule) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/audit-logs")
	g.GET("", m.handler.List)
	g.GET("/export", m.handler.Export)
	g.GET("/:id", m.handler.Get)
}
