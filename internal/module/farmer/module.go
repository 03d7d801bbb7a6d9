package farmer

import (
	"github.com/gin-gonic/gin"

	"github.com/identi-digital/identi-modules/internal/domain"
)

// FarmerModule implements the app.Module interface for the farmer domain.
type FarmerModule struct {
	handler *FarmerHandler
}

// NewModule creates a new FarmerModule. Panics if h is nil.
func NewModule(h *FarmerHandler) *FarmerModule {
	if h == nil {
		panic("farmer.NewModule: handler must not be nil")
	}
	return &FarmerModule{handler: h}
}

// Name returns the module key.
func (m *FarmerModule) Name() string { return "farmers" }

// Models returns the tables owned by the module.
func (m *FarmerModule) Models() []any {
	return []any{&domain.Farmer{}}
}

// RegisterRoutes registers farmer API routes.
func (m *FarmerModule) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/farmers")
	g.GET("", m.handler.List)
	g.POST("", m.handler.Create)
	g.GET("/:id", m.handler.Get)
	g.PATCH("/:id", m.handler.Update)
	g.DELETE("/:id", m.handler.Disable)
	g.POST("/:id/restore", m.handler.Restore)
}
