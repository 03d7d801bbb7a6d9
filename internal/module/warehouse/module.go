package warehouse

import (
	"github.com/gin-gonic/gin"

	"github.com/identi-digital/identi-modules/internal/domain"
)

// WarehouseModule implements the app.Module interface for store centers and
// stock movements.
type WarehouseModule struct {
	handler *WarehouseHandler
}

// NewModule creates a new WarehouseModule. Panics if h is nil.
func NewModule(h *WarehouseHandler) *WarehouseModule {
	if h == nil {
		panic("warehouse.NewModule: handler must not be nil")
	}
	return &WarehouseModule{handler: h}
}

// Name returns the module key.
func (m *WarehouseModule) Name() string { return "warehouse" }

// Models returns the tables owned by the module.
func (m *WarehouseModule) Models() []any {
	return []any{&domain.StoreCenter{}, &domain.Movement{}}
}

// RegisterRoutes registers store center and movement API routes.
// Movements are append-only and expose no update, disable or restore.
func (m *WarehouseModule) RegisterRoutes(api *gin.RouterGroup) {
	centers := api.Group("/store-centers")
	centers.GET("", m.handler.ListStoreCenters)
	centers.POST("", m.handler.CreateStoreCenter)
	centers.GET("/:id", m.handler.GetStoreCenter)
	centers.PATCH("/:id", m.handler.UpdateStoreCenter)
	centers.DELETE("/:id", m.handler.DisableStoreCenter)
	centers.POST("/:id/restore", m.handler.RestoreStoreCenter)

	movements := api.Group("/movements")
	movements.GET("", m.handler.ListMovements)
	movements.POST("", m.handler.CreateMovement)
	movements.GET("/export", m.handler.ExportMovements)
	movements.GET("/:id", m.handler.GetMovement)
}
