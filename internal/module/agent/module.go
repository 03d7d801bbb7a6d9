package agent

import (
	"github.com/gin-gonic/gin"

	"github.com/identi-digital/identi-modules/internal/domain"
)

// AgentModule implements the app.Module interface for the agent domain.
type AgentModule struct {
	handler *AgentHandler
}

// NewModule creates a new AgentModule. Panics if h is nil.
func NewModule(h *AgentHandler) *AgentModule {
	if h == nil {
		panic("agent.NewModule: handler must not be nil")
	}
	return &AgentModule{handler: h}
}

// Name returns the module key.
func (m *AgentModule) Name() string { return "agents" }

// Models returns the tables owned by the module.
func (m *AgentModule) Models() []any {
	return []any{&domain.Agent{}, &domain.AgentIdentity{}, &domain.AgentAssignment{}}
}

// RegisterRoutes registers agent and assignment routes.
func (m *AgentModule) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/agents")
	g.GET("", m.handler.List)
	g.POST("", m.handler.Create)
	g.GET("/:id", m.handler.Get)
	g.PATCH("/:id", m.handler.Update)
	g.DELETE("/:id", m.handler.Disable)
	g.POST("/:id/restore", m.handler.Restore)

	g.GET("/:id/farmers", m.handler.ListFarmers)
	g.POST("/:id/farmers", m.handler.AssignFarmer)
	g.DELETE("/:id/farmers/:farmer_id", m.handler.UnassignFarmer)
}
