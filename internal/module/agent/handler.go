package agent

import (
	"github.com/gin-gonic/gin"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg"
)

// AgentHandler handles REST API requests for agents and their farmer assignments.
type AgentHandler struct {
	svc domain.AgentService
}

// NewAgentHandler creates a new AgentHandler with the given service.
func NewAgentHandler(svc domain.AgentService) *AgentHandler {
	return &AgentHandler{svc: svc}
}

// Create handles POST /api/v1/agents.
func (h *AgentHandler) Create(c *gin.Context) {
	var req CreateAgentRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	agent, err := h.svc.CreateAgent(c.Request.Context(), domain.AgentInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, agent)
}

// Get handles GET /api/v1/agents/:id.
func (h *AgentHandler) Get(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	agent, err := h.svc.GetAgent(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, agent)
}

// List handles GET /api/v1/agents.
func (h *AgentHandler) List(c *gin.Context) {
	q, ok := pkg.ParseListQuery(c)
	if !ok {
		return
	}

	result, err := h.svc.ListAgents(c.Request.Context(), q)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Update handles PATCH /api/v1/agents/:id.
func (h *AgentHandler) Update(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	var req UpdateAgentRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	agent, err := h.svc.UpdateAgent(c.Request.Context(), id, domain.AgentPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, agent)
}

// Disable handles DELETE /api/v1/agents/:id.
func (h *AgentHandler) Disable(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	agent, err := h.svc.DisableAgent(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, agent)
}

// Restore handles POST /api/v1/agents/:id/restore.
func (h *AgentHandler) Restore(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	agent, err := h.svc.RestoreAgent(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, agent)
}

// ListFarmers handles GET /api/v1/agents/:id/farmers.
func (h *AgentHandler) ListFarmers(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}
	req, ok := pkg.ParsePageRequest(c)
	if !ok {
		return
	}

	result, err := h.svc.ListAssignments(c.Request.Context(), id, req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// AssignFarmer handles POST /api/v1/agents/:id/farmers.
func (h *AgentHandler) AssignFarmer(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	var req AssignFarmerRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	assignment, err := h.svc.AssignFarmer(c.Request.Context(), id, req.FarmerID)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, assignment)
}

// UnassignFarmer handles DELETE /api/v1/agents/:id/farmers/:farmer_id.
func (h *AgentHandler) UnassignFarmer(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}
	farmerID, ok := pkg.PathID(c, "farmer_id")
	if !ok {
		return
	}

	assignment, err := h.svc.UnassignFarmer(c.Request.Context(), id, farmerID)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, assignment)
}
