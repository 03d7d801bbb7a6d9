package monitoring

import (
	"github.com/gin-gonic/gin"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg"
)

// VisitHandler handles REST API requests for monitoring visits.
type VisitHandler struct {
	svc domain.MonitoringService
}

// NewVisitHandler creates a new VisitHandler with the given service.
func NewVisitHandler(svc domain.MonitoringService) *VisitHandler {
	return &VisitHandler{svc: svc}
}

// Create handles POST /api/v1/monitoring-visits.
func (h *VisitHandler) Create(c *gin.Context) {
	var req CreateVisitRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	visit, err := h.svc.CreateVisit(c.Request.Context(), domain.MonitoringVisitInput{
		FarmerID:     req.FarmerID,
		AgentID:      req.AgentID,
		VisitedAt:    req.VisitedAt,
		Crop:         req.Crop,
		Observations: req.Observations,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, visit)
}

// Get handles GET /api/v1/monitoring-visits/:id.
func (h *VisitHandler) Get(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	visit, err := h.svc.GetVisit(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, visit)
}

// List handles GET /api/v1/monitoring-visits.
func (h *VisitHandler) List(c *gin.Context) {
	q, ok := pkg.ParseListQuery(c, "farmer_id", "agent_id")
	if !ok {
		return
	}

	result, err := h.svc.ListVisits(c.Request.Context(), q)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Update handles PATCH /api/v1/monitoring-visits/:id.
func (h *VisitHandler) Update(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	var req UpdateVisitRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	visit, err := h.svc.UpdateVisit(c.Request.Context(), id, domain.MonitoringVisitPatch{
		VisitedAt:    req.VisitedAt,
		Crop:         req.Crop,
		Observations: req.Observations,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, visit)
}

// Disable handles DELETE /api/v1/monitoring-visits/:id.
func (h *VisitHandler) Disable(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	visit, err := h.svc.DisableVisit(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, visit)
}

// Restore handles POST /api/v1/monitoring-visits/:id/restore.
func (h *VisitHandler) Restore(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	visit, err := h.svc.RestoreVisit(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, visit)
}
