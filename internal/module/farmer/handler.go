package farmer

import (
	"github.com/gin-gonic/gin"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg"
)

// FarmerHandler handles REST API requests for the farmer resource.
type FarmerHandler struct {
	svc domain.FarmerService
}

// NewFarmerHandler creates a new FarmerHandler with the given service.
func NewFarmerHandler(svc domain.FarmerService) *FarmerHandler {
	return &FarmerHandler{svc: svc}
}

// Create handles POST /api/v1/farmers.
func (h *FarmerHandler) Create(c *gin.Context) {
	var req CreateFarmerRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	farmer, err := h.svc.CreateFarmer(c.Request.Context(), domain.FarmerInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DocumentNumber: req.DocumentNumber,
		Phone:          req.Phone,
		DistrictID:     req.DistrictID,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, farmer)
}

// Get handles GET /api/v1/farmers/:id.
func (h *FarmerHandler) Get(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	farmer, err := h.svc.GetFarmer(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, farmer)
}

// List handles GET /api/v1/farmers.
func (h *FarmerHandler) List(c *gin.Context) {
	q, ok := pkg.ParseListQuery(c, "district_id")
	if !ok {
		return
	}

	result, err := h.svc.ListFarmers(c.Request.Context(), q)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Update handles PATCH /api/v1/farmers/:id.
func (h *FarmerHandler) Update(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	var req UpdateFarmerRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	farmer, err := h.svc.UpdateFarmer(c.Request.Context(), id, domain.FarmerPatch{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DocumentNumber: req.DocumentNumber,
		Phone:          req.Phone,
		DistrictID:     req.DistrictID,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, farmer)
}

// Disable handles DELETE /api/v1/farmers/:id.
func (h *FarmerHandler) Disable(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	farmer, err := h.svc.DisableFarmer(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, farmer)
}

// Restore handles POST /api/v1/farmers/:id/restore.
func (h *FarmerHandler) Restore(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	farmer, err := h.svc.RestoreFarmer(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, farmer)
}
