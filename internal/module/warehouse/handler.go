package warehouse

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg"
)

// movementFilters are the query parameters accepted as movement filters.
var movementFilters = []string{"store_center_id", "farmer_id", "kind"}

// WarehouseHandler handles REST API requests for store centers and movements.
type WarehouseHandler struct {
	svc domain.WarehouseService
}

// NewWarehouseHandler creates a new WarehouseHandler with the given service.
func NewWarehouseHandler(svc domain.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{svc: svc}
}

// CreateStoreCenter handles POST /api/v1/store-centers.
func (h *WarehouseHandler) CreateStoreCenter(c *gin.Context) {
	var req CreateStoreCenterRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	sc, err := h.svc.CreateStoreCenter(c.Request.Context(), domain.StoreCenterInput{
		Name:       req.Name,
		Address:    req.Address,
		DistrictID: req.DistrictID,
		Capacity:   req.Capacity,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, sc)
}

// GetStoreCenter handles GET /api/v1/store-centers/:id.
func (h *WarehouseHandler) GetStoreCenter(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	sc, err := h.svc.GetStoreCenter(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, sc)
}

// ListStoreCenters handles GET /api/v1/store-centers.
func (h *WarehouseHandler) ListStoreCenters(c *gin.Context) {
	q, ok := pkg.ParseListQuery(c, "district_id")
	if !ok {
		return
	}

	result, err := h.svc.ListStoreCenters(c.Request.Context(), q)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// UpdateStoreCenter handles PATCH /api/v1/store-centers/:id.
func (h *WarehouseHandler) UpdateStoreCenter(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	var req UpdateStoreCenterRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	sc, err := h.svc.UpdateStoreCenter(c.Request.Context(), id, domain.StoreCenterPatch{
		Name:       req.Name,
		Address:    req.Address,
		DistrictID: req.DistrictID,
		Capacity:   req.Capacity,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, sc)
}

// DisableStoreCenter handles DELETE /api/v1/store-centers/:id.
func (h *WarehouseHandler) DisableStoreCenter(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	sc, err := h.svc.DisableStoreCenter(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, sc)
}

// RestoreStoreCenter handles POST /api/v1/store-centers/:id/restore.
func (h *WarehouseHandler) RestoreStoreCenter(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	sc, err := h.svc.RestoreStoreCenter(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, sc)
}

// CreateMovement handles POST /api/v1/movements.
func (h *WarehouseHandler) CreateMovement(c *gin.Context) {
	var req CreateMovementRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	m, err := h.svc.CreateMovement(c.Request.Context(), domain.MovementInput{
		StoreCenterID: req.StoreCenterID,
		FarmerID:      req.FarmerID,
		Kind:          req.Kind,
		Product:       req.Product,
		Quantity:      req.Quantity,
		Reference:     req.Reference,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, m)
}

// GetMovement handles GET /api/v1/movements/:id.
func (h *WarehouseHandler) GetMovement(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	m, err := h.svc.GetMovement(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, m)
}

// ListMovements handles GET /api/v1/movements.
func (h *WarehouseHandler) ListMovements(c *gin.Context) {
	q, ok := pkg.ParseListQuery(c, movementFilters...)
	if !ok {
		return
	}

	result, err := h.svc.ListMovements(c.Request.Context(), q)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// ExportMovements handles GET /api/v1/movements/export. It accepts the same
// search, sort and filter parameters as the listing and ignores pagination.
func (h *WarehouseHandler) ExportMovements(c *gin.Context) {
	q, ok := pkg.ParseListQuery(c, movementFilters...)
	if !ok {
		return
	}

	movements, err := h.svc.ExportMovements(c.Request.Context(), q)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.SendXLSX(c, "movements.xlsx", movementSheet(movements))
}

func movementSheet(movements []domain.Movement) pkg.Sheet {
	rows := make([][]any, len(movements))
	for i, m := range movements {
		rows[i] = []any{
			m.ID,
			m.CreatedAt.UTC().Format(time.RFC3339),
			m.StoreCenterID,
			m.Kind,
			m.Product,
			m.Quantity,
			deref(m.FarmerID),
			deref(m.Reference),
		}
	}
	return pkg.Sheet{
		Name:    "Movements",
		Headers: []string{"id", "created_at", "store_center_id", "kind", "product", "quantity", "farmer_id", "reference"},
		Rows:    rows,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
