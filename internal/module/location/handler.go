package location

import (
	"github.com/gin-gonic/gin"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg"
)

// LevelHandler handles REST API requests for one location level.
type LevelHandler[T any] struct {
	svc         domain.LocationService[T]
	parentField string
	codeField   string
}

func newLevelHandler[T any](svc domain.LocationService[T], lv level[T]) *LevelHandler[T] {
	return &LevelHandler[T]{svc: svc, parentField: lv.parentField, codeField: lv.codeField}
}

// NewCountryHandler creates the handler for /countries.
func NewCountryHandler(svc domain.LocationService[domain.Country]) *LevelHandler[domain.Country] {
	return newLevelHandler(svc, countries)
}

// NewDepartmentHandler creates the handler for /departments.
func NewDepartmentHandler(svc domain.LocationService[domain.Department]) *LevelHandler[domain.Department] {
	return newLevelHandler(svc, departments)
}

// NewProvinceHandler creates the handler for /provinces.
func NewProvinceHandler(svc domain.LocationService[domain.Province]) *LevelHandler[domain.Province] {
	return newLevelHandler(svc, provinces)
}

// NewDistrictHandler creates the handler for /districts.
func NewDistrictHandler(svc domain.LocationService[domain.District]) *LevelHandler[domain.District] {
	return newLevelHandler(svc, districts)
}

// Create handles POST on the level collection.
func (h *LevelHandler[T]) Create(c *gin.Context) {
	var req CreateLocationRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	entity, err := h.svc.Create(c.Request.Context(), domain.LocationInput{
		ParentID: req.parent(h.parentField),
		Name:     req.Name,
		Code:     pickCode(h.codeField, req.Code, req.Ubigeo),
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, entity)
}

// Get handles GET on a single row.
func (h *LevelHandler[T]) Get(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	entity, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, entity)
}

// List handles GET on the level collection. The parent key is the only filter.
func (h *LevelHandler[T]) List(c *gin.Context) {
	var filterKeys []string
	if h.parentField != "" {
		filterKeys = append(filterKeys, h.parentField)
	}
	q, ok := pkg.ParseListQuery(c, filterKeys...)
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Update handles PATCH on a single row.
func (h *LevelHandler[T]) Update(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	var req UpdateLocationRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	entity, err := h.svc.Update(c.Request.Context(), id, domain.LocationPatch{
		ParentID: req.parent(h.parentField),
		Name:     req.Name,
		Code:     pickCode(h.codeField, req.Code, req.Ubigeo),
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, entity)
}

// Disable handles DELETE on a single row.
func (h *LevelHandler[T]) Disable(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	entity, err := h.svc.Disable(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, entity)
}

// Restore handles POST .../:id/restore.
func (h *LevelHandler[T]) Restore(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	entity, err := h.svc.Restore(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, entity)
}

// register mounts the six lifecycle routes under /<route>.
func (h *LevelHandler[T]) register(api *gin.RouterGroup, route string) {
	g := api.Group("/" + route)
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Disable)
	g.POST("/:id/restore", h.Restore)
}
