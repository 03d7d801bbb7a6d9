package location

import (
	"github.com/gin-gonic/gin"

	"github.com/identi-digital/identi-modules/internal/domain"
)

// Handlers groups the per-level handlers of the location hierarchy.
type Handlers struct {
	Countries   *LevelHandler[domain.Country]
	Departments *LevelHandler[domain.Department]
	Provinces   *LevelHandler[domain.Province]
	Districts   *LevelHandler[domain.District]
}

// LocationModule implements the app.Module interface for the location hierarchy.
type LocationModule struct {
	h Handlers
}

// NewModule creates a new LocationModule. Panics if any handler is nil.
func NewModule(h Handlers) *LocationModule {
	if h.Countries == nil || h.Departments == nil || h.Provinces == nil || h.Districts == nil {
		panic("location.NewModule: all level handlers must be set")
	}
	return &LocationModule{h: h}
}

func (m *LocationModule) Name() string { return "locations" }

func (m *LocationModule) Models() []any {
	return []any{&domain.Country{}, &domain.Department{}, &domain.Province{}, &domain.District{}}
}

// RegisterRoutes registers the four level collections.
func (m *LocationModule) RegisterRoutes(api *gin.RouterGroup) {
	m.h.Countries.register(api, countries.route)
	m.h.Departments.register(api, departments.route)
	m.h.Provinces.register(api, provinces.route)
	m.h.Districts.register(api, districts.route)
}
