package location

import (
	"context"

	"gorm.io/gorm"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg"
)

var (
	locationSortFields = map[string]string{"name": "name", "created_at": "created_at"}
	locationOrder      = []pkg.OrderTerm{{Column: "name"}}
)

var (
	countrySpec = pkg.ListSpec{
		SearchFields: []pkg.SearchField{{Column: "name"}, {Column: "code"}},
		SortFields:   map[string]string{"name": "name", "code": "code", "created_at": "created_at"},
		DefaultSort:  locationOrder,
	}
	departmentSpec = pkg.ListSpec{
		SearchFields: []pkg.SearchField{{Column: "name"}},
		SortFields:   locationSortFields,
		FilterFields: map[string]string{"country_id": "country_id"},
		DefaultSort:  locationOrder,
	}
	provinceSpec = pkg.ListSpec{
		SearchFields: []pkg.SearchField{{Column: "name"}},
		SortFields:   locationSortFields,
		FilterFields: map[string]string{"department_id": "department_id"},
		DefaultSort:  locationOrder,
	}
	districtSpec = pkg.ListSpec{
		SearchFields: []pkg.SearchField{{Column: "name"}, {Column: "ubigeo", Nullable: true}},
		SortFields:   locationSortFields,
		FilterFields: map[string]string{"province_id": "province_id"},
		DefaultSort:  locationOrder,
	}
)

// levelRepository implements domain.LocationRepository for one level.
// P is the model of the level above; it is ignored when root is set.
type levelRepository[T, P any] struct {
	*pkg.Store[T]
	root bool
}

func (r *levelRepository[T, P]) ParentActive(ctx context.Context, parentID string) (bool, error) {
	if r.root {
		return true, nil
	}
	return pkg.Exists[P](ctx, r.DB(), parentID, pkg.Active())
}

// NewCountryRepository creates the repository for countries.
func NewCountryRepository(db *gorm.DB) domain.LocationRepository[domain.Country] {
	return &levelRepository[domain.Country, domain.Country]{Store: pkg.NewStore[domain.Country](db, countrySpec), root: true}
}

// NewDepartmentRepository creates the repository for departments.
func NewDepartmentRepository(db *gorm.DB) domain.LocationRepository[domain.Department] {
	return &levelRepository[domain.Department, domain.Country]{Store: pkg.NewStore[domain.Department](db, departmentSpec)}
}

// NewProvinceRepository creates the repository for provinces.
func NewProvinceRepository(db *gorm.DB) domain.LocationRepository[domain.Province] {
	return &levelRepository[domain.Province, domain.Department]{Store: pkg.NewStore[domain.Province](db, provinceSpec)}
}

// NewDistrictRepository creates the repository for districts.
func NewDistrictRepository(db *gorm.DB) domain.LocationRepository[domain.District] {
	return &levelRepository[domain.District, domain.Province]{Store: pkg.NewStore[domain.District](db, districtSpec)}
}
