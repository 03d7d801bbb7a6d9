package farmer

import (
	"context"

	"gorm.io/gorm"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg"
)

// listSpec lists farmers newest first.
var listSpec = pkg.ListSpec{
	SearchFields: []pkg.SearchField{
		{Column: "code"},
		{Column: "first_name"},
		{Column: "last_name"},
		{Column: "document_number"},
		{Column: "phone", Nullable: true},
	},
	SortFields: map[string]string{
		"code":       "code",
		"first_name": "first_name",
		"last_name":  "last_name",
		"created_at": "created_at",
	},
	FilterFields: map[string]string{"district_id": "district_id"},
	DefaultSort:  []pkg.OrderTerm{{Column: "created_at", Desc: true}},
}

// farmerRepository implements domain.FarmerRepository using GORM.
type farmerRepository struct {
	*pkg.Store[domain.Farmer]
}

// NewFarmerRepository creates a new FarmerRepository backed by the given GORM database.
func NewFarmerRepository(db *gorm.DB) domain.FarmerRepository {
	return &farmerRepository{Store: pkg.NewStore[domain.Farmer](db, listSpec)}
}

// DistrictActive reports whether the district exists and is not disabled.
func (r *farmerRepository) DistrictActive(ctx context.Context, id string) (bool, error) {
	return pkg.Exists[domain.District](ctx, r.DB(), id, pkg.Active())
}
