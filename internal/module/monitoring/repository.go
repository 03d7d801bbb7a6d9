package monitoring

import (
	"context"

	"gorm.io/gorm"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg"
)

// listSpec lists the most recent visits first.
var listSpec = pkg.ListSpec{
	SearchFields: []pkg.SearchField{
		{Column: "crop"},
		{Column: "observations", Nullable: true},
	},
	SortFields: map[string]string{
		"visited_at": "visited_at",
		"crop":       "crop",
		"created_at": "created_at",
	},
	FilterFields: map[string]string{
		"farmer_id": "farmer_id",
		"agent_id":  "agent_id",
	},
	DefaultSort: []pkg.OrderTerm{{Column: "visited_at", Desc: true}},
}

// visitRepository implements domain.MonitoringRepository using GORM.
type visitRepository struct {
	*pkg.Store[domain.MonitoringVisit]
}

// NewMonitoringRepository creates a new MonitoringRepository backed by the given GORM database.
func NewMonitoringRepository(db *gorm.DB) domain.MonitoringRepository {
	return &visitRepository{Store: pkg.NewStore[domain.MonitoringVisit](db, listSpec)}
}

func (r *visitRepository) AgentActive(ctx context.Context, id string) (bool, error) {
	return pkg.Exists[domain.Agent](ctx, r.DB(), id, pkg.Active())
}

func (r *visitRepository) FarmerActive(ctx context.Context, id string) (bool, error) {
	return pkg.Exists[domain.Farmer](ctx, r.DB(), id, pkg.Active())
}
