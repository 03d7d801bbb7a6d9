package agent

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg"
)

var listSpec = pkg.ListSpec{
	SearchFields: []pkg.SearchField{
		{Column: "first_name"},
		{Column: "last_name"},
		{Column: "email", Nullable: true},
		{Column: "phone", Nullable: true},
	},
	SortFields: map[string]string{
		"first_name": "first_name",
		"last_name":  "last_name",
		"created_at": "created_at",
	},
	DefaultSort: []pkg.OrderTerm{{Column: "created_at", Desc: true}},
}

var assignmentSpec = pkg.ListSpec{
	SortFields:  map[string]string{"created_at": "created_at"},
	DefaultSort: []pkg.OrderTerm{{Column: "created_at", Desc: true}},
	Preload:     []string{"Farmer"},
}

// agentRepository implements domain.AgentRepository using GORM.
type agentRepository struct {
	*pkg.Store[domain.Agent]
}

// NewAgentRepository creates a new AgentRepository backed by the given GORM database.
func NewAgentRepository(db *gorm.DB) domain.AgentRepository {
	return &agentRepository{Store: pkg.NewStore[domain.Agent](db, listSpec)}
}

// CreateWithIdentity inserts the agent and its identity document in one
// transaction; a failed identity insert leaves no agent behind.
func (r *agentRepository) CreateWithIdentity(ctx context.Context, agent *domain.Agent, identity *domain.AgentIdentity) error {
	return pkg.WithTx(ctx, r.DB(), func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(agent).Error; err != nil {
			return pkg.MapError(err)
		}
		identity.AgentID = agent.ID
		if err := tx.Create(identity).Error; err != nil {
			return pkg.MapError(err)
		}
		agent.Identity = identity
		return nil
	})
}

// GetByID retrieves an active agent with its identity.
func (r *agentRepository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	return pkg.GetOne[domain.Agent](ctx, r.DB(), id, pkg.Active(), preloadIdentity)
}

func preloadIdentity(db *gorm.DB) *gorm.DB {
	return db.Preload("Identity")
}

// Assign links a farmer to an agent. Both must be active and the pair must
// not already have an active assignment.
func (r *agentRepository) Assign(ctx context.Context, a *domain.AgentAssignment) error {
	return pkg.WithTx(ctx, r.DB(), func(tx *gorm.DB) error {
		if err := requireActive[domain.Agent](ctx, tx, a.AgentID, "agent"); err != nil {
			return err
		}
		if err := requireActive[domain.Farmer](ctx, tx, a.FarmerID, "farmer"); err != nil {
			return err
		}

		var n int64
		err := pairScope(a.AgentID, a.FarmerID)(tx.Model(&domain.AgentAssignment{})).
			Scopes(pkg.Active()).
			Count(&n).Error
		if err != nil {
			return pkg.MapError(err)
		}
		if n > 0 {
			return errAlreadyAssigned(nil)
		}

		// idx_assignment_active_pair rejects a concurrent insert of the same pair.
		if err := tx.Omit(clause.Associations).Create(a).Error; err != nil {
			if err = pkg.MapError(err); domain.IsConflict(err) {
				return errAlreadyAssigned(err)
			}
			return err
		}
		return nil
	})
}

func errAlreadyAssigned(cause error) error {
	return domain.NewAppError(domain.CodeConflict, "farmer already assigned to agent", cause)
}

// Unassign disables the active assignment between agent and farmer.
func (r *agentRepository) Unassign(ctx context.Context, agentID, farmerID string) (*domain.AgentAssignment, error) {
	var out *domain.AgentAssignment
	err := pkg.WithTx(ctx, r.DB(), func(tx *gorm.DB) error {
		var a domain.AgentAssignment
		err := pairScope(agentID, farmerID)(tx.WithContext(ctx)).
			Scopes(pkg.Active()).
			First(&a).Error
		if err != nil {
			if err = pkg.MapError(err); domain.IsNotFound(err) {
				return domain.NotFoundf("assignment")
			}
			return err
		}

		now := r.Now()
		res := tx.Model(&a).Where("disabled_at IS NULL").Updates(map[string]any{
			"disabled_at": now,
			"updated_at":  now,
		})
		if res.Error != nil {
			return pkg.MapError(res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.NotFoundf("assignment")
		}
		a.DisabledAt, a.UpdatedAt = &now, now
		out = &a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListAssignments returns a page of the agent's active assignments with the
// farmer attached.
func (r *agentRepository) ListAssignments(ctx context.Context, agentID string, req domain.PageRequest) (*domain.PageResult[domain.AgentAssignment], error) {
	ok, err := pkg.Exists[domain.Agent](ctx, r.DB(), agentID, pkg.Active())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NotFoundf("agent")
	}

	return pkg.FindPage[domain.AgentAssignment](ctx, r.DB(), assignmentSpec, req, pkg.Active(), func(db *gorm.DB) *gorm.DB {
		return db.Where("agent_id = ?", agentID)
	})
}

func pairScope(agentID, farmerID string) pkg.Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("agent_id = ? AND farmer_id = ?", agentID, farmerID)
	}
}

func requireActive[T any](ctx context.Context, tx *gorm.DB, id, entity string) error {
	ok, err := pkg.Exists[T](ctx, tx, id, pkg.Active())
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFoundf(entity)
	}
	return nil
}
