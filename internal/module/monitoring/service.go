package monitoring

import (
	"context"
	"time"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg"
)

const entityName = "monitoring_visit"

// visitService implements domain.MonitoringService.
type visitService struct {
	repo  domain.MonitoringRepository
	audit domain.AuditRecorder
	now   func() time.Time
}

// NewMonitoringService creates a new MonitoringService with the given repository and audit recorder.
func NewMonitoringService(repo domain.MonitoringRepository, audit domain.AuditRecorder) domain.MonitoringService {
	return &visitService{repo: repo, audit: audit, now: time.Now}
}

// CreateVisit records a visit between an active agent and an active farmer.
func (s *visitService) CreateVisit(ctx context.Context, in domain.MonitoringVisitInput) (*domain.MonitoringVisit, error) {
	farmerID, err := pkg.RequireID("farmer_id", in.FarmerID)
	if err != nil {
		return nil, err
	}
	agentID, err := pkg.RequireID("agent_id", in.AgentID)
	if err != nil {
		return nil, err
	}

	v := &domain.MonitoringVisit{FarmerID: farmerID, AgentID: agentID}
	if err := s.apply(v, domain.MonitoringVisitPatch{VisitedAt: &in.VisitedAt, Crop: &in.Crop, Observations: in.Observations}); err != nil {
		return nil, err
	}
	if err := s.checkParticipants(ctx, farmerID, agentID); err != nil {
		return nil, err
	}

	v.ID = pkg.NewID()
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{Action: domain.ActionCreate, Entity: entityName, EntityID: v.ID, Detail: v.Crop})
	return v, nil
}

// GetVisit retrieves an active visit by id.
func (s *visitService) GetVisit(ctx context.Context, id string) (*domain.MonitoringVisit, error) {
	return s.repo.GetByID(ctx, id)
}

// ListVisits returns a page of visits.
func (s *visitService) ListVisits(ctx context.Context, q domain.ListQuery) (*domain.PageResult[domain.MonitoringVisit], error) {
	return s.repo.List(ctx, q)
}

// UpdateVisit applies the fields present in patch. The farmer and agent of a
// visit are fixed once recorded.
func (s *visitService) UpdateVisit(ctx context.Context, id string, patch domain.MonitoringVisitPatch) (*domain.MonitoringVisit, error) {
	v, err := s.repo.Update(ctx, id, func(v *domain.MonitoringVisit) error {
		return s.apply(v, patch)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{Action: domain.ActionUpdate, Entity: entityName, EntityID: v.ID})
	return v, nil
}

// DisableVisit soft-deletes a visit.
func (s *visitService) DisableVisit(ctx context.Context, id string) (*domain.MonitoringVisit, error) {
	v, err := s.repo.Disable(ctx, id)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.AuditEntry{Action: domain.ActionDisable, Entity: entityName, EntityID: v.ID})
	return v, nil
}

// RestoreVisit re-activates a disabled visit.
func (s *visitService) RestoreVisit(ctx context.Context, id string) (*domain.MonitoringVisit, error) {
	v, err := s.repo.Restore(ctx, id)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.AuditEntry{Action: domain.ActionRestore, Entity: entityName, EntityID: v.ID})
	return v, nil
}

func (s *visitService) apply(v *domain.MonitoringVisit, p domain.MonitoringVisitPatch) error {
	if p.VisitedAt != nil {
		if p.VisitedAt.IsZero() {
			return domain.Validationf("visited_at is required")
		}
		if p.VisitedAt.After(s.now()) {
			return domain.Validationf("visited_at must not be in the future")
		}
		v.VisitedAt = p.VisitedAt.UTC()
	}
	if p.Crop != nil {
		crop, err := pkg.Text("crop", *p.Crop, 2, 100)
		if err != nil {
			return err
		}
		v.Crop = crop
	}
	if p.Observations != nil {
		obs, err := pkg.OptionalText("observations", p.Observations, 1000)
		if err != nil {
			return err
		}
		v.Observations = obs
	}
	return nil
}

func (s *visitService) checkParticipants(ctx context.Context, farmerID, agentID string) error {
	ok, err := s.repo.FarmerActive(ctx, farmerID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.Validationf("farmer_id must reference an active farmer")
	}
	if ok, err = s.repo.AgentActive(ctx, agentID); err != nil {
		return err
	}
	if !ok {
		return domain.Validationf("agent_id must reference an active agent")
	}
	return nil
}
