package farmer

import (
	"context"
	"time"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg"
)

const (
	entityName = "farmer"
	codePrefix = "FRM"
)

// farmerService implements domain.FarmerService.
type farmerService struct {
	repo  domain.FarmerRepository
	audit domain.AuditRecorder
	now   func() time.Time
}

// NewFarmerService creates a new FarmerService with the given repository and audit recorder.
func NewFarmerService(repo domain.FarmerRepository, audit domain.AuditRecorder) domain.FarmerService {
	return &farmerService{repo: repo, audit: audit, now: time.Now}
}

// CreateFarmer validates input, assigns id and code, and persists the farmer.
func (s *farmerService) CreateFarmer(ctx context.Context, in domain.FarmerInput) (*domain.Farmer, error) {
	f := &domain.Farmer{}
	if err := s.applyNames(f, &in.FirstName, &in.LastName, &in.DocumentNumber); err != nil {
		return nil, err
	}
	if err := s.applyContact(ctx, f, in.Phone, in.DistrictID); err != nil {
		return nil, err
	}

	f.ID = pkg.NewID()
	f.Code = pkg.ShortCode(codePrefix, s.now())
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{Action: domain.ActionCreate, Entity: entityName, EntityID: f.ID, Detail: f.Code})
	return f, nil
}

// GetFarmer retrieves an active farmer by id.
func (s *farmerService) GetFarmer(ctx context.Context, id string) (*domain.Farmer, error) {
	return s.repo.GetByID(ctx, id)
}

// ListFarmers returns a page of farmers.
func (s *farmerService) ListFarmers(ctx context.Context, q domain.ListQuery) (*domain.PageResult[domain.Farmer], error) {
	return s.repo.List(ctx, q)
}

// UpdateFarmer applies the fields present in patch to an active farmer.
func (s *farmerService) UpdateFarmer(ctx context.Context, id string, patch domain.FarmerPatch) (*domain.Farmer, error) {
	var district *string
	if patch.DistrictID != nil {
		var err error
		if district, err = s.checkDistrict(ctx, patch.DistrictID); err != nil {
			return nil, err
		}
	}

	f, err := s.repo.Update(ctx, id, func(f *domain.Farmer) error {
		if err := s.applyNames(f, patch.FirstName, patch.LastName, patch.DocumentNumber); err != nil {
			return err
		}
		if patch.Phone != nil {
			phone, err := pkg.OptionalText("phone", patch.Phone, 30)
			if err != nil {
				return err
			}
			f.Phone = phone
		}
		if patch.DistrictID != nil {
			f.DistrictID = district
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{Action: domain.ActionUpdate, Entity: entityName, EntityID: f.ID})
	return f, nil
}

// DisableFarmer soft-deletes a farmer.
func (s *farmerService) DisableFarmer(ctx context.Context, id string) (*domain.Farmer, error) {
	f, err := s.repo.Disable(ctx, id)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.AuditEntry{Action: domain.ActionDisable, Entity: entityName, EntityID: f.ID})
	return f, nil
}

// RestoreFarmer re-activates a disabled farmer.
func (s *farmerService) RestoreFarmer(ctx context.Context, id string) (*domain.Farmer, error) {
	f, err := s.repo.Restore(ctx, id)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.AuditEntry{Action: domain.ActionRestore, Entity: entityName, EntityID: f.ID})
	return f, nil
}

// applyNames validates and sets the non-nil identifying fields.
func (s *farmerService) applyNames(f *domain.Farmer, first, last, document *string) error {
	if first != nil {
		v, err := pkg.Text("first_name", *first, 2, 100)
		if err != nil {
			return err
		}
		f.FirstName = v
	}
	if last != nil {
		v, err := pkg.Text("last_name", *last, 2, 100)
		if err != nil {
			return err
		}
		f.LastName = v
	}
	if document != nil {
		v, err := pkg.Text("document_number", *document, 6, 20)
		if err != nil {
			return err
		}
		f.DocumentNumber = v
	}
	return nil
}

func (s *farmerService) applyContact(ctx context.Context, f *domain.Farmer, phone, districtID *string) error {
	p, err := pkg.OptionalText("phone", phone, 30)
	if err != nil {
		return err
	}
	d, err := s.checkDistrict(ctx, districtID)
	if err != nil {
		return err
	}
	f.Phone, f.DistrictID = p, d
	return nil
}

// checkDistrict normalizes districtID and requires it to reference an active district.
func (s *farmerService) checkDistrict(ctx context.Context, districtID *string) (*string, error) {
	id, err := pkg.OptionalID("district_id", districtID)
	if err != nil || id == nil {
		return nil, err
	}
	ok, err := s.repo.DistrictActive(ctx, *id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.Validationf("district_id must reference an active district")
	}
	return id, nil
}
