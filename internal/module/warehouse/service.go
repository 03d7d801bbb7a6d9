package warehouse

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg"
)

const (
	entityStoreCenter = "store_center"
	entityMovement    = "movement"
	codePrefix        = "SC"
)

// warehouseService implements domain.WarehouseService.
type warehouseService struct {
	centers   domain.StoreCenterRepository
	movements domain.MovementRepository
	audit     domain.AuditRecorder
	maxRows   int
	now       func() time.Time
}

// NewWarehouseService creates a new WarehouseService. Exports return at most
// maxRows movements; a non-positive value means no limit.
func NewWarehouseService(centers domain.StoreCenterRepository, movements domain.MovementRepository, audit domain.AuditRecorder, maxRows int) domain.WarehouseService {
	return &warehouseService{centers: centers, movements: movements, audit: audit, maxRows: maxRows, now: time.Now}
}

// CreateStoreCenter validates input, assigns id and code, and persists the store center.
func (s *warehouseService) CreateStoreCenter(ctx context.Context, in domain.StoreCenterInput) (*domain.StoreCenter, error) {
	sc := &domain.StoreCenter{}
	if err := applyStoreCenter(sc, domain.StoreCenterPatch{Name: &in.Name, Address: in.Address, Capacity: &in.Capacity}); err != nil {
		return nil, err
	}
	district, err := s.checkDistrict(ctx, in.DistrictID)
	if err != nil {
		return nil, err
	}
	sc.DistrictID = district

	sc.ID = pkg.NewID()
	sc.Code = pkg.ShortCode(codePrefix, s.now())
	if err := s.centers.Create(ctx, sc); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{Action: domain.ActionCreate, Entity: entityStoreCenter, EntityID: sc.ID, Detail: sc.Code})
	return sc, nil
}

// GetStoreCenter retrieves an active store center by id.
func (s *warehouseService) GetStoreCenter(ctx context.Context, id string) (*domain.StoreCenter, error) {
	return s.centers.GetByID(ctx, id)
}

// ListStoreCenters returns a page of store centers.
func (s *warehouseService) ListStoreCenters(ctx context.Context, q domain.ListQuery) (*domain.PageResult[domain.StoreCenter], error) {
	return s.centers.List(ctx, q)
}

// UpdateStoreCenter applies the fields present in patch to an active store center.
func (s *warehouseService) UpdateStoreCenter(ctx context.Context, id string, patch domain.StoreCenterPatch) (*domain.StoreCenter, error) {
	var district *string
	if patch.DistrictID != nil {
		var err error
		if district, err = s.checkDistrict(ctx, patch.DistrictID); err != nil {
			return nil, err
		}
	}

	sc, err := s.centers.Update(ctx, id, func(sc *domain.StoreCenter) error {
		if err := applyStoreCenter(sc, patch); err != nil {
			return err
		}
		if patch.DistrictID != nil {
			sc.DistrictID = district
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{Action: domain.ActionUpdate, Entity: entityStoreCenter, EntityID: sc.ID})
	return sc, nil
}

// DisableStoreCenter soft-deletes a store center. Its movements stay readable.
func (s *warehouseService) DisableStoreCenter(ctx context.Context, id string) (*domain.StoreCenter, error) {
	sc, err := s.centers.Disable(ctx, id)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.AuditEntry{Action: domain.ActionDisable, Entity: entityStoreCenter, EntityID: sc.ID})
	return sc, nil
}

// RestoreStoreCenter re-activates a disabled store center.
func (s *warehouseService) RestoreStoreCenter(ctx context.Context, id string) (*domain.StoreCenter, error) {
	sc, err := s.centers.Restore(ctx, id)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.AuditEntry{Action: domain.ActionRestore, Entity: entityStoreCenter, EntityID: sc.ID})
	return sc, nil
}

// CreateMovement validates and registers a stock entry or exit.
func (s *warehouseService) CreateMovement(ctx context.Context, in domain.MovementInput) (*domain.Movement, error) {
	storeCenterID, err := pkg.RequireID("store_center_id", in.StoreCenterID)
	if err != nil {
		return nil, err
	}
	farmerID, err := pkg.OptionalID("farmer_id", in.FarmerID)
	if err != nil {
		return nil, err
	}
	kind := strings.ToLower(strings.TrimSpace(in.Kind))
	if kind != domain.MovementIn && kind != domain.MovementOut {
		return nil, domain.Validationf("kind must be one of in, out")
	}
	product, err := pkg.Text("product", in.Product, 2, 100)
	if err != nil {
		return nil, err
	}
	quantity := roundQuantity(in.Quantity)
	if quantity <= 0 {
		return nil, domain.Validationf("quantity must be greater than 0")
	}
	reference, err := pkg.OptionalText("reference", in.Reference, 100)
	if err != nil {
		return nil, err
	}

	m := &domain.Movement{
		ID:            pkg.NewID(),
		StoreCenterID: storeCenterID,
		FarmerID:      farmerID,
		Kind:          kind,
		Product:       product,
		Quantity:      quantity,
		Reference:     reference,
	}
	if err := s.movements.Create(ctx, m); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Action:   domain.ActionCreate,
		Entity:   entityMovement,
		EntityID: m.ID,
		Detail:   kind + " " + strconv.FormatFloat(m.Quantity, 'f', -1, 64) + " " + product,
	})
	return m, nil
}

// GetMovement retrieves a movement by id.
func (s *warehouseService) GetMovement(ctx context.Context, id string) (*domain.Movement, error) {
	return s.movements.GetByID(ctx, id)
}

// ListMovements returns a page of movements.
func (s *warehouseService) ListMovements(ctx context.Context, q domain.ListQuery) (*domain.PageResult[domain.Movement], error) {
	return s.movements.List(ctx, q)
}

// ExportMovements returns the filtered movements for export, capped at maxRows.
func (s *warehouseService) ExportMovements(ctx context.Context, q domain.ListQuery) ([]domain.Movement, error) {
	return s.movements.ListAll(ctx, q, s.maxRows)
}

func applyStoreCenter(sc *domain.StoreCenter, p domain.StoreCenterPatch) error {
	if p.Name != nil {
		name, err := pkg.Text("name", *p.Name, 2, 150)
		if err != nil {
			return err
		}
		sc.Name = name
	}
	if p.Address != nil {
		address, err := pkg.OptionalText("address", p.Address, 255)
		if err != nil {
			return err
		}
		sc.Address = address
	}
	if p.Capacity != nil {
		if *p.Capacity < 0 {
			return domain.Validationf("capacity must be greater than or equal to 0")
		}
		sc.Capacity = *p.Capacity
	}
	return nil
}

func (s *warehouseService) checkDistrict(ctx context.Context, districtID *string) (*string, error) {
	id, err := pkg.OptionalID("district_id", districtID)
	if err != nil || id == nil {
		return nil, err
	}
	ok, err := s.centers.DistrictActive(ctx, *id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.Validationf("district_id must reference an active district")
	}
	return id, nil
}
