package location

import (
	"context"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg"
)

// levelService implements domain.LocationService for one level.
type levelService[T any] struct {
	repo  domain.LocationRepository[T]
	audit domain.AuditRecorder
	level level[T]
}

func newLevelService[T any](repo domain.LocationRepository[T], audit domain.AuditRecorder, lv level[T]) domain.LocationService[T] {
	return &levelService[T]{repo: repo, audit: audit, level: lv}
}

// NewCountryService creates the service for countries.
func NewCountryService(repo domain.LocationRepository[domain.Country], audit domain.AuditRecorder) domain.LocationService[domain.Country] {
	return newLevelService(repo, audit, countries)
}

// NewDepartmentService creates the service for departments.
func NewDepartmentService(repo domain.LocationRepository[domain.Department], audit domain.AuditRecorder) domain.LocationService[domain.Department] {
	return newLevelService(repo, audit, departments)
}

// NewProvinceService creates the service for provinces.
func NewProvinceService(repo domain.LocationRepository[domain.Province], audit domain.AuditRecorder) domain.LocationService[domain.Province] {
	return newLevelService(repo, audit, provinces)
}

// NewDistrictService creates the service for districts.
func NewDistrictService(repo domain.LocationRepository[domain.District], audit domain.AuditRecorder) domain.LocationService[domain.District] {
	return newLevelService(repo, audit, districts)
}

// Create validates the input, checks the parent is active, and persists the row.
func (s *levelService[T]) Create(ctx context.Context, in domain.LocationInput) (*T, error) {
	name, err := pkg.Text("name", in.Name, 2, 100)
	if err != nil {
		return nil, err
	}
	f := fields{name: &name}

	if s.level.parentField != "" {
		parentID, err := s.checkParent(ctx, in.ParentID)
		if err != nil {
			return nil, err
		}
		f.parentID = &parentID
	}

	if s.level.codeField != "" {
		if f.code, err = s.checkCode(in.Code); err != nil {
			return nil, err
		}
		f.codeSet = true
	}
	if s.level.codeNeeded && f.code == nil {
		return nil, domain.Validationf(s.level.codeField + " is required")
	}

	entity := s.level.build(pkg.NewID())
	s.level.assign(entity, f)
	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, err
	}

	s.record(ctx, domain.ActionCreate, entity)
	return entity, nil
}

// Get retrieves an active row by id.
func (s *levelService[T]) Get(ctx context.Context, id string) (*T, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a page of rows, optionally narrowed to one parent.
func (s *levelService[T]) List(ctx context.Context, q domain.ListQuery) (*domain.PageResult[T], error) {
	return s.repo.List(ctx, q)
}

// Update applies the fields present in patch. A new parent must be active.
func (s *levelService[T]) Update(ctx context.Context, id string, patch domain.LocationPatch) (*T, error) {
	var f fields
	if patch.Name != nil {
		name, err := pkg.Text("name", *patch.Name, 2, 100)
		if err != nil {
			return nil, err
		}
		f.name = &name
	}

	if patch.ParentID != nil && s.level.parentField != "" {
		parentID, err := s.checkParent(ctx, *patch.ParentID)
		if err != nil {
			return nil, err
		}
		f.parentID = &parentID
	}

	if patch.Code != nil && s.level.codeField != "" {
		code, err := s.checkCode(patch.Code)
		if err != nil {
			return nil, err
		}
		if s.level.codeNeeded && code == nil {
			return nil, domain.Validationf(s.level.codeField + " must not be empty")
		}
		f.code, f.codeSet = code, true
	}

	entity, err := s.repo.Update(ctx, id, func(e *T) error {
		s.level.assign(e, f)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, domain.ActionUpdate, entity)
	return entity, nil
}

// Disable soft-deletes a row. Children keep their parent reference.
func (s *levelService[T]) Disable(ctx context.Context, id string) (*T, error) {
	entity, err := s.repo.Disable(ctx, id)
	if err != nil {
		return nil, err
	}
	s.record(ctx, domain.ActionDisable, entity)
	return entity, nil
}

// Restore re-activates a disabled row.
func (s *levelService[T]) Restore(ctx context.Context, id string) (*T, error) {
	entity, err := s.repo.Restore(ctx, id)
	if err != nil {
		return nil, err
	}
	s.record(ctx, domain.ActionRestore, entity)
	return entity, nil
}

func (s *levelService[T]) checkParent(ctx context.Context, raw string) (string, error) {
	parentID, err := pkg.RequireID(s.level.parentField, raw)
	if err != nil {
		return "", err
	}
	ok, err := s.repo.ParentActive(ctx, parentID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.Validationf(s.level.parentField + " must reference an active record")
	}
	return parentID, nil
}

// checkCode normalizes an optional level code; blank means none.
func (s *levelService[T]) checkCode(raw *string) (*string, error) {
	code, err := pkg.OptionalText(s.level.codeField, raw, 10)
	if err != nil || code == nil {
		return nil, err
	}
	v, err := s.level.checkCode(*code)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *levelService[T]) record(ctx context.Context, action string, entity *T) {
	s.audit.Record(ctx, domain.AuditEntry{Action: action, Entity: s.level.entity, EntityID: s.level.idOf(entity)})
}
