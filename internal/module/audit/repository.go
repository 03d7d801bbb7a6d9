package audit

import (
	"context"

	"gorm.io/gorm"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg"
)

// listSpec lists the newest entries first.
var listSpec = pkg.ListSpec{
	SearchFields: []pkg.SearchField{
		{Column: "actor"},
		{Column: "action"},
		{Column: "entity"},
		{Column: "entity_id"},
		{Column: "detail", Nullable: true},
	},
	SortFields: map[string]string{
		"created_at": "created_at",
		"action":     "action",
		"entity":     "entity",
	},
	DefaultSort: []pkg.OrderTerm{{Column: "created_at", Desc: true}},
}

// auditRepository implements domain.AuditRepository using GORM. Entries are
// append-only.
type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new AuditRepository backed by the given GORM database.
func NewAuditRepository(db *gorm.DB) domain.AuditRepository {
	return &auditRepository{db: db}
}

// Create inserts a new audit entry.
func (r *auditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return pkg.MapError(err)
	}
	return nil
}

// GetByID retrieves an audit entry by id.
func (r *auditRepository) GetByID(ctx context.Context, id string) (*domain.AuditLog, error) {
	return pkg.GetOne[domain.AuditLog](ctx, r.db, id)
}

// List returns a page of audit entries, newest first unless req sorts otherwise.
func (r *auditRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.AuditLog], error) {
	return pkg.FindPage[domain.AuditLog](ctx, r.db, listSpec, req)
}

// ListAll returns up to limit audit entries in listing order.
func (r *auditRepository) ListAll(ctx context.Context, req domain.PageRequest, limit int) ([]domain.AuditLog, error) {
	return pkg.FindAll[domain.AuditLog](ctx, r.db, listSpec, req, limit)
}
