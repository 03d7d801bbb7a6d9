package audit

import (
	"context"
	"log/slog"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg"
)

// maxDetail matches the width of the detail column.
const maxDetail = 500

// auditService implements domain.AuditService.
type auditService struct {
	repo    domain.AuditRepository
	maxRows int
}

// NewAuditService creates a new AuditService. Exports return at most maxRows
// entries; a non-positive value means no limit.
func NewAuditService(repo domain.AuditRepository, maxRows int) domain.AuditService {
	return &auditService{repo: repo, maxRows: maxRows}
}

// Record stores entry attributed to the actor carried by ctx. Failures are
// logged and otherwise ignored.
func (s *auditService) Record(ctx context.Context, entry domain.AuditEntry) {
	log := &domain.AuditLog{
		ID:       pkg.NewID(),
		Actor:    pkg.ActorFrom(ctx),
		Action:   entry.Action,
		Entity:   entry.Entity,
		EntityID: entry.EntityID,
	}
	if entry.Detail != "" {
		detail := entry.Detail
		if r := []rune(detail); len(r) > maxDetail {
			detail = string(r[:maxDetail])
		}
		log.Detail = &detail
	}

	if err := s.repo.Create(ctx, log); err != nil {
		slog.WarnContext(ctx, "audit record failed",
			"action", entry.Action,
			"entity", entry.Entity,
			"entity_id", entry.EntityID,
			"error", err,
		)
	}
}

// GetAuditLog retrieves an audit entry by id.
func (s *auditService) GetAuditLog(ctx context.Context, id string) (*domain.AuditLog, error) {
	return s.repo.GetByID(ctx, id)
}

// ListAuditLogs returns a page of audit entries.
func (s *auditService) ListAuditLogs(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.AuditLog], error) {
	return s.repo.List(ctx, req)
}

// ExportAuditLogs returns the matching entries for export, capped at maxRows.
func (s *auditService) ExportAuditLogs(ctx context.Context, req domain.PageRequest) ([]domain.AuditLog, error) {
	return s.repo.ListAll(ctx, req, s.maxRows)
}
