package audit

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg"
)

// AuditHandler handles REST API requests for the audit log.
type AuditHandler struct {
	svc domain.AuditService
}

// NewAuditHandler creates a new AuditHandler with the given service.
func NewAuditHandler(svc domain.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// Get handles GET /api/v1/audit-logs/:id.
func (h *AuditHandler) Get(c *gin.Context) {
	id, ok := pkg.PathID(c, "id")
	if !ok {
		return
	}

	entry, err := h.svc.GetAuditLog(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, entry)
}

// List handles GET /api/v1/audit-logs.
func (h *AuditHandler) List(c *gin.Context) {
	req, ok := pkg.ParsePageRequest(c)
	if !ok {
		return
	}

	result, err := h.svc.ListAuditLogs(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Export handles GET /api/v1/audit-logs/export.
func (h *AuditHandler) Export(c *gin.Context) {
	req, ok := pkg.ParsePageRequest(c)
	if !ok {
		return
	}

	entries, err := h.svc.ExportAuditLogs(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	rows := make([][]any, len(entries))
	for i, e := range entries {
		detail := ""
		if e.Detail != nil {
			detail = *e.Detail
		}
		rows[i] = []any{e.CreatedAt.UTC().Format(time.RFC3339), e.Actor, e.Action, e.Entity, e.EntityID, detail}
	}
	pkg.SendXLSX(c, "audit-logs.xlsx", pkg.Sheet{
		Name:    "Audit",
		Headers: []string{"created_at", "actor", "action", "entity", "entity_id", "detail"},
		Rows:    rows,
	})
}
