package domain

import (
	"context"
	"time"
)

// Audit actions recorded by the modules.
const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDisable  = "disable"
	ActionRestore  = "restore"
	ActionAssign   = "assign"
	ActionUnassign = "unassign"
)

// AuditLog is an immutable record of a successful mutation.
type AuditLog struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Actor     string    `gorm:"size:100;index;not null" json:"actor"`
	Action    string    `gorm:"size:20;index;not null" json:"action"`
	Entity    string    `gorm:"size:50;index;not null" json:"entity"`
	EntityID  string    `gorm:"type:varchar(36);index;not null" json:"entity_id"`
	Detail    *string   `gorm:"size:500" json:"detail"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// AuditEntry is what a module hands to the AuditRecorder.
type AuditEntry struct {
	Action   string
	Entity   string
	EntityID string
	Detail   string
}

// AuditRecorder records mutations. Recording is best-effort: implementations
// log failures instead of returning them.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

// AuditRepository defines the data access interface for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *AuditLog) error
	GetByID(ctx context.Context, id string) (*AuditLog, error)
	List(ctx context.Context, req PageRequest) (*PageResult[AuditLog], error)
	ListAll(ctx context.Context, req PageRequest, limit int) ([]AuditLog, error)
}

// AuditService defines the business logic interface for audit logs.
type AuditService interface {
	AuditRecorder
	GetAuditLog(ctx context.Context, id string) (*AuditLog, error)
	ListAuditLogs(ctx context.Context, req PageRequest) (*PageResult[AuditLog], error)
	ExportAuditLogs(ctx context.Context, req PageRequest) ([]AuditLog, error)
}
