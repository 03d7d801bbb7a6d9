package domain

import (
	"context"
	"time"
)

// BaseModel is the common base struct for all domain models.
// It replaces gorm.Model to avoid the implicit soft delete behavior of DeletedAt;
// soft deletion is explicit through SoftDelete.
type BaseModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SoftDelete marks an entity as soft-deletable. A record is active iff
// DisabledAt is nil; rows are never physically removed.
type SoftDelete struct {
	DisabledAt *time.Time `gorm:"index" json:"disabled_at"`
}

// Active reports whether the record has not been disabled.
func (s SoftDelete) Active() bool {
	return s.DisabledAt == nil
}

// Sort orders accepted by PageRequest.Order.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// PageRequest holds pagination, sorting, and search parameters for a listing.
type PageRequest struct {
	Page    int
	PerPage int
	SortBy  string
	Order   string
	Search  string
}

// PageResult is one page of a filtered, sorted listing.
type PageResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// LifecycleState selects which side of the soft-delete lifecycle a listing targets.
type LifecycleState string

const (
	StateActive   LifecycleState = "active"
	StateDisabled LifecycleState = "disabled"
)

// ListQuery couples a page request with the lifecycle state and any
// resource-specific equality filters (already allow-listed by the handler).
type ListQuery struct {
	PageRequest
	State   LifecycleState
	Filters map[string]string
}

// Repository is the data access shape shared by soft-deletable resources.
// Update loads the active row, hands it to apply, and persists the result in
// one transaction; Disable and Restore move the row across the lifecycle.
type Repository[T any] interface {
	Create(ctx context.Context, entity *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, q ListQuery) (*PageResult[T], error)
	Update(ctx context.Context, id string, apply func(*T) error) (*T, error)
	Disable(ctx context.Context, id string) (*T, error)
	Restore(ctx context.Context, id string) (*T, error)
}
