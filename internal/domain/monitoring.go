package domain

import (
	"context"
	"time"
)

// MonitoringVisit is a field visit an agent made to a farmer.
type MonitoringVisit struct {
	BaseModel
	SoftDelete
	FarmerID     string    `gorm:"type:varchar(36);index;not null" json:"farmer_id"`
	AgentID      string    `gorm:"type:varchar(36);index;not null" json:"agent_id"`
	VisitedAt    time.Time `gorm:"index;not null" json:"visited_at"`
	Crop         string    `gorm:"size:100;not null" json:"crop"`
	Observations *string   `gorm:"size:1000" json:"observations"`
}

// MonitoringVisitInput carries the fields for recording a visit.
type MonitoringVisitInput struct {
	FarmerID     string
	AgentID      string
	VisitedAt    time.Time
	Crop         string
	Observations *string
}

// MonitoringVisitPatch carries a partial update; nil fields are left untouched.
type MonitoringVisitPatch struct {
	VisitedAt    *time.Time
	Crop         *string
	Observations *string
}

// MonitoringRepository defines the data access interface for visits.
type MonitoringRepository interface {
	Repository[MonitoringVisit]
	AgentActive(ctx context.Context, id string) (bool, error)
	FarmerActive(ctx context.Context, id string) (bool, error)
}

// MonitoringService defines the business logic interface for visits.
type MonitoringService interface {
	CreateVisit(ctx context.Context, in MonitoringVisitInput) (*MonitoringVisit, error)
	GetVisit(ctx context.Context, id string) (*MonitoringVisit, error)
	ListVisits(ctx context.Context, q ListQuery) (*PageResult[MonitoringVisit], error)
	UpdateVisit(ctx context.Context, id string, patch MonitoringVisitPatch) (*MonitoringVisit, error)
	DisableVisit(ctx context.Context, id string) (*MonitoringVisit, error)
	RestoreVisit(ctx context.Context, id string) (*MonitoringVisit, error)
}
